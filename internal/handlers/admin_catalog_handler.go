package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"moderation-api/internal/config"
	"moderation-api/internal/requests"
	"moderation-api/pkg/utils"
)

// UpdateCourse edits course details
func UpdateCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.CourseUpdateRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	course, err := adminService().UpdateCourse(actingAdmin(c), courseID, input.Name, input.Description, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Course updated successfully", course)
}

// ArchiveCourse archives a course
func ArchiveCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	course, err := adminService().ArchiveCourse(actingAdmin(c), courseID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Course archived successfully", course)
}

// UnarchiveCourse restores an archived course
func UnarchiveCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	course, err := adminService().UnarchiveCourse(actingAdmin(c), courseID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Course unarchived successfully", course)
}

// DeleteCourse permanently removes a course without active groups
func DeleteCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	if err := adminService().DeleteCourse(actingAdmin(c), courseID, input.Reason); err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Course deleted successfully", nil)
}

// RemoveCourseMember removes a user from a course roster
func RemoveCourseMember(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.RemoveMemberRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	if err := adminService().RemoveUserFromCourse(actingAdmin(c), courseID, userID, input.Reason); err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "User removed from course successfully", nil)
}

// DeleteGroup permanently removes a study group
func DeleteGroup(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	if err := adminService().DeleteGroup(actingAdmin(c), groupID, input.Reason); err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "Study group deleted successfully", nil)
}
