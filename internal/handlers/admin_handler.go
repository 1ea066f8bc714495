package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"moderation-api/internal/config"
	"moderation-api/internal/constants"
	"moderation-api/internal/models"
	"moderation-api/internal/requests"
	"moderation-api/internal/services"
	"moderation-api/pkg/database"
	"moderation-api/pkg/utils"
)

// Events is the process-wide moderation event publisher, set during startup.
// Nil when events are disabled (and in tests).
var Events *services.EventsService

func adminService() *services.AdminService {
	return services.NewAdminService(database.DB, Events)
}

func actingAdmin(c *fiber.Ctx) models.User {
	return c.Locals("user").(models.User)
}

// moderationErrorResponse maps a classified service error to an HTTP status
func moderationErrorResponse(c *fiber.Ctx, err error) error {
	switch services.KindOf(err) {
	case services.ErrNotFound:
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error(), nil)
	case "":
		utils.LogError("moderation operation", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Internal, nil)
	default:
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}
}

func targetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// ListUsers returns all users, soft-deleted ones only on request
func ListUsers(c *fiber.Ctx) error {
	query := database.DB.Order("created_at")
	if !c.QueryBool("includeDeleted") {
		query = query.Where("is_deleted = ?", false)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		utils.LogError("list users", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	return utils.SuccessResponse(c, "", users)
}

// GetUser returns one user by id, including soft-deleted ones
func GetUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "user not found", nil)
	}

	return utils.SuccessResponse(c, "", user)
}

// ListAuditLogs returns the moderation ledger, newest first
func ListAuditLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var entries []models.AdminAuditLog
	err := database.DB.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		utils.LogError("list audit logs", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	return utils.SuccessResponse(c, "", entries)
}

// SuspendUser suspends a user for the requested number of days
func SuspendUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.SuspendRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var suspendedUntil time.Time
	if input.Days <= 0 {
		years := config.Moderation.Suspension.IndefiniteYears
		if years <= 0 {
			years = 100
		}
		suspendedUntil = time.Now().AddDate(years, 0, 0)
	} else {
		suspendedUntil = time.Now().AddDate(0, 0, input.Days)
	}

	user, err := adminService().SuspendUser(actingAdmin(c), userID, suspendedUntil, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	message := fmt.Sprintf(config.Messages.Moderation.Success.Suspended, suspendedUntil.Format("2006-01-02"))
	return utils.SuccessResponse(c, message, user)
}

// UnsuspendUser lifts a user's suspension
func UnsuspendUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	user, err := adminService().UnsuspendUser(actingAdmin(c), userID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, config.Messages.Moderation.Success.Unsuspended, user)
}

// BanUser bans a user
func BanUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.BanRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	user, err := adminService().BanUser(actingAdmin(c), userID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, config.Messages.Moderation.Success.Banned, user)
}

// UnbanUser lifts a user's ban
func UnbanUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	user, err := adminService().UnbanUser(actingAdmin(c), userID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, config.Messages.Moderation.Success.Unbanned, user)
}

// SoftDeleteUser hides a user account pending permanent deletion
func SoftDeleteUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	user, err := adminService().SoftDeleteUser(actingAdmin(c), userID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, config.Messages.Moderation.Success.SoftDeleted, user)
}

// RestoreUser reverses a soft delete
func RestoreUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	user, err := adminService().RestoreUser(actingAdmin(c), userID, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, config.Messages.Moderation.Success.Restored, user)
}

// PermanentDeleteUser removes a soft-deleted user after the grace period
func PermanentDeleteUser(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.ReasonRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	if err := adminService().PermanentDeleteUser(actingAdmin(c), userID, input.Reason); err != nil {
		return moderationErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, config.Messages.Moderation.Success.PermanentDelete, nil)
}

// UpdateUserRole changes a user's role
func UpdateUserRole(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.RoleUpdateRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	role, ok := constants.ParseRole(input.Role)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRole, nil)
	}

	user, err := adminService().UpdateUserRole(actingAdmin(c), userID, role, input.Reason)
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	message := fmt.Sprintf(config.Messages.Moderation.Success.RoleUpdated, role)
	return utils.SuccessResponse(c, message, user)
}

// UpdateUserStatus enables or disables login for a user
func UpdateUserStatus(c *fiber.Ctx) error {
	userID, err := targetUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.StatusUpdateRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var user *models.User
	if *input.Active {
		user, err = adminService().EnableLogin(actingAdmin(c), userID, input.Reason)
	} else {
		user, err = adminService().DisableLogin(actingAdmin(c), userID, input.Reason)
	}
	if err != nil {
		return moderationErrorResponse(c, err)
	}

	status := "inactive"
	if *input.Active {
		status = "active"
	}
	message := fmt.Sprintf(config.Messages.Moderation.Success.StatusUpdated, status)
	return utils.SuccessResponse(c, message, user)
}
