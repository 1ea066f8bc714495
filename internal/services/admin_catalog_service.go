package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"moderation-api/internal/constants"
	"moderation-api/internal/models"
)

// Course and study group moderation. Same contract as the user operations:
// one transaction, one audit row per successful call.

func (s *AdminService) findCourse(tx *gorm.DB, courseID uuid.UUID) (models.Course, error) {
	var course models.Course
	if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course, moderationErr(ErrNotFound, "course not found")
		}
		return course, fmt.Errorf("failed to load course: %w", err)
	}
	return course, nil
}

// UpdateCourse edits course name and/or description, recording old and new
// values of every changed field.
func (s *AdminService) UpdateCourse(actingAdmin models.User, courseID uuid.UUID, name, description *string, reason string) (*models.Course, error) {
	var course models.Course
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if course, err = s.findCourse(tx, courseID); err != nil {
			return err
		}

		metadata := map[string]interface{}{}
		if name != nil && *name != course.Name {
			metadata["oldName"] = course.Name
			metadata["newName"] = *name
			course.Name = *name
		}
		if description != nil && *description != course.Description {
			metadata["oldDescription"] = course.Description
			metadata["newDescription"] = *description
			course.Description = *description
		}

		if err := tx.Save(&course).Error; err != nil {
			return fmt.Errorf("failed to update course: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionCourseUpdate, constants.TargetCourse, courseID, reason, metadata)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionCourseUpdate, constants.TargetCourse, courseID, reason)
	return &course, nil
}

// ArchiveCourse hides a course from the active catalog.
func (s *AdminService) ArchiveCourse(actingAdmin models.User, courseID uuid.UUID, reason string) (*models.Course, error) {
	var course models.Course
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if course, err = s.findCourse(tx, courseID); err != nil {
			return err
		}

		if course.IsArchived {
			return moderationErr(ErrInvalidState, "course is already archived")
		}

		now := time.Now()
		course.IsArchived = true
		course.ArchivedAt = &now
		if err := tx.Save(&course).Error; err != nil {
			return fmt.Errorf("failed to archive course: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionCourseArchive, constants.TargetCourse, courseID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionCourseArchive, constants.TargetCourse, courseID, reason)
	return &course, nil
}

// UnarchiveCourse returns an archived course to the active catalog.
func (s *AdminService) UnarchiveCourse(actingAdmin models.User, courseID uuid.UUID, reason string) (*models.Course, error) {
	var course models.Course
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if course, err = s.findCourse(tx, courseID); err != nil {
			return err
		}

		if !course.IsArchived {
			return moderationErr(ErrInvalidState, "course is not archived")
		}

		course.IsArchived = false
		course.ArchivedAt = nil
		if err := tx.Save(&course).Error; err != nil {
			return fmt.Errorf("failed to unarchive course: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionCourseUnarchive, constants.TargetCourse, courseID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionCourseUnarchive, constants.TargetCourse, courseID, reason)
	return &course, nil
}

// DeleteCourse hard-removes a course. Refused while the course still has
// active study groups; archiving is the way to retire a live course.
func (s *AdminService) DeleteCourse(actingAdmin models.User, courseID uuid.UUID, reason string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		course, err := s.findCourse(tx, courseID)
		if err != nil {
			return err
		}

		var activeGroups int64
		err = tx.Model(&models.StudyGroup{}).
			Where("course_id = ? AND is_active = ?", courseID, true).
			Count(&activeGroups).Error
		if err != nil {
			return fmt.Errorf("failed to count active groups: %w", err)
		}
		if activeGroups > 0 {
			return moderationErr(ErrInvalidState, "cannot delete course with active study groups, archive the course instead")
		}

		if err := logAction(tx, actingAdmin, constants.ActionCourseDelete, constants.TargetCourse, courseID, reason, nil); err != nil {
			return err
		}

		if err := tx.Delete(&course).Error; err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(actingAdmin, constants.ActionCourseDelete, constants.TargetCourse, courseID, reason)
	return nil
}

// RemoveUserFromCourse drops an enrollment.
func (s *AdminService) RemoveUserFromCourse(actingAdmin models.User, courseID, userID uuid.UUID, reason string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		course, err := s.findCourse(tx, courseID)
		if err != nil {
			return err
		}
		user, err := s.findUser(tx, userID)
		if err != nil {
			return err
		}

		var enrolled int64
		err = tx.Table("course_students").
			Where("course_id = ? AND user_id = ?", courseID, userID).
			Count(&enrolled).Error
		if err != nil {
			return fmt.Errorf("failed to check enrollment: %w", err)
		}
		if enrolled == 0 {
			return moderationErr(ErrInvalidState, "user is not enrolled in this course")
		}

		if err := tx.Model(&course).Association("Students").Delete(&user); err != nil {
			return fmt.Errorf("failed to remove user from course: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionCourseRemoveMember, constants.TargetCourse, courseID, reason, map[string]interface{}{
			"userId":   userID.String(),
			"username": user.Username,
		})
	})
	if err != nil {
		return err
	}

	s.publish(actingAdmin, constants.ActionCourseRemoveMember, constants.TargetCourse, courseID, reason)
	return nil
}

// DeleteGroup hard-removes a study group.
func (s *AdminService) DeleteGroup(actingAdmin models.User, groupID uuid.UUID, reason string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var group models.StudyGroup
		if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return moderationErr(ErrNotFound, "group not found")
			}
			return fmt.Errorf("failed to load group: %w", err)
		}

		if err := logAction(tx, actingAdmin, constants.ActionGroupDelete, constants.TargetGroup, groupID, reason, nil); err != nil {
			return err
		}

		if err := tx.Delete(&group).Error; err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(actingAdmin, constants.ActionGroupDelete, constants.TargetGroup, groupID, reason)
	return nil
}
