package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moderation-api/internal/config"
	"moderation-api/internal/constants"
	"moderation-api/internal/models"
)

// AdminService applies guarded moderation transitions to user records. Every
// operation takes the acting admin explicitly, runs as a single transaction,
// and appends exactly one audit row on success.
type AdminService struct {
	db     *gorm.DB
	events *EventsService
}

func NewAdminService(db *gorm.DB, events *EventsService) *AdminService {
	return &AdminService{
		db:     db,
		events: events,
	}
}

func (s *AdminService) findUser(tx *gorm.DB, userID uuid.UUID) (models.User, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, moderationErr(ErrNotFound, "user not found")
		}
		return user, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// checkSelfModification prevents an admin from locking themselves out
func checkSelfModification(actingAdmin models.User, targetUserID uuid.UUID, action string) error {
	if actingAdmin.ID == targetUserID {
		return moderationErr(ErrSelfModification, "cannot %s your own account", action)
	}
	return nil
}

// checkLastAdmin refuses operations that would leave zero functional admins.
// The admin pool is scanned fresh on each call, under row locks on postgres
// so concurrent demotions of two different admins serialize instead of both
// passing the count check.
func (s *AdminService) checkLastAdmin(tx *gorm.DB, target models.User) error {
	if target.Role != constants.RoleAdmin {
		return nil
	}

	scope := tx
	// sqlite is single-writer, locking clauses only exist on postgres
	if tx.Dialector.Name() == "postgres" {
		scope = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var admins []models.User
	err := scope.Select("id").
		Where("role = ? AND is_deleted = ? AND banned_at IS NULL", constants.RoleAdmin, false).
		Find(&admins).Error
	if err != nil {
		return fmt.Errorf("failed to scan admin pool: %w", err)
	}

	if len(admins) <= 1 {
		return moderationErr(ErrLastAdmin, "cannot modify the last admin account")
	}
	return nil
}

func (s *AdminService) gracePeriod() time.Duration {
	days := config.Moderation.Retention.GracePeriodDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// SuspendUser sets a suspension window on the target. IsActive is left
// untouched; an unexpired SuspendedUntil alone blocks login, and the
// suspension lapses on its own once the window passes.
func (s *AdminService) SuspendUser(actingAdmin models.User, userID uuid.UUID, suspendedUntil time.Time, reason string) (*models.User, error) {
	if err := checkSelfModification(actingAdmin, userID, "suspend"); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		user.SuspendedUntil = &suspendedUntil
		user.SuspensionReason = &reason
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to suspend user: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionSuspend, constants.TargetUser, userID, reason, map[string]interface{}{
			"suspendedUntil": suspendedUntil.Format(time.RFC3339),
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionSuspend, constants.TargetUser, userID, reason)
	return &user, nil
}

// UnsuspendUser clears the suspension window. IsActive is left untouched: a
// user disabled via DisableLogin stays disabled until explicitly re-enabled.
func (s *AdminService) UnsuspendUser(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		user.SuspendedUntil = nil
		user.SuspensionReason = nil
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to unsuspend user: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionUnsuspend, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionUnsuspend, constants.TargetUser, userID, reason)
	return &user, nil
}

// BanUser bans the target and disables login.
func (s *AdminService) BanUser(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	if err := checkSelfModification(actingAdmin, userID, "ban"); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}
		if err := s.checkLastAdmin(tx, user); err != nil {
			return err
		}

		now := time.Now()
		user.BannedAt = &now
		user.BanReason = &reason
		user.IsActive = false
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to ban user: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionBan, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionBan, constants.TargetUser, userID, reason)
	return &user, nil
}

// UnbanUser clears the ban. IsActive is left untouched; re-enabling login is
// a separate, explicit EnableLogin call.
func (s *AdminService) UnbanUser(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		user.BannedAt = nil
		user.BanReason = nil
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to unban user: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionUnban, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionUnban, constants.TargetUser, userID, reason)
	return &user, nil
}

// SoftDeleteUser hides the target from normal queries and disables login. The
// record is kept for the retention grace period.
func (s *AdminService) SoftDeleteUser(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	if err := checkSelfModification(actingAdmin, userID, "delete"); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}
		if err := s.checkLastAdmin(tx, user); err != nil {
			return err
		}

		now := time.Now()
		user.IsDeleted = true
		user.DeletedAt = &now
		user.IsActive = false
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to soft delete user: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionSoftDelete, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionSoftDelete, constants.TargetUser, userID, reason)
	return &user, nil
}

// RestoreUser reverses a soft delete. Login is re-enabled only when no ban or
// suspension is still in place.
func (s *AdminService) RestoreUser(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		if !user.IsDeleted {
			return moderationErr(ErrInvalidState, "user is not deleted")
		}

		user.IsDeleted = false
		user.DeletedAt = nil
		if !user.IsBanned() && !user.IsSuspended() {
			user.IsActive = true
		}
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to restore user: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionRestore, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionRestore, constants.TargetUser, userID, reason)
	return &user, nil
}

// PermanentDeleteUser hard-removes a soft-deleted user once the retention
// grace period has elapsed. The audit row is written before the removal, in
// the same transaction, so the ledger survives the target.
func (s *AdminService) PermanentDeleteUser(actingAdmin models.User, userID uuid.UUID, reason string) error {
	if err := checkSelfModification(actingAdmin, userID, "permanently delete"); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.findUser(tx, userID)
		if err != nil {
			return err
		}
		if err := s.checkLastAdmin(tx, user); err != nil {
			return err
		}

		if !user.IsDeleted {
			return moderationErr(ErrInvalidState, "user must be soft deleted before permanent deletion")
		}

		cutoff := time.Now().Add(-s.gracePeriod())
		if user.DeletedAt != nil && user.DeletedAt.After(cutoff) {
			return moderationErr(ErrTooSoon, "cannot permanently delete user until %d days after soft deletion", config.Moderation.Retention.GracePeriodDays)
		}

		if err := logAction(tx, actingAdmin, constants.ActionPermanentDelete, constants.TargetUser, userID, reason, nil); err != nil {
			return err
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("failed to permanently delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(actingAdmin, constants.ActionPermanentDelete, constants.TargetUser, userID, reason)
	return nil
}

// UpdateUserRole changes the target's role, refusing self-demotion and
// demotion of the last functional admin.
func (s *AdminService) UpdateUserRole(actingAdmin models.User, userID uuid.UUID, newRole constants.Role, reason string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		if actingAdmin.ID == userID && user.Role == constants.RoleAdmin && newRole != constants.RoleAdmin {
			return moderationErr(ErrSelfDemotion, "cannot remove your own admin role")
		}

		if user.Role == constants.RoleAdmin && newRole != constants.RoleAdmin {
			if err := s.checkLastAdmin(tx, user); err != nil {
				return err
			}
		}

		oldRole := user.Role
		user.Role = newRole
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to update user role: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionRoleChange, constants.TargetUser, userID, reason, map[string]interface{}{
			"oldRole": string(oldRole),
			"newRole": string(newRole),
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionRoleChange, constants.TargetUser, userID, reason)
	return &user, nil
}

// DisableLogin turns off the IsActive gate without suspending or banning.
func (s *AdminService) DisableLogin(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	if err := checkSelfModification(actingAdmin, userID, "disable login for"); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		user.IsActive = false
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to disable login: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionDisableLogin, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionDisableLogin, constants.TargetUser, userID, reason)
	return &user, nil
}

// EnableLogin turns the IsActive gate back on. Refused while a ban or an
// unexpired suspension is still in place; those must be lifted first.
func (s *AdminService) EnableLogin(actingAdmin models.User, userID uuid.UUID, reason string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = s.findUser(tx, userID); err != nil {
			return err
		}

		if user.IsBanned() {
			return moderationErr(ErrStillBanned, "cannot enable login for banned user, unban first")
		}
		if user.IsSuspended() {
			return moderationErr(ErrStillSuspended, "cannot enable login for suspended user, unsuspend first")
		}

		user.IsActive = true
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to enable login: %w", err)
		}

		return logAction(tx, actingAdmin, constants.ActionEnableLogin, constants.TargetUser, userID, reason, nil)
	})
	if err != nil {
		return nil, err
	}

	s.publish(actingAdmin, constants.ActionEnableLogin, constants.TargetUser, userID, reason)
	return &user, nil
}

func (s *AdminService) publish(actingAdmin models.User, action constants.ActionType, targetType constants.TargetType, targetID uuid.UUID, reason string) {
	if s.events == nil {
		return
	}
	s.events.PublishModerationEvent(&ModerationEvent{
		AdminUserID: actingAdmin.ID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      reason,
		OccurredAt:  time.Now(),
	})
}
