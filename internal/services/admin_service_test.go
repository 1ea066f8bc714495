package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moderation-api/internal/constants"
	"moderation-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// In-memory sqlite is per-connection; keep the pool at one
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.AdminAuditLog{},
		&models.Course{},
		&models.StudyGroup{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewAdminService(db, nil), db
}

func createUser(t *testing.T, db *gorm.DB, username string, role constants.Role) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@university.edu",
		Password: "irrelevant",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func reload(t *testing.T, db *gorm.DB, id uuid.UUID) models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return user
}

func auditCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.AdminAuditLog{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count audit logs: %v", err)
	}
	return count
}

func lastAudit(t *testing.T, db *gorm.DB) models.AdminAuditLog {
	t.Helper()
	var entry models.AdminAuditLog
	if err := db.Order("created_at DESC").First(&entry).Error; err != nil {
		t.Fatalf("failed to load audit log: %v", err)
	}
	return entry
}

func TestSuspendUser(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	until := time.Now().Add(7 * 24 * time.Hour)
	updated, err := svc.SuspendUser(admin, target.ID, until, "spam")
	if err != nil {
		t.Fatalf("SuspendUser failed: %v", err)
	}

	if updated.SuspendedUntil == nil || !updated.IsSuspended() {
		t.Error("user should be suspended")
	}
	if updated.SuspensionReason == nil || *updated.SuspensionReason != "spam" {
		t.Error("suspension reason should be recorded")
	}
	if !updated.IsActive {
		t.Error("suspend must not touch IsActive")
	}

	if got := auditCount(t, db); got != 1 {
		t.Fatalf("expected 1 audit entry, got %d", got)
	}
	entry := lastAudit(t, db)
	if entry.ActionType != constants.ActionSuspend {
		t.Errorf("expected SUSPEND audit entry, got %s", entry.ActionType)
	}
	if entry.TargetID != target.ID {
		t.Error("audit entry should reference the target")
	}
	if entry.AdminUserID != admin.ID {
		t.Error("audit entry should reference the acting admin")
	}
	if len(entry.Metadata) == 0 {
		t.Error("suspend audit entry should carry suspendedUntil metadata")
	}
}

func TestSuspendSelfRefused(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)

	_, err := svc.SuspendUser(admin, admin.ID, time.Now().Add(time.Hour), "oops")
	if !IsKind(err, ErrSelfModification) {
		t.Fatalf("expected SelfModification, got %v", err)
	}

	if got := auditCount(t, db); got != 0 {
		t.Errorf("failed operation must not write audit entries, got %d", got)
	}
	if u := reload(t, db, admin.ID); u.SuspendedUntil != nil {
		t.Error("failed suspend must leave the user unchanged")
	}
}

func TestBanUser(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "troll", constants.RoleUser)

	updated, err := svc.BanUser(admin, target.ID, "abuse")
	if err != nil {
		t.Fatalf("BanUser failed: %v", err)
	}

	if !updated.IsBanned() {
		t.Error("user should be banned")
	}
	if updated.BanReason == nil || *updated.BanReason != "abuse" {
		t.Error("ban reason should be recorded")
	}
	if updated.IsActive {
		t.Error("ban must disable login")
	}
	if entry := lastAudit(t, db); entry.ActionType != constants.ActionBan {
		t.Errorf("expected BAN audit entry, got %s", entry.ActionType)
	}
}

func TestBanLastAdminRefused(t *testing.T) {
	svc, db := newTestService(t)
	sole := createUser(t, db, "sole-admin", constants.RoleAdmin)
	other := createUser(t, db, "other-admin", constants.RoleAdmin)

	// With two functional admins the ban goes through.
	if _, err := svc.BanUser(sole, other.ID, "compromised"); err != nil {
		t.Fatalf("banning one of two admins should succeed: %v", err)
	}

	// The banned admin no longer counts; sole is now the last one.
	actor := createUser(t, db, "helper", constants.RoleUser)
	_, err := svc.BanUser(actor, sole.ID, "lockout attempt")
	if !IsKind(err, ErrLastAdmin) {
		t.Fatalf("expected LastAdmin, got %v", err)
	}
}

func TestUnbanIsIdempotentAndAudited(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	// Unban of a user who was never banned is a no-op on the ban fields but
	// still lands in the ledger.
	updated, err := svc.UnbanUser(admin, target.ID, "precautionary")
	if err != nil {
		t.Fatalf("UnbanUser failed: %v", err)
	}
	if updated.BannedAt != nil || updated.BanReason != nil {
		t.Error("ban fields should stay clear")
	}
	if got := auditCount(t, db); got != 1 {
		t.Errorf("expected exactly 1 audit entry, got %d", got)
	}
}

func TestUnbanDoesNotReenableDisabledLogin(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	if _, err := svc.DisableLogin(admin, target.ID, "manual review"); err != nil {
		t.Fatalf("DisableLogin failed: %v", err)
	}
	if _, err := svc.BanUser(admin, target.ID, "abuse"); err != nil {
		t.Fatalf("BanUser failed: %v", err)
	}

	updated, err := svc.UnbanUser(admin, target.ID, "appeal accepted")
	if err != nil {
		t.Fatalf("UnbanUser failed: %v", err)
	}

	if updated.BannedAt != nil {
		t.Error("ban should be lifted")
	}
	if updated.IsActive {
		t.Error("unban must not silently re-enable a disabled account")
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	deleted, err := svc.SoftDeleteUser(admin, target.ID, "requested by user")
	if err != nil {
		t.Fatalf("SoftDeleteUser failed: %v", err)
	}
	if !deleted.IsDeleted || deleted.DeletedAt == nil || deleted.IsActive {
		t.Error("soft delete should hide the user and disable login")
	}

	restored, err := svc.RestoreUser(admin, target.ID, "changed their mind")
	if err != nil {
		t.Fatalf("RestoreUser failed: %v", err)
	}
	if restored.IsDeleted || restored.DeletedAt != nil {
		t.Error("restore should clear deletion flags")
	}
	if !restored.IsActive {
		t.Error("restore of an unrestricted user should re-enable login")
	}

	// A second restore has nothing to reverse.
	_, err = svc.RestoreUser(admin, target.ID, "again")
	if !IsKind(err, ErrInvalidState) {
		t.Fatalf("expected InvalidState on double restore, got %v", err)
	}
}

func TestRestoreKeepsBannedUserInactive(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	if _, err := svc.BanUser(admin, target.ID, "abuse"); err != nil {
		t.Fatalf("BanUser failed: %v", err)
	}
	if _, err := svc.SoftDeleteUser(admin, target.ID, "cleanup"); err != nil {
		t.Fatalf("SoftDeleteUser failed: %v", err)
	}

	restored, err := svc.RestoreUser(admin, target.ID, "undo cleanup")
	if err != nil {
		t.Fatalf("RestoreUser failed: %v", err)
	}
	if restored.IsActive {
		t.Error("restore must not re-enable login while a ban is in place")
	}
	if !restored.IsBanned() {
		t.Error("restore must not lift the ban")
	}
}

func TestPermanentDeleteGracePeriod(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	// Not soft deleted yet.
	err := svc.PermanentDeleteUser(admin, target.ID, "cleanup")
	if !IsKind(err, ErrInvalidState) {
		t.Fatalf("expected InvalidState, got %v", err)
	}

	// 29 days in: still inside the grace period.
	deletedAt := time.Now().Add(-29 * 24 * time.Hour)
	if err := db.Model(&models.User{}).Where("id = ?", target.ID).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": deletedAt, "is_active": false}).Error; err != nil {
		t.Fatalf("failed to stage soft delete: %v", err)
	}
	err = svc.PermanentDeleteUser(admin, target.ID, "cleanup")
	if !IsKind(err, ErrTooSoon) {
		t.Fatalf("expected TooSoon at 29 days, got %v", err)
	}
	if got := auditCount(t, db); got != 0 {
		t.Errorf("refused delete must not write audit entries, got %d", got)
	}

	// 31 days in: grace period over.
	deletedAt = time.Now().Add(-31 * 24 * time.Hour)
	if err := db.Model(&models.User{}).Where("id = ?", target.ID).
		Update("deleted_at", deletedAt).Error; err != nil {
		t.Fatalf("failed to backdate soft delete: %v", err)
	}
	if err := svc.PermanentDeleteUser(admin, target.ID, "cleanup"); err != nil {
		t.Fatalf("PermanentDeleteUser failed after grace period: %v", err)
	}

	var gone models.User
	if err := db.First(&gone, "id = ?", target.ID).Error; err != gorm.ErrRecordNotFound {
		t.Errorf("user should be unreadable after permanent delete, got %v", err)
	}

	// The ledger outlives the target.
	entry := lastAudit(t, db)
	if entry.ActionType != constants.ActionPermanentDelete || entry.TargetID != target.ID {
		t.Error("permanent delete should leave an audit entry for the removed user")
	}
}

func TestUpdateUserRole(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	updated, err := svc.UpdateUserRole(admin, target.ID, constants.RoleExpert, "verified credentials")
	if err != nil {
		t.Fatalf("UpdateUserRole failed: %v", err)
	}
	if updated.Role != constants.RoleExpert {
		t.Errorf("expected EXPERT role, got %s", updated.Role)
	}

	entry := lastAudit(t, db)
	if entry.ActionType != constants.ActionRoleChange {
		t.Errorf("expected ROLE_CHANGE audit entry, got %s", entry.ActionType)
	}
	if len(entry.Metadata) == 0 {
		t.Error("role change should record old and new role in metadata")
	}
}

func TestSelfDemotionRefused(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	createUser(t, db, "backup-admin", constants.RoleAdmin)

	_, err := svc.UpdateUserRole(admin, admin.ID, constants.RoleUser, "demote")
	if !IsKind(err, ErrSelfDemotion) {
		t.Fatalf("expected SelfDemotion, got %v", err)
	}
	if u := reload(t, db, admin.ID); u.Role != constants.RoleAdmin {
		t.Error("failed demotion must leave the role unchanged")
	}
}

func TestDemoteLastAdminRefused(t *testing.T) {
	svc, db := newTestService(t)
	sole := createUser(t, db, "sole-admin", constants.RoleAdmin)
	actor := createUser(t, db, "moderator", constants.RoleUser)

	// Regardless of who asks, the sole functional admin cannot be demoted.
	_, err := svc.UpdateUserRole(actor, sole.ID, constants.RoleUser, "demote")
	if !IsKind(err, ErrLastAdmin) {
		t.Fatalf("expected LastAdmin, got %v", err)
	}
}

func TestPromotionToAdminAlwaysAllowed(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	updated, err := svc.UpdateUserRole(admin, target.ID, constants.RoleAdmin, "new co-admin")
	if err != nil {
		t.Fatalf("promotion failed: %v", err)
	}
	if updated.Role != constants.RoleAdmin {
		t.Errorf("expected ADMIN role, got %s", updated.Role)
	}
}

func TestEnableLoginBlockedByRestrictions(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	banned := createUser(t, db, "banned", constants.RoleUser)
	suspended := createUser(t, db, "suspended", constants.RoleUser)

	if _, err := svc.BanUser(admin, banned.ID, "abuse"); err != nil {
		t.Fatalf("BanUser failed: %v", err)
	}
	if _, err := svc.EnableLogin(admin, banned.ID, "reinstate"); !IsKind(err, ErrStillBanned) {
		t.Errorf("expected StillBanned, got %v", err)
	}

	if _, err := svc.SuspendUser(admin, suspended.ID, time.Now().Add(7*24*time.Hour), "spam"); err != nil {
		t.Fatalf("SuspendUser failed: %v", err)
	}
	if _, err := svc.EnableLogin(admin, suspended.ID, "reinstate"); !IsKind(err, ErrStillSuspended) {
		t.Errorf("expected StillSuspended, got %v", err)
	}
}

func TestDisableThenEnableLogin(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	disabled, err := svc.DisableLogin(admin, target.ID, "manual review")
	if err != nil {
		t.Fatalf("DisableLogin failed: %v", err)
	}
	if disabled.IsActive {
		t.Error("disable login should clear IsActive")
	}

	enabled, err := svc.EnableLogin(admin, target.ID, "review done")
	if err != nil {
		t.Fatalf("EnableLogin failed: %v", err)
	}
	if !enabled.IsActive {
		t.Error("enable login should set IsActive")
	}

	if got := auditCount(t, db); got != 2 {
		t.Errorf("expected 2 audit entries, got %d", got)
	}
}

func TestExpiredSuspensionDoesNotBlockEnable(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	target := createUser(t, db, "student", constants.RoleUser)

	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.User{}).Where("id = ?", target.ID).
		Updates(map[string]interface{}{"suspended_until": past, "is_active": false}).Error; err != nil {
		t.Fatalf("failed to stage expired suspension: %v", err)
	}

	enabled, err := svc.EnableLogin(admin, target.ID, "suspension lapsed")
	if err != nil {
		t.Fatalf("EnableLogin failed for expired suspension: %v", err)
	}
	if !enabled.IsActive {
		t.Error("enable login should succeed once the suspension window has passed")
	}
}

func TestOperationsOnMissingUser(t *testing.T) {
	svc, db := newTestService(t)
	admin := createUser(t, db, "admin", constants.RoleAdmin)
	missing := uuid.New()

	cases := map[string]error{}
	_, err := svc.SuspendUser(admin, missing, time.Now().Add(time.Hour), "x")
	cases["suspend"] = err
	_, err = svc.BanUser(admin, missing, "x")
	cases["ban"] = err
	_, err = svc.RestoreUser(admin, missing, "x")
	cases["restore"] = err
	_, err = svc.UpdateUserRole(admin, missing, constants.RoleExpert, "x")
	cases["role"] = err
	cases["permanent-delete"] = svc.PermanentDeleteUser(admin, missing, "x")

	for name, err := range cases {
		if !IsKind(err, ErrNotFound) {
			t.Errorf("%s: expected NotFound, got %v", name, err)
		}
	}
	if got := auditCount(t, db); got != 0 {
		t.Errorf("missing targets must not produce audit entries, got %d", got)
	}
}
