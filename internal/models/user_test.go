package models

import (
	"testing"
	"time"

	"moderation-api/internal/constants"
)

func TestCanLogin(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	now := time.Now()

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"active user", User{IsActive: true}, true},
		{"inactive user", User{IsActive: false}, false},
		{"banned user", User{IsActive: true, BannedAt: &now}, false},
		{"suspended user", User{IsActive: true, SuspendedUntil: &future}, false},
		{"expired suspension", User{IsActive: true, SuspendedUntil: &past}, true},
		{"soft deleted user", User{IsActive: true, IsDeleted: true}, false},
		{"banned and inactive", User{IsActive: false, BannedAt: &now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanLogin(); got != tt.want {
				t.Errorf("CanLogin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSuspended(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	if (&User{}).IsSuspended() {
		t.Error("user with no suspension should not be suspended")
	}
	if !(&User{SuspendedUntil: &future}).IsSuspended() {
		t.Error("user with a future suspension end should be suspended")
	}
	if (&User{SuspendedUntil: &past}).IsSuspended() {
		t.Error("suspension should expire on its own")
	}
}

func TestIsAdmin(t *testing.T) {
	if !(&User{Role: constants.RoleAdmin}).IsAdmin() {
		t.Error("ADMIN role should report as admin")
	}
	if (&User{Role: constants.RoleExpert}).IsAdmin() {
		t.Error("EXPERT role should not report as admin")
	}
}
