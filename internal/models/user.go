package models

import (
	"time"

	"github.com/google/uuid"

	"moderation-api/internal/constants"
)

type User struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username string         `gorm:"uniqueIndex;not null" json:"username"`
	Email    string         `gorm:"uniqueIndex;not null" json:"email"`
	Password string         `gorm:"not null" json:"-"`
	Role     constants.Role `gorm:"type:varchar(16);not null;default:'USER'" json:"role"`

	// Moderation flags. Suspension and ban are orthogonal; IsActive is an
	// independently managed gate that none of them derive.
	IsActive         bool       `gorm:"default:true" json:"isActive"`
	SuspendedUntil   *time.Time `gorm:"default:null" json:"suspendedUntil,omitempty"`
	SuspensionReason *string    `gorm:"type:text" json:"suspensionReason,omitempty"`
	BannedAt         *time.Time `gorm:"default:null" json:"bannedAt,omitempty"`
	BanReason        *string    `gorm:"type:text" json:"banReason,omitempty"`
	IsDeleted        bool       `gorm:"default:false;index" json:"isDeleted"`
	DeletedAt        *time.Time `gorm:"default:null" json:"deletedAt,omitempty"`

	LastLoginAt *time.Time `gorm:"default:null" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsSuspended reports whether the user is under an unexpired suspension.
func (u *User) IsSuspended() bool {
	return u.SuspendedUntil != nil && u.SuspendedUntil.After(time.Now())
}

// IsBanned reports whether the user is banned.
func (u *User) IsBanned() bool {
	return u.BannedAt != nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

// CanLogin is the single login-eligibility decision: the account must be
// active and carry no ban, unexpired suspension, or soft deletion.
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsBanned() && !u.IsSuspended() && !u.IsDeleted
}
