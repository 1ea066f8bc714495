package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"moderation-api/internal/constants"
)

// AdminAuditLog is one row of the append-only moderation ledger. Rows are
// created inside the same transaction as the action they record and are never
// updated or deleted afterwards.
type AdminAuditLog struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	AdminUserID uuid.UUID            `gorm:"type:uuid;not null;index" json:"adminUserId"`
	ActionType  constants.ActionType `gorm:"type:varchar(32);not null;index" json:"actionType"`
	TargetType  constants.TargetType `gorm:"type:varchar(16);not null" json:"targetType"`
	TargetID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"targetId"`
	Reason      string               `gorm:"type:text;not null" json:"reason"`
	Metadata    datatypes.JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time            `gorm:"index" json:"createdAt"`
}

func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
