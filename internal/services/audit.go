package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"moderation-api/internal/constants"
	"moderation-api/internal/models"
)

// serializeMetadata marshals action metadata to JSON. When marshalling fails
// the action is still logged, with an explicit unserializable flag instead of
// a lossy string dump, so the ledger stays machine-parseable.
func serializeMetadata(metadata map[string]interface{}) datatypes.JSON {
	if len(metadata) == 0 {
		return nil
	}

	payload, err := json.Marshal(metadata)
	if err != nil {
		fallback, _ := json.Marshal(map[string]interface{}{
			"unserializable": true,
			"error":          err.Error(),
		})
		return datatypes.JSON(fallback)
	}

	return datatypes.JSON(payload)
}

// logAction appends one audit row inside the caller's transaction. A failed
// append fails the transaction; the ledger and the mutation commit together
// or not at all.
func logAction(tx *gorm.DB, admin models.User, action constants.ActionType, targetType constants.TargetType, targetID uuid.UUID, reason string, metadata map[string]interface{}) error {
	entry := models.AdminAuditLog{
		AdminUserID: admin.ID,
		ActionType:  action,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      reason,
		Metadata:    serializeMetadata(metadata),
	}

	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}
