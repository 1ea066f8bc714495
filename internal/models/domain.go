package models

import (
	"time"

	"github.com/google/uuid"
)

type DomainStatus string

const (
	DomainAllow DomainStatus = "ALLOW"
	DomainBlock DomainStatus = "BLOCK"
)

// AllowedEmailDomain is an entry of the institutional email allow/block list
// consulted during registration.
type AllowedEmailDomain struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Domain          string       `gorm:"uniqueIndex;not null" json:"domain"`
	Status          DomainStatus `gorm:"type:varchar(8);not null;default:'ALLOW'" json:"status"`
	InstitutionName string       `json:"institutionName,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}
