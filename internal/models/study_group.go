package models

import (
	"time"

	"github.com/google/uuid"
)

type StudyGroup struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"courseId"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
