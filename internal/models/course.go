package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	IsArchived  bool       `gorm:"default:false" json:"isArchived"`
	ArchivedAt  *time.Time `gorm:"default:null" json:"archivedAt,omitempty"`

	Students []User       `gorm:"many2many:course_students" json:"students,omitempty"`
	Groups   []StudyGroup `gorm:"foreignKey:CourseID" json:"groups,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
