package models

import (
	"time"

	"gorm.io/datatypes"
)

// Faculty is a teaching staff record. Availability and preferences are opaque
// documents; the API stores and returns them without interpreting the shape.
type Faculty struct {
	ID                    uint              `gorm:"primaryKey" json:"id"`
	FirstName             string            `gorm:"size:100;not null" json:"first_name"`
	LastName              string            `gorm:"size:100;not null" json:"last_name"`
	Email                 string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DepartmentID          uint              `gorm:"not null" json:"department_id"`
	Department            *Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Qualifications        string            `gorm:"size:255" json:"qualifications"`
	ExperienceYears       int               `gorm:"not null;default:0" json:"experience_years"`
	WorkloadCapacityHours int               `gorm:"not null;default:16" json:"workload_capacity_hours"`
	Availability          datatypes.JSONMap `gorm:"type:json" json:"availability"`
	Preferences           datatypes.JSONMap `gorm:"type:json" json:"preferences"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
}
