package models

import (
	"time"

	"gorm.io/datatypes"
)

// Student is an enrolled learner. The enrollment number is the natural key
// used by bulk import upserts.
type Student struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	FirstName           string            `gorm:"size:100;not null" json:"first_name"`
	LastName            string            `gorm:"size:100;not null" json:"last_name"`
	Email               string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	EnrollmentNo        string            `gorm:"size:50;uniqueIndex;not null" json:"enrollment_no"`
	DepartmentID        *uint             `json:"department_id"`
	Department          *Department       `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	CurrentSemester     string            `gorm:"size:20" json:"current_semester"`
	MajorSubjects       datatypes.JSON    `gorm:"type:json" json:"major_subjects"`
	MinorSubjects       datatypes.JSON    `gorm:"type:json" json:"minor_subjects"`
	ElectivePreferences datatypes.JSON    `gorm:"type:json" json:"elective_preferences"`
	CreditRequirements  datatypes.JSONMap `gorm:"type:json" json:"credit_requirements"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}
