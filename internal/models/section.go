package models

import "time"

// Section is a cohort within a department and semester. The
// (department, semester, name) triple is the natural key.
type Section struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	DepartmentID uint        `gorm:"not null;uniqueIndex:idx_section_natural_key" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Semester     string      `gorm:"size:20;not null;uniqueIndex:idx_section_natural_key" json:"semester"`
	Name         string      `gorm:"size:50;not null;uniqueIndex:idx_section_natural_key" json:"name"`
	Size         int         `gorm:"not null;default:0" json:"size"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
