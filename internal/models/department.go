package models

import "time"

// Department groups users, faculty, students, rooms and sections. Name and
// code are unique across the institution.
type Department struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:200;uniqueIndex;not null" json:"name"`
	Code               string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Description        string    `json:"description"`
	CollegeID          *uint     `json:"college_id"`
	College            *College  `gorm:"foreignKey:CollegeID" json:"college,omitempty"`
	HeadOfDepartmentID *uint     `json:"head_of_department_id"`
	Active             bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
