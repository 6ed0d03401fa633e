package models

import (
	"strings"
	"time"
)

// Subject categories follow the NEP curriculum buckets.
const (
	SubjectCategoryMajor = "Major"
	SubjectCategoryMinor = "Minor"
	SubjectCategorySEC   = "SEC"
	SubjectCategoryVAC   = "VAC"
	SubjectCategoryAEC   = "AEC"
)

// SubjectCategories lists the accepted category values.
var SubjectCategories = []string{
	SubjectCategoryMajor,
	SubjectCategoryMinor,
	SubjectCategorySEC,
	SubjectCategoryVAC,
	SubjectCategoryAEC,
}

// ValidSubjectCategory reports whether the category is one of the known buckets.
func ValidSubjectCategory(category string) bool {
	for _, known := range SubjectCategories {
		if strings.EqualFold(known, category) {
			return true
		}
	}
	return false
}

// Subject is a course offering. Prerequisites form a self-referential set and
// a subject can be taught by multiple departments.
type Subject struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	Code             string       `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name             string       `gorm:"size:255;not null" json:"name"`
	Category         string       `gorm:"size:50;not null" json:"category"`
	CreditsTheory    int          `gorm:"not null;default:0" json:"credits_theory"`
	CreditsPractical int          `gorm:"not null;default:0" json:"credits_practical"`
	Prerequisites    []*Subject   `gorm:"many2many:subject_prerequisites;joinForeignKey:SubjectID;joinReferences:PrerequisiteID" json:"prerequisites,omitempty"`
	Departments      []Department `gorm:"many2many:subject_departments" json:"departments,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
