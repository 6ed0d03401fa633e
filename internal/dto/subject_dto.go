package dto

import "github.com/acadsuite/campus-api/internal/models"

// SubjectCreateRequest carries the fields to create a subject.
type SubjectCreateRequest struct {
	Code             string `json:"code" validate:"required,max=50"`
	Name             string `json:"name" validate:"required,max=255"`
	Category         string `json:"category" validate:"required"`
	CreditsTheory    *int   `json:"credits_theory" validate:"omitempty,min=0"`
	CreditsPractical *int   `json:"credits_practical" validate:"omitempty,min=0"`
	PrerequisiteIDs  []uint `json:"prerequisite_ids"`
	DepartmentIDs    []uint `json:"department_ids"`
}

// SubjectUpdateRequest carries the editable subject fields. Nil association
// slices are left unchanged; empty slices clear the association.
type SubjectUpdateRequest struct {
	Code             *string `json:"code" validate:"omitempty,max=50"`
	Name             *string `json:"name" validate:"omitempty,max=255"`
	Category         *string `json:"category"`
	CreditsTheory    *int    `json:"credits_theory" validate:"omitempty,min=0"`
	CreditsPractical *int    `json:"credits_practical" validate:"omitempty,min=0"`
	PrerequisiteIDs  []uint  `json:"prerequisite_ids"`
	DepartmentIDs    []uint  `json:"department_ids"`
}

// SubjectListRequest narrows the subject listing.
type SubjectListRequest struct {
	Category     string
	DepartmentID *uint
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// SubjectResponse is the public shape of a subject.
type SubjectResponse struct {
	ID               uint   `json:"id"`
	Code             string `json:"code"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	CreditsTheory    int    `json:"credits_theory"`
	CreditsPractical int    `json:"credits_practical"`
	PrerequisiteIDs  []uint `json:"prerequisite_ids"`
	DepartmentIDs    []uint `json:"department_ids"`
}

// NewSubjectResponse maps a subject model into its public shape.
func NewSubjectResponse(subject models.Subject) SubjectResponse {
	prerequisiteIDs := make([]uint, 0, len(subject.Prerequisites))
	for _, prereq := range subject.Prerequisites {
		prerequisiteIDs = append(prerequisiteIDs, prereq.ID)
	}

	departmentIDs := make([]uint, 0, len(subject.Departments))
	for _, department := range subject.Departments {
		departmentIDs = append(departmentIDs, department.ID)
	}

	return SubjectResponse{
		ID:               subject.ID,
		Code:             subject.Code,
		Name:             subject.Name,
		Category:         subject.Category,
		CreditsTheory:    subject.CreditsTheory,
		CreditsPractical: subject.CreditsPractical,
		PrerequisiteIDs:  prerequisiteIDs,
		DepartmentIDs:    departmentIDs,
	}
}

// SubjectListResponse is a page of subjects.
type SubjectListResponse struct {
	Items      []SubjectResponse `json:"items"`
	Pagination PageMeta          `json:"pagination"`
}
