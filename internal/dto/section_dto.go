package dto

import "github.com/acadsuite/campus-api/internal/models"

// SectionCreateRequest carries the fields to create a section.
type SectionCreateRequest struct {
	DepartmentID uint   `json:"department_id" validate:"required"`
	Semester     string `json:"semester" validate:"required,max=20"`
	Name         string `json:"name" validate:"required,max=50"`
	Size         int    `json:"size" validate:"omitempty,min=0"`
}

// SectionUpdateRequest carries the editable section fields.
type SectionUpdateRequest struct {
	DepartmentID *uint   `json:"department_id"`
	Semester     *string `json:"semester" validate:"omitempty,max=20"`
	Name         *string `json:"name" validate:"omitempty,max=50"`
	Size         *int    `json:"size" validate:"omitempty,min=0"`
}

// SectionListRequest narrows the section listing.
type SectionListRequest struct {
	DepartmentID *uint
	CollegeID    *uint
	Semester     string
	Name         string
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// SectionResponse is the public shape of a section.
type SectionResponse struct {
	ID           uint                `json:"id"`
	DepartmentID uint                `json:"department_id"`
	Department   *DepartmentResponse `json:"department,omitempty"`
	Semester     string              `json:"semester"`
	Name         string              `json:"name"`
	Size         int                 `json:"size"`
}

// NewSectionResponse maps a section model into its public shape.
func NewSectionResponse(section models.Section) SectionResponse {
	response := SectionResponse{
		ID:           section.ID,
		DepartmentID: section.DepartmentID,
		Semester:     section.Semester,
		Name:         section.Name,
		Size:         section.Size,
	}
	if section.Department != nil {
		department := NewDepartmentResponse(*section.Department)
		response.Department = &department
	}
	return response
}

// SectionListResponse is a page of sections.
type SectionListResponse struct {
	Items      []SectionResponse `json:"items"`
	Pagination PageMeta          `json:"pagination"`
}
