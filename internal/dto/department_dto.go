package dto

import "github.com/acadsuite/campus-api/internal/models"

// DepartmentCreateRequest carries the fields to create a department.
type DepartmentCreateRequest struct {
	Name               string `json:"name" validate:"required,max=200"`
	Code               string `json:"code" validate:"required,max=20"`
	Description        string `json:"description"`
	CollegeID          *uint  `json:"college_id"`
	HeadOfDepartmentID *uint  `json:"head_of_department_id"`
}

// DepartmentUpdateRequest carries the editable department fields.
type DepartmentUpdateRequest struct {
	Name               *string `json:"name" validate:"omitempty,max=200"`
	Code               *string `json:"code" validate:"omitempty,max=20"`
	Description        *string `json:"description"`
	CollegeID          *uint   `json:"college_id"`
	HeadOfDepartmentID *uint   `json:"head_of_department_id"`
	Active             *bool   `json:"is_active"`
}

// DepartmentListRequest narrows the department listing.
type DepartmentListRequest struct {
	Name      string
	Code      string
	CollegeID *uint
	Active    *bool
	Search    string
	Sort      string
	Page      int
	PageSize  int
}

// DepartmentResponse is the public shape of a department.
type DepartmentResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	Description        string `json:"description"`
	CollegeID          *uint  `json:"college_id"`
	HeadOfDepartmentID *uint  `json:"head_of_department_id"`
	Active             bool   `json:"is_active"`
}

// NewDepartmentResponse maps a department model into its public shape.
func NewDepartmentResponse(department models.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                 department.ID,
		Name:               department.Name,
		Code:               department.Code,
		Description:        department.Description,
		CollegeID:          department.CollegeID,
		HeadOfDepartmentID: department.HeadOfDepartmentID,
		Active:             department.Active,
	}
}

// DepartmentListResponse is a page of departments.
type DepartmentListResponse struct {
	Items      []DepartmentResponse `json:"items"`
	Pagination PageMeta             `json:"pagination"`
}
