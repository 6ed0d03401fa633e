package dto

import "github.com/acadsuite/campus-api/internal/models"

// CollegeCreateRequest carries the fields to create a college.
type CollegeCreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,max=50"`
}

// CollegeUpdateRequest carries the editable college fields.
type CollegeUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,max=255"`
	Code *string `json:"code" validate:"omitempty,max=50"`
}

// CollegeListRequest narrows the college listing.
type CollegeListRequest struct {
	Name     string
	Code     string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// CollegeResponse is the public shape of a college.
type CollegeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// NewCollegeResponse maps a college model into its public shape.
func NewCollegeResponse(college models.College) CollegeResponse {
	return CollegeResponse{ID: college.ID, Name: college.Name, Code: college.Code}
}

// CollegeListResponse is a page of colleges.
type CollegeListResponse struct {
	Items      []CollegeResponse `json:"items"`
	Pagination PageMeta          `json:"pagination"`
}

// CollegeSummaryResponse aggregates everything attached to a college.
type CollegeSummaryResponse struct {
	College     CollegeResponse      `json:"college"`
	Departments []DepartmentResponse `json:"departments"`
	Faculties   []FacultyResponse    `json:"faculties"`
	Students    []StudentResponse    `json:"students"`
	Rooms       []RoomResponse       `json:"rooms"`
	Subjects    []SubjectResponse    `json:"subjects"`
	Sections    []SectionResponse    `json:"sections"`
}
