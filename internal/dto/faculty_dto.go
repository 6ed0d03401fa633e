package dto

import "github.com/acadsuite/campus-api/internal/models"

// FacultyCreateRequest carries the fields to create a faculty record.
// Availability and preferences are opaque documents stored as-is.
type FacultyCreateRequest struct {
	FirstName             string                 `json:"first_name" validate:"required,max=100"`
	LastName              string                 `json:"last_name" validate:"required,max=100"`
	Email                 string                 `json:"email" validate:"required,email"`
	DepartmentID          uint                   `json:"department_id" validate:"required"`
	Qualifications        string                 `json:"qualifications" validate:"omitempty,max=255"`
	ExperienceYears       *int                   `json:"experience_years" validate:"omitempty,min=0"`
	WorkloadCapacityHours *int                   `json:"workload_capacity_hours" validate:"omitempty,min=0"`
	Availability          map[string]interface{} `json:"availability"`
	Preferences           map[string]interface{} `json:"preferences"`
}

// FacultyUpdateRequest carries the editable faculty fields.
type FacultyUpdateRequest struct {
	FirstName             *string                `json:"first_name" validate:"omitempty,max=100"`
	LastName              *string                `json:"last_name" validate:"omitempty,max=100"`
	Email                 *string                `json:"email" validate:"omitempty,email"`
	DepartmentID          *uint                  `json:"department_id"`
	Qualifications        *string                `json:"qualifications" validate:"omitempty,max=255"`
	ExperienceYears       *int                   `json:"experience_years" validate:"omitempty,min=0"`
	WorkloadCapacityHours *int                   `json:"workload_capacity_hours" validate:"omitempty,min=0"`
	Availability          map[string]interface{} `json:"availability"`
	Preferences           map[string]interface{} `json:"preferences"`
}

// FacultyListRequest narrows the faculty listing.
type FacultyListRequest struct {
	DepartmentID    *uint
	CollegeID       *uint
	ExperienceYears *int
	Search          string
	Sort            string
	Page            int
	PageSize        int
}

// FacultyResponse is the public shape of a faculty record.
type FacultyResponse struct {
	ID                    uint                   `json:"id"`
	FirstName             string                 `json:"first_name"`
	LastName              string                 `json:"last_name"`
	Email                 string                 `json:"email"`
	DepartmentID          uint                   `json:"department_id"`
	Department            *DepartmentResponse    `json:"department,omitempty"`
	Qualifications        string                 `json:"qualifications"`
	ExperienceYears       int                    `json:"experience_years"`
	WorkloadCapacityHours int                    `json:"workload_capacity_hours"`
	Availability          map[string]interface{} `json:"availability"`
	Preferences           map[string]interface{} `json:"preferences"`
}

// NewFacultyResponse maps a faculty model into its public shape.
func NewFacultyResponse(faculty models.Faculty) FacultyResponse {
	response := FacultyResponse{
		ID:                    faculty.ID,
		FirstName:             faculty.FirstName,
		LastName:              faculty.LastName,
		Email:                 faculty.Email,
		DepartmentID:          faculty.DepartmentID,
		Qualifications:        faculty.Qualifications,
		ExperienceYears:       faculty.ExperienceYears,
		WorkloadCapacityHours: faculty.WorkloadCapacityHours,
		Availability:          faculty.Availability,
		Preferences:           faculty.Preferences,
	}
	if faculty.Department != nil {
		department := NewDepartmentResponse(*faculty.Department)
		response.Department = &department
	}
	return response
}

// FacultyListResponse is a page of faculty records.
type FacultyListResponse struct {
	Items      []FacultyResponse `json:"items"`
	Pagination PageMeta          `json:"pagination"`
}

// BulkImportResponse reports the outcome of a bulk upload.
type BulkImportResponse struct {
	Processed int `json:"processed"`
}
