package dto

import (
	"encoding/json"

	"github.com/acadsuite/campus-api/internal/models"
)

// StudentCreateRequest carries the fields to create a student record. The
// subject lists and credit requirements are opaque documents.
type StudentCreateRequest struct {
	FirstName           string                 `json:"first_name" validate:"required,max=100"`
	LastName            string                 `json:"last_name" validate:"required,max=100"`
	Email               string                 `json:"email" validate:"required,email"`
	EnrollmentNo        string                 `json:"enrollment_no" validate:"required,max=50"`
	DepartmentID        *uint                  `json:"department_id"`
	CurrentSemester     string                 `json:"current_semester" validate:"omitempty,max=20"`
	MajorSubjects       []interface{}          `json:"major_subjects"`
	MinorSubjects       []interface{}          `json:"minor_subjects"`
	ElectivePreferences []interface{}          `json:"elective_preferences"`
	CreditRequirements  map[string]interface{} `json:"credit_requirements"`
}

// StudentUpdateRequest carries the editable student fields.
type StudentUpdateRequest struct {
	FirstName           *string                `json:"first_name" validate:"omitempty,max=100"`
	LastName            *string                `json:"last_name" validate:"omitempty,max=100"`
	Email               *string                `json:"email" validate:"omitempty,email"`
	EnrollmentNo        *string                `json:"enrollment_no" validate:"omitempty,max=50"`
	DepartmentID        *uint                  `json:"department_id"`
	CurrentSemester     *string                `json:"current_semester" validate:"omitempty,max=20"`
	MajorSubjects       []interface{}          `json:"major_subjects"`
	MinorSubjects       []interface{}          `json:"minor_subjects"`
	ElectivePreferences []interface{}          `json:"elective_preferences"`
	CreditRequirements  map[string]interface{} `json:"credit_requirements"`
}

// StudentListRequest narrows the student listing.
type StudentListRequest struct {
	DepartmentID    *uint
	CollegeID       *uint
	CurrentSemester string
	Search          string
	Sort            string
	Page            int
	PageSize        int
}

// StudentResponse is the public shape of a student record.
type StudentResponse struct {
	ID                  uint                   `json:"id"`
	FirstName           string                 `json:"first_name"`
	LastName            string                 `json:"last_name"`
	Email               string                 `json:"email"`
	EnrollmentNo        string                 `json:"enrollment_no"`
	DepartmentID        *uint                  `json:"department_id"`
	Department          *DepartmentResponse    `json:"department,omitempty"`
	CurrentSemester     string                 `json:"current_semester"`
	MajorSubjects       []interface{}          `json:"major_subjects"`
	MinorSubjects       []interface{}          `json:"minor_subjects"`
	ElectivePreferences []interface{}          `json:"elective_preferences"`
	CreditRequirements  map[string]interface{} `json:"credit_requirements"`
}

// NewStudentResponse maps a student model into its public shape.
func NewStudentResponse(student models.Student) StudentResponse {
	response := StudentResponse{
		ID:                 student.ID,
		FirstName:          student.FirstName,
		LastName:           student.LastName,
		Email:              student.Email,
		EnrollmentNo:       student.EnrollmentNo,
		DepartmentID:       student.DepartmentID,
		CurrentSemester:    student.CurrentSemester,
		CreditRequirements: student.CreditRequirements,
	}
	response.MajorSubjects = decodeJSONList(student.MajorSubjects)
	response.MinorSubjects = decodeJSONList(student.MinorSubjects)
	response.ElectivePreferences = decodeJSONList(student.ElectivePreferences)
	if student.Department != nil {
		department := NewDepartmentResponse(*student.Department)
		response.Department = &department
	}
	return response
}

func decodeJSONList(raw []byte) []interface{} {
	if len(raw) == 0 {
		return []interface{}{}
	}
	var list []interface{}
	if err := json.Unmarshal(raw, &list); err != nil {
		return []interface{}{}
	}
	return list
}

// StudentListResponse is a page of student records.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PageMeta          `json:"pagination"`
}
