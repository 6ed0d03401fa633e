package dto

// UserListRequest narrows the admin user listing.
type UserListRequest struct {
	Role         string
	DepartmentID *uint
	Active       *bool
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// AdminUserUpdateRequest carries the admin-editable user fields. Nil fields
// are left unchanged.
type AdminUserUpdateRequest struct {
	Email         *string `json:"email" validate:"omitempty,email"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Role          *string `json:"role"`
	DepartmentID  *uint   `json:"department_id"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=15"`
	EmployeeID    *string `json:"employee_id"`
	Active        *bool   `json:"is_active"`
}

// UserListResponse is a page of users.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PageMeta       `json:"pagination"`
}
