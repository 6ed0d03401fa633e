package models

import (
	"strings"
	"time"
)

// Role values form a closed set; permission checks switch over them
// exhaustively so a new role cannot be added without revisiting every rule.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleDeptAdmin  Role = "dept_admin"
	RoleFaculty    Role = "faculty"
	RoleStudent    Role = "student"
)

// Roles lists every valid role value.
var Roles = []Role{RoleSuperAdmin, RoleDeptAdmin, RoleFaculty, RoleStudent}

// ParseRole normalises a raw role string, returning false for unknown values.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleSuperAdmin, RoleDeptAdmin, RoleFaculty, RoleStudent:
		return role, true
	}
	return "", false
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Display returns the human readable label for the role.
func (r Role) Display() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleDeptAdmin:
		return "Department Admin"
	case RoleFaculty:
		return "Faculty"
	case RoleStudent:
		return "Student"
	}
	return string(r)
}

// User is an account with role-based access to the system. Accounts are never
// hard-deleted; deactivation flips Active to false and keeps the row.
type User struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Username      string      `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email         string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string      `gorm:"size:255;not null" json:"-"`
	FirstName     string      `gorm:"size:100" json:"first_name"`
	LastName      string      `gorm:"size:100" json:"last_name"`
	Role          Role        `gorm:"size:20;not null;default:student" json:"role"`
	DepartmentID  *uint       `json:"department_id"`
	Department    *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	ContactNumber string      `gorm:"size:15" json:"contact_number"`
	EmployeeID    *string     `gorm:"size:20;uniqueIndex" json:"employee_id"`
	DateOfBirth   *time.Time  `json:"date_of_birth"`
	Address       string      `json:"address"`
	Active        bool        `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt   *time.Time  `json:"last_login"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// FullName joins first and last name, trimming when either is empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SameDepartment reports whether the other user belongs to the same department.
func (u User) SameDepartment(other User) bool {
	return u.DepartmentID != nil && other.DepartmentID != nil && *u.DepartmentID == *other.DepartmentID
}
