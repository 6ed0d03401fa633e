package dto

import (
	"time"

	"github.com/acadsuite/campus-api/internal/models"
)

// RegisterRequest carries the fields accepted during registration. Role is
// optional; self-registration defaults to student.
type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=150"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Role            string  `json:"role"`
	DepartmentID    *uint   `json:"department_id"`
	ContactNumber   string  `json:"contact_number" validate:"omitempty,max=15"`
	EmployeeID      *string `json:"employee_id"`
	DateOfBirth     *string `json:"date_of_birth"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest presents a refresh token for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh" validate:"required"`
}

// LogoutRequest presents the refresh token to invalidate.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// PasswordChangeRequest carries the password change fields.
type PasswordChangeRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// ProfileUpdateRequest carries the self-service profile fields. Nil fields
// are left unchanged.
type ProfileUpdateRequest struct {
	Email         *string `json:"email" validate:"omitempty,email"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=15"`
	EmployeeID    *string `json:"employee_id"`
	DateOfBirth   *string `json:"date_of_birth"`
	Address       *string `json:"address"`
}

// TokenResponse is the issued token pair.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// UserResponse is the public shape of a user account.
type UserResponse struct {
	ID            uint       `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	FullName      string     `json:"full_name"`
	Role          string     `json:"role"`
	RoleDisplay   string     `json:"role_display"`
	DepartmentID  *uint      `json:"department_id"`
	ContactNumber string     `json:"contact_number"`
	EmployeeID    *string    `json:"employee_id"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Address       string     `json:"address"`
	Active        bool       `json:"is_active"`
	LastLogin     *time.Time `json:"last_login"`
	DateJoined    time.Time  `json:"date_joined"`
}

// NewUserResponse maps a user model into its public shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		FullName:      user.FullName(),
		Role:          string(user.Role),
		RoleDisplay:   user.Role.Display(),
		DepartmentID:  user.DepartmentID,
		ContactNumber: user.ContactNumber,
		EmployeeID:    user.EmployeeID,
		DateOfBirth:   user.DateOfBirth,
		Address:       user.Address,
		Active:        user.Active,
		LastLogin:     user.LastLoginAt,
		DateJoined:    user.CreatedAt,
	}
}

// AuthResponse bundles the authenticated user with a fresh token pair.
type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}
