package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest payload.
type CreateUserRequest struct {
	Username    string      `json:"username"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
	EmployeeID  *string     `json:"employee_id,omitempty"`
	PhoneNumber *string     `json:"phone_number,omitempty"`
	Department  *string     `json:"department,omitempty"`
	BranchID    *string     `json:"branch_id,omitempty"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SetUserActiveRequest payload.
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// UserResponse response. Password material is never serialized.
type UserResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	EmployeeID  *string     `json:"employee_id,omitempty"`
	PhoneNumber *string     `json:"phone_number,omitempty"`
	Department  *string     `json:"department,omitempty"`
	BranchID    *string     `json:"branch_id,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
