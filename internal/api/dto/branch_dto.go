package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// BranchRequest payload for create and update.
type BranchRequest struct {
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Type        domain.BranchType   `json:"type"`
	Status      domain.BranchStatus `json:"status"`
	Region      string              `json:"region"`
	City        string              `json:"city"`
	Address     string              `json:"address"`
	PhoneNumber string              `json:"phone_number"`
	Email       string              `json:"email"`
	ManagerName *string             `json:"manager_name,omitempty"`
	OpeningDate *time.Time          `json:"opening_date,omitempty"`
}

// BranchResponse response.
type BranchResponse struct {
	ID          string              `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Type        domain.BranchType   `json:"type"`
	Status      domain.BranchStatus `json:"status"`
	Region      string              `json:"region"`
	City        string              `json:"city"`
	Address     string              `json:"address"`
	PhoneNumber string              `json:"phone_number"`
	Email       string              `json:"email"`
	ManagerName *string             `json:"manager_name,omitempty"`
	OpeningDate *time.Time          `json:"opening_date,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
