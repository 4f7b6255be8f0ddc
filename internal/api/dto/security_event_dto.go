package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// CreateSecurityEventRequest payload.
type CreateSecurityEventRequest struct {
	Type           domain.SecurityEventType `json:"type"`
	Severity       domain.Severity          `json:"severity"`
	SourceIP       *string                  `json:"source_ip,omitempty"`
	TargetIP       *string                  `json:"target_ip,omitempty"`
	BranchID       *string                  `json:"branch_id,omitempty"`
	UserID         *string                  `json:"user_id,omitempty"`
	Description    string                   `json:"description"`
	AffectedSystem *string                  `json:"affected_system,omitempty"`
	DetectedAt     *time.Time               `json:"detected_at,omitempty"`
}

// UpdateSecurityEventStatusRequest payload.
type UpdateSecurityEventStatusRequest struct {
	Status      domain.SecurityEventStatus `json:"status"`
	Severity    *domain.Severity           `json:"severity,omitempty"`
	ActionTaken *string                    `json:"action_taken,omitempty"`
	AssignedTo  *string                    `json:"assigned_to,omitempty"`
}

// SecurityEventResponse response.
type SecurityEventResponse struct {
	ID             string                     `json:"id"`
	Type           domain.SecurityEventType   `json:"type"`
	Severity       domain.Severity            `json:"severity"`
	Status         domain.SecurityEventStatus `json:"status"`
	SourceIP       *string                    `json:"source_ip,omitempty"`
	TargetIP       *string                    `json:"target_ip,omitempty"`
	BranchID       *string                    `json:"branch_id,omitempty"`
	UserID         *string                    `json:"user_id,omitempty"`
	Description    string                     `json:"description"`
	AffectedSystem *string                    `json:"affected_system,omitempty"`
	ActionTaken    *string                    `json:"action_taken,omitempty"`
	AssignedTo     *string                    `json:"assigned_to,omitempty"`
	ResolvedAt     *time.Time                 `json:"resolved_at,omitempty"`
	DetectedAt     time.Time                  `json:"detected_at"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}
