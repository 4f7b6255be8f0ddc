package dto

import (
	"time"

	"github.com/bankops/biomss/internal/domain"
)

// CreateAlertRequest payload.
type CreateAlertRequest struct {
	Type            domain.AlertType `json:"type"`
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	BranchID        *string          `json:"branch_id,omitempty"`
	ATMID           *string          `json:"atm_id,omitempty"`
	POSTerminalID   *string          `json:"pos_terminal_id,omitempty"`
	SecurityEventID *string          `json:"security_event_id,omitempty"`
}

// UpdateAlertStatusRequest payload.
type UpdateAlertStatusRequest struct {
	Status domain.AlertStatus `json:"status"`
}

// AlertResponse response.
type AlertResponse struct {
	ID              string             `json:"id"`
	Type            domain.AlertType   `json:"type"`
	Title           string             `json:"title"`
	Message         string             `json:"message"`
	Status          domain.AlertStatus `json:"status"`
	BranchID        *string            `json:"branch_id,omitempty"`
	ATMID           *string            `json:"atm_id,omitempty"`
	POSTerminalID   *string            `json:"pos_terminal_id,omitempty"`
	SecurityEventID *string            `json:"security_event_id,omitempty"`
	AcknowledgedBy  *string            `json:"acknowledged_by,omitempty"`
	AcknowledgedAt  *time.Time         `json:"acknowledged_at,omitempty"`
	ResolvedAt      *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
