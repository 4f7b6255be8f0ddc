package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
	TicketStatusCancelled  TicketStatus = "CANCELLED"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// TicketCategory classifies the affected equipment or service.
type TicketCategory string

const (
	TicketCategoryATM      TicketCategory = "ATM"
	TicketCategoryPOS      TicketCategory = "POS"
	TicketCategoryNetwork  TicketCategory = "NETWORK"
	TicketCategorySystem   TicketCategory = "SYSTEM"
	TicketCategorySecurity TicketCategory = "SECURITY"
	TicketCategorySoftware TicketCategory = "SOFTWARE"
	TicketCategoryHardware TicketCategory = "HARDWARE"
	TicketCategoryOther    TicketCategory = "OTHER"
)

// Ticket is the aggregate for branch IT support requests.
//
// TicketNumber is the human-readable sequence identifier (TKT-000042). It is
// assigned exactly once at creation inside the same transaction as the
// insert, and never reused even if the ticket row is later removed.
type Ticket struct {
	ID              string
	TicketNumber    string
	Title           string
	Description     string
	Category        TicketCategory
	Priority        TicketPriority
	Status          TicketStatus
	BranchID        string
	CreatedBy       *string
	AssignedTo      *string
	ATMID           *string
	POSTerminalID   *string
	ResolutionNotes *string
	ResolutionTime  *time.Duration
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
