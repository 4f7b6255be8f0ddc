package domain

import "time"

// TicketComment is an update posted on a ticket. Internal comments are
// visible only to IT staff.
type TicketComment struct {
	ID        string
	TicketID  string
	UserID    *string
	Body      string
	Internal  bool
	CreatedAt time.Time
}
