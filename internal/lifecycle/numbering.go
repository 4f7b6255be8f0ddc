package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
)

// TicketNumberPrefix prefixes every human-readable ticket number.
const TicketNumberPrefix = "TKT-"

const ticketNumberWidth = 6

// FormatTicketNumber renders a sequence value as a ticket number,
// e.g. 42 -> TKT-000042. Values beyond six digits widen without truncation.
func FormatTicketNumber(seq int64) string {
	return fmt.Sprintf("%s%0*d", TicketNumberPrefix, ticketNumberWidth, seq)
}

// ParseTicketNumber extracts the sequence value from a ticket number.
func ParseTicketNumber(number string) (int64, error) {
	raw, ok := strings.CutPrefix(number, TicketNumberPrefix)
	if !ok {
		return 0, fmt.Errorf("ticket number %q missing %q prefix", number, TicketNumberPrefix)
	}
	seq, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("ticket number %q: %w", number, err)
	}
	if seq <= 0 {
		return 0, fmt.Errorf("ticket number %q: sequence must be positive", number)
	}
	return seq, nil
}
