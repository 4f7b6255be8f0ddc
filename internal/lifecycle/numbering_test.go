package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTicketNumber(t *testing.T) {
	assert.Equal(t, "TKT-000001", FormatTicketNumber(1))
	assert.Equal(t, "TKT-000042", FormatTicketNumber(42))
	assert.Equal(t, "TKT-999999", FormatTicketNumber(999999))
	// beyond six digits the number widens instead of truncating
	assert.Equal(t, "TKT-1000000", FormatTicketNumber(1000000))
}

func TestParseTicketNumberRoundTrip(t *testing.T) {
	for _, seq := range []int64{1, 7, 42, 999999, 1000001} {
		parsed, err := ParseTicketNumber(FormatTicketNumber(seq))
		require.NoError(t, err)
		assert.Equal(t, seq, parsed)
	}
}

func TestParseTicketNumberRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "TKT-", "TKT-abc", "TCK-000001", "000001", "TKT-000000", "TKT--00001"} {
		_, err := ParseTicketNumber(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestSequentialNumbersDistinctAndIncreasing(t *testing.T) {
	prev := ""
	for seq := int64(1); seq <= 200; seq++ {
		number := FormatTicketNumber(seq)
		require.Greater(t, number, prev, "numbers must sort strictly increasing")
		prev = number
	}
}
