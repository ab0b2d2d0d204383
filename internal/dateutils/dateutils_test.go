package dateutils_test

import (
	"testing"
	"time"

	"finadvisor/internal/dateutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{name: "ISO", input: "2024-03-15", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "european slashes", input: "15/03/2024", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "european dots", input: "15.03.2024", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "european dashes", input: "15-03-2024", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "whitespace around", input: "  2024-03-15 ", expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := dateutils.ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, date.Equal(tt.expected), "got %s, want %s", date, tt.expected)
		})
	}
}

func TestParseDate_DayFirstWins(t *testing.T) {
	// An ambiguous date reads day-first, the convention of the bank
	// exports this tool is built for.
	date, err := dateutils.ParseDate("03/04/2024")
	require.NoError(t, err)
	assert.Equal(t, time.April, date.Month())
	assert.Equal(t, 3, date.Day())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "99/99/2024"} {
		_, err := dateutils.ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMonthKey(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03", dateutils.MonthKey(date))
}
