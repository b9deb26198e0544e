package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestDeriveDates(t *testing.T) {
	cases := []struct {
		start    string
		recert   string
		reminder string
	}{
		{"2025-01-15", "2025-10-12", "2025-10-05"},
		// leap-year start
		{"2024-02-01", "2024-10-28", "2024-10-21"},
		// crosses a year boundary and a non-leap February
		{"2025-06-30", "2026-03-27", "2026-03-20"},
		// crosses Feb 29 2024
		{"2023-12-01", "2024-08-27", "2024-08-20"},
		{"2025-12-31", "2026-09-27", "2026-09-20"},
		{"2024-01-01", "2024-09-27", "2024-09-20"},
	}
	for _, tc := range cases {
		recert, reminder := DeriveDates(date(t, tc.start))
		assert.Equal(t, tc.recert, recert.Format(DateLayout), "recert for %s", tc.start)
		assert.Equal(t, tc.reminder, reminder.Format(DateLayout), "reminder for %s", tc.start)
		assert.Equal(t, 270*24*time.Hour, recert.Sub(date(t, tc.start)), "recert offset for %s", tc.start)
		assert.Equal(t, 7*24*time.Hour, recert.Sub(reminder), "reminder lead for %s", tc.start)
	}
}

func TestParseStartDate(t *testing.T) {
	got, err := ParseStartDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", got.Format(DateLayout))

	for _, bad := range []string{
		"2025-02-30", // impossible date
		"2025-13-01",
		"01/15/2025", // wrong format
		"2025-1-5",   // non-canonical
		"2025-01-15 ",
		"yesterday",
		"",
	} {
		_, err := ParseStartDate(bad)
		assert.ErrorIs(t, err, ErrBadStartDate, "input %q", bad)
	}
}

func TestNewLease(t *testing.T) {
	t.Run("derives dates and trims fields", func(t *testing.T) {
		l, err := NewLease(42, "  John Smith ", " 123 Main St, Detroit, MI 48201 ", "2025-01-15")
		require.NoError(t, err)
		assert.Equal(t, int64(42), l.OwnerChat)
		assert.Equal(t, "John Smith", l.TenantName)
		assert.Equal(t, "123 Main St, Detroit, MI 48201", l.PropertyAddress)
		assert.Equal(t, "2025-10-12", l.RecertDate.Format(DateLayout))
		assert.Equal(t, "2025-10-05", l.ReminderDate.Format(DateLayout))
		assert.Empty(t, l.ID, "ID belongs to the repository")
		assert.True(t, l.CreatedAt.IsZero())
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		_, err := NewLease(42, "   ", "123 Main St", "2025-01-15")
		assert.ErrorIs(t, err, ErrEmptyTenantName)
		assert.True(t, IsValidation(err))

		_, err = NewLease(42, "John", "\t", "2025-01-15")
		assert.ErrorIs(t, err, ErrEmptyAddress)
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		_, err := NewLease(42, "John", "123 Main St", "2025-02-30")
		assert.ErrorIs(t, err, ErrBadStartDate)
		assert.True(t, IsValidation(err))
	})
}
