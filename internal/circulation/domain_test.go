package circulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDeriveDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	const dueSoonDays = 3

	t.Run("three days out is due soon", func(t *testing.T) {
		ds := DeriveDisplayStatus(LoanStatusActive, now.AddDate(0, 0, 3), now, dueSoonDays)
		assert.Equal(t, DisplayDueSoon, ds.State)
		assert.Equal(t, 3, ds.Days)
	})

	t.Run("four days out is active", func(t *testing.T) {
		ds := DeriveDisplayStatus(LoanStatusActive, now.AddDate(0, 0, 4), now, dueSoonDays)
		assert.Equal(t, DisplayActive, ds.State)
		assert.Equal(t, 4, ds.Days)
	})

	t.Run("one day past due is overdue with magnitude 1", func(t *testing.T) {
		ds := DeriveDisplayStatus(LoanStatusActive, now.AddDate(0, 0, -1), now, dueSoonDays)
		assert.Equal(t, DisplayOverdue, ds.State)
		assert.Equal(t, 1, ds.Days)
	})

	t.Run("overdue ledger status wins regardless of date", func(t *testing.T) {
		ds := DeriveDisplayStatus(LoanStatusOverdue, now.AddDate(0, 0, 10), now, dueSoonDays)
		assert.Equal(t, DisplayOverdue, ds.State)
	})

	t.Run("due right now counts as zero days and due soon", func(t *testing.T) {
		ds := DeriveDisplayStatus(LoanStatusActive, now, now, dueSoonDays)
		assert.Equal(t, DisplayDueSoon, ds.State)
		assert.Equal(t, 0, ds.Days)
	})
}

func TestDaysUntilDueRoundsUp(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	// A fraction of a day remaining still counts as one day.
	assert.Equal(t, 1, DaysUntilDue(now.Add(2*time.Hour), now))
	assert.Equal(t, -1, DaysUntilDue(now.Add(-26*time.Hour), now))
	assert.Equal(t, 0, DaysUntilDue(now, now))
}

func TestDisplayStatusTotal(t *testing.T) {
	// Every combination of status and offset maps to exactly one of the
	// three display states, with a non-negative magnitude.
	rapid.Check(t, func(t *rapid.T) {
		now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		offsetHours := rapid.IntRange(-24*60, 24*60).Draw(t, "offsetHours")
		status := rapid.SampledFrom([]string{
			LoanStatusActive, LoanStatusOverdue,
		}).Draw(t, "status")

		ds := DeriveDisplayStatus(status, now.Add(time.Duration(offsetHours)*time.Hour), now, 3)

		switch ds.State {
		case DisplayOverdue, DisplayDueSoon, DisplayActive:
		default:
			t.Fatalf("unexpected display state %q", ds.State)
		}
		if ds.Days < 0 {
			t.Fatalf("display magnitude must be non-negative, got %d", ds.Days)
		}
		if status == LoanStatusOverdue && ds.State != DisplayOverdue {
			t.Fatalf("overdue ledger status must display as overdue, got %q", ds.State)
		}
	})
}
