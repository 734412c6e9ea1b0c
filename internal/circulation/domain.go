// internal/circulation/domain.go
package circulation

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Loan lifecycle statuses shared by the ledger and the projection.
const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
	LoanStatusOverdue  = "overdue"
	LoanStatusLost     = "lost"
)

// ActiveBorrowing is the live projection of a currently-open loan. It
// exists only while the loan is open and is deleted exactly when the loan
// closes. For every row there is exactly one BorrowRecord with matching
// keys and status "active"; the two are always updated together.
type ActiveBorrowing struct {
	ID           uuid.UUID `db:"id" json:"id"`
	MemberID     uuid.UUID `db:"member_id" json:"member_id"`
	BookID       uuid.UUID `db:"book_id" json:"book_id"`
	BorrowDate   time.Time `db:"borrow_date" json:"borrow_date"`
	DueDate      time.Time `db:"due_date" json:"due_date"`
	RenewalCount int       `db:"renewal_count" json:"renewal_count"`
	FineAmount   float64   `db:"fine_amount" json:"fine_amount"`
	Status       string    `db:"status" json:"status"`
}

// BorrowRecord is the historical ledger entry for a single borrow
// transaction. It is append-only: return_date and status are written once
// when the loan closes, and due_date mirrors the projection on renewal.
type BorrowRecord struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	MemberID   uuid.UUID  `db:"member_id" json:"member_id"`
	BookID     uuid.UUID  `db:"book_id" json:"book_id"`
	BorrowDate time.Time  `db:"borrow_date" json:"borrow_date"`
	DueDate    time.Time  `db:"due_date" json:"due_date"`
	ReturnDate *time.Time `db:"return_date" json:"return_date,omitempty"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// DisplayState is the user-facing loan condition. The values are the
// Indonesian strings rendered by the presentation layer.
type DisplayState string

const (
	DisplayOverdue DisplayState = "Terlambat"
	DisplayDueSoon DisplayState = "Mendekati Jatuh Tempo"
	DisplayActive  DisplayState = "Aktif"
)

// DisplayStatus is derived per render and never persisted. Days carries
// the magnitude: days overdue for Terlambat, days remaining otherwise.
type DisplayStatus struct {
	State DisplayState `json:"state"`
	Days  int          `json:"days"`
}

// DaysUntilDue computes ceil((due − now) / 1 day). Negative when the due
// date has passed.
func DaysUntilDue(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// DeriveDisplayStatus maps a loan to its display condition: overdue wins,
// then the due-soon window, then plain active with remaining days.
func DeriveDisplayStatus(loanStatus string, due, now time.Time, dueSoonDays int) DisplayStatus {
	days := DaysUntilDue(due, now)
	if loanStatus == LoanStatusOverdue || days < 0 {
		if days < 0 {
			days = -days
		}
		return DisplayStatus{State: DisplayOverdue, Days: days}
	}
	if days <= dueSoonDays {
		return DisplayStatus{State: DisplayDueSoon, Days: days}
	}
	return DisplayStatus{State: DisplayActive, Days: days}
}

// LoanView pairs a projection row with its derived display status.
type LoanView struct {
	ActiveBorrowing
	Display DisplayStatus `json:"display"`
}

// BulkError is one failed item inside a best-effort bulk operation.
type BulkError struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

// BulkResult aggregates a best-effort bulk operation: successes are never
// rolled back, failures are collected and reported.
type BulkResult struct {
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []BulkError `json:"errors,omitempty"`
}

func (r *BulkResult) ok() {
	r.Succeeded++
}

func (r *BulkResult) fail(id uuid.UUID, err error) {
	r.Failed++
	r.Errors = append(r.Errors, BulkError{ID: id, Message: err.Error()})
}
