// internal/circulation/service.go
package circulation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"siperpus/internal/catalog"
	"siperpus/internal/membership"
)

var (
	ErrMemberNotEligible   = errors.New("member is not eligible to borrow")
	ErrBookUnavailable     = errors.New("book is not available for borrowing")
	ErrBorrowLimitReached  = errors.New("member borrow limit reached")
	ErrRenewalLimitReached = errors.New("renewal limit reached")
)

// defaultBorrowLimit applies when a role is missing from BorrowLimits,
// matching the documented student default. A partial map must never
// collapse a member's limit to zero.
const defaultBorrowLimit = 5

// Config carries the circulation business constants with their documented
// defaults (see internal/config).
type Config struct {
	LoanPeriodDays       int
	RenewalIncrementDays int
	DueSoonThresholdDays int
	// MaxRenewals caps renewals per loan; 0 means unlimited.
	MaxRenewals int
	// BorrowLimits maps a member role to its open-loan cap. Roles absent
	// from the map fall back to the student limit, then to
	// defaultBorrowLimit.
	BorrowLimits map[membership.Role]int
}

func (c Config) borrowLimit(role membership.Role) int {
	if limit, ok := c.BorrowLimits[role]; ok {
		return limit
	}
	if limit, ok := c.BorrowLimits[membership.RoleStudent]; ok {
		return limit
	}
	return defaultBorrowLimit
}

// BorrowInput identifies the resolved member and book for a borrow
// transition. AllowReserved lets the desk lend a reserved copy to the
// member holding the reservation.
type BorrowInput struct {
	MemberID      uuid.UUID
	BookID        uuid.UUID
	AllowReserved bool
}

// MemberDirectory is the slice of the membership service the ledger needs.
type MemberDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*membership.Member, error)
}

// BookDirectory is the slice of the catalog service the ledger needs.
type BookDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
}

// Service defines the interface for the circulation ledger.
type Service interface {
	Borrow(ctx context.Context, in BorrowInput) (*ActiveBorrowing, error)
	Return(ctx context.Context, borrowingID uuid.UUID) error
	Renew(ctx context.Context, borrowingID uuid.UUID) (*ActiveBorrowing, error)
	MarkLost(ctx context.Context, borrowingID uuid.UUID) error
	BulkReturn(ctx context.Context, borrowingIDs []uuid.UUID) *BulkResult
	BulkExtend(ctx context.Context, borrowingIDs []uuid.UUID) *BulkResult
	ListActive(ctx context.Context) ([]*LoanView, error)
	ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]*LoanView, error)
	History(ctx context.Context, memberID uuid.UUID) ([]*BorrowRecord, error)
}

// Store is the backing record store for both physical views of a loan.
// Transact groups the multi-row effects of one transition so that no
// reader observes the ledger and the projection out of agreement.
type Store interface {
	Transact(ctx context.Context, fn func(Store) error) error

	CreateActiveBorrowing(ctx context.Context, ab *ActiveBorrowing) error
	GetActiveBorrowing(ctx context.Context, id uuid.UUID) (*ActiveBorrowing, error)
	FindActiveBorrowingByBook(ctx context.Context, bookID uuid.UUID) (*ActiveBorrowing, error)
	ListActiveBorrowings(ctx context.Context) ([]*ActiveBorrowing, error)
	ListActiveBorrowingsByMember(ctx context.Context, memberID uuid.UUID) ([]*ActiveBorrowing, error)
	CountActiveBorrowingsByMember(ctx context.Context, memberID uuid.UUID) (int, error)
	UpdateActiveBorrowing(ctx context.Context, ab *ActiveBorrowing) error
	DeleteActiveBorrowing(ctx context.Context, id uuid.UUID) error

	CreateBorrowRecord(ctx context.Context, rec *BorrowRecord) error
	GetOpenBorrowRecord(ctx context.Context, memberID, bookID uuid.UUID) (*BorrowRecord, error)
	UpdateBorrowRecord(ctx context.Context, rec *BorrowRecord) error
	ListBorrowRecordsByMember(ctx context.Context, memberID uuid.UUID) ([]*BorrowRecord, error)

	SetBookStatus(ctx context.Context, bookID uuid.UUID, status catalog.BookStatus) error
}
