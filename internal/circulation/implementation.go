// internal/circulation/implementation.go
package circulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"siperpus/internal/catalog"
	"siperpus/internal/membership"
	"siperpus/internal/postgres"
)

// service implements the Service interface.
type service struct {
	store   Store
	members MemberDirectory
	books   BookDirectory
	cfg     Config

	tracer   trace.Tracer
	borrows  metric.Int64Counter
	returns  metric.Int64Counter
	renewals metric.Int64Counter

	now func() time.Time
}

// NewService creates a new circulation ledger instance.
func NewService(store Store, members MemberDirectory, books BookDirectory, cfg Config) Service {
	meter := otel.Meter("siperpus/circulation")
	borrows, _ := meter.Int64Counter("circulation.borrows")
	returns, _ := meter.Int64Counter("circulation.returns")
	renewals, _ := meter.Int64Counter("circulation.renewals")

	return &service{
		store:    store,
		members:  members,
		books:    books,
		cfg:      cfg,
		tracer:   otel.Tracer("siperpus/circulation"),
		borrows:  borrows,
		returns:  returns,
		renewals: renewals,
		now:      time.Now,
	}
}

// Borrow opens a loan: one projection row, one ledger row, and the book
// status flip, applied as a single transaction.
func (s *service) Borrow(ctx context.Context, in BorrowInput) (*ActiveBorrowing, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.borrow",
		trace.WithAttributes(
			attribute.String("member.id", in.MemberID.String()),
			attribute.String("book.id", in.BookID.String()),
		),
	)
	defer span.End()

	member, err := s.members.Get(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("resolve member: %w", err)
	}
	if member.Status != membership.StatusActive {
		return nil, fmt.Errorf("%w: member status is %q", ErrMemberNotEligible, member.Status)
	}

	book, err := s.books.Get(ctx, in.BookID)
	if err != nil {
		return nil, fmt.Errorf("resolve book: %w", err)
	}
	switch book.Status {
	case catalog.StatusAvailable:
	case catalog.StatusReserved:
		if !in.AllowReserved {
			return nil, fmt.Errorf("%w: book is reserved", ErrBookUnavailable)
		}
	default:
		return nil, fmt.Errorf("%w: book status is %q", ErrBookUnavailable, book.Status)
	}

	if _, err := s.store.FindActiveBorrowingByBook(ctx, in.BookID); err == nil {
		return nil, fmt.Errorf("%w: book already has an open loan", ErrBookUnavailable)
	} else if !errors.Is(err, postgres.ErrNotFound) {
		return nil, fmt.Errorf("check open loan: %w", err)
	}

	open, err := s.store.CountActiveBorrowingsByMember(ctx, in.MemberID)
	if err != nil {
		return nil, fmt.Errorf("count open loans: %w", err)
	}
	if limit := s.cfg.borrowLimit(member.Role); open >= limit {
		return nil, fmt.Errorf("%w: %d of %d loans open", ErrBorrowLimitReached, open, limit)
	}

	now := s.now().UTC()
	due := now.AddDate(0, 0, s.cfg.LoanPeriodDays)
	ab := &ActiveBorrowing{
		ID:         uuid.New(),
		MemberID:   in.MemberID,
		BookID:     in.BookID,
		BorrowDate: now,
		DueDate:    due,
		Status:     LoanStatusActive,
	}
	rec := &BorrowRecord{
		ID:         uuid.New(),
		MemberID:   in.MemberID,
		BookID:     in.BookID,
		BorrowDate: now,
		DueDate:    due,
		Status:     LoanStatusActive,
		CreatedAt:  now,
	}

	err = s.store.Transact(ctx, func(tx Store) error {
		if err := tx.CreateActiveBorrowing(ctx, ab); err != nil {
			return fmt.Errorf("create active borrowing: %w", err)
		}
		if err := tx.CreateBorrowRecord(ctx, rec); err != nil {
			return fmt.Errorf("create borrow record: %w", err)
		}
		return tx.SetBookStatus(ctx, in.BookID, catalog.StatusBorrowed)
	})
	if err != nil {
		return nil, fmt.Errorf("borrow: %w", err)
	}

	s.borrows.Add(ctx, 1)
	span.AddEvent("loan.opened", trace.WithAttributes(
		attribute.String("borrowing.id", ab.ID.String()),
	))
	return ab, nil
}

// Return closes a loan: the ledger row gets its return date, the
// projection row is deleted and the book becomes available again, all in
// one transaction.
func (s *service) Return(ctx context.Context, borrowingID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "circulation.return",
		trace.WithAttributes(attribute.String("borrowing.id", borrowingID.String())),
	)
	defer span.End()

	ab, err := s.store.GetActiveBorrowing(ctx, borrowingID)
	if err != nil {
		return fmt.Errorf("find active borrowing: %w", err)
	}

	now := s.now().UTC()
	err = s.store.Transact(ctx, func(tx Store) error {
		rec, err := tx.GetOpenBorrowRecord(ctx, ab.MemberID, ab.BookID)
		if err != nil {
			return fmt.Errorf("find open borrow record: %w", err)
		}
		rec.ReturnDate = &now
		rec.Status = LoanStatusReturned
		if err := tx.UpdateBorrowRecord(ctx, rec); err != nil {
			return fmt.Errorf("close borrow record: %w", err)
		}
		if err := tx.DeleteActiveBorrowing(ctx, ab.ID); err != nil {
			return fmt.Errorf("delete active borrowing: %w", err)
		}
		return tx.SetBookStatus(ctx, ab.BookID, catalog.StatusAvailable)
	})
	if err != nil {
		return fmt.Errorf("return: %w", err)
	}

	s.returns.Add(ctx, 1)
	return nil
}

// Renew advances the due date by the configured increment and mirrors it
// into the ledger entry, keeping both views in agreement.
func (s *service) Renew(ctx context.Context, borrowingID uuid.UUID) (*ActiveBorrowing, error) {
	ctx, span := s.tracer.Start(ctx, "circulation.renew",
		trace.WithAttributes(attribute.String("borrowing.id", borrowingID.String())),
	)
	defer span.End()

	ab, err := s.store.GetActiveBorrowing(ctx, borrowingID)
	if err != nil {
		return nil, fmt.Errorf("find active borrowing: %w", err)
	}
	if s.cfg.MaxRenewals > 0 && ab.RenewalCount >= s.cfg.MaxRenewals {
		return nil, fmt.Errorf("%w: %d renewals used", ErrRenewalLimitReached, ab.RenewalCount)
	}

	ab.DueDate = ab.DueDate.AddDate(0, 0, s.cfg.RenewalIncrementDays)
	ab.RenewalCount++

	err = s.store.Transact(ctx, func(tx Store) error {
		rec, err := tx.GetOpenBorrowRecord(ctx, ab.MemberID, ab.BookID)
		if err != nil {
			return fmt.Errorf("find open borrow record: %w", err)
		}
		rec.DueDate = ab.DueDate
		if err := tx.UpdateBorrowRecord(ctx, rec); err != nil {
			return fmt.Errorf("mirror due date: %w", err)
		}
		return tx.UpdateActiveBorrowing(ctx, ab)
	})
	if err != nil {
		return nil, fmt.Errorf("renew: %w", err)
	}

	s.renewals.Add(ctx, 1)
	return ab, nil
}

// MarkLost closes a loan as lost. The projection row is removed like on a
// return, but the ledger keeps no return date and the book is flagged.
func (s *service) MarkLost(ctx context.Context, borrowingID uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "circulation.mark_lost",
		trace.WithAttributes(attribute.String("borrowing.id", borrowingID.String())),
	)
	defer span.End()

	ab, err := s.store.GetActiveBorrowing(ctx, borrowingID)
	if err != nil {
		return fmt.Errorf("find active borrowing: %w", err)
	}

	err = s.store.Transact(ctx, func(tx Store) error {
		rec, err := tx.GetOpenBorrowRecord(ctx, ab.MemberID, ab.BookID)
		if err != nil {
			return fmt.Errorf("find open borrow record: %w", err)
		}
		rec.Status = LoanStatusLost
		if err := tx.UpdateBorrowRecord(ctx, rec); err != nil {
			return fmt.Errorf("close borrow record: %w", err)
		}
		if err := tx.DeleteActiveBorrowing(ctx, ab.ID); err != nil {
			return fmt.Errorf("delete active borrowing: %w", err)
		}
		return tx.SetBookStatus(ctx, ab.BookID, catalog.StatusLost)
	})
	if err != nil {
		return fmt.Errorf("mark lost: %w", err)
	}
	return nil
}

// BulkReturn applies Return to each id independently. Best-effort:
// failures are collected, successes stand.
func (s *service) BulkReturn(ctx context.Context, borrowingIDs []uuid.UUID) *BulkResult {
	res := &BulkResult{}
	for _, id := range borrowingIDs {
		if err := s.Return(ctx, id); err != nil {
			res.fail(id, err)
			continue
		}
		res.ok()
	}
	return res
}

// BulkExtend applies Renew to each id independently, best-effort.
func (s *service) BulkExtend(ctx context.Context, borrowingIDs []uuid.UUID) *BulkResult {
	res := &BulkResult{}
	for _, id := range borrowingIDs {
		if _, err := s.Renew(ctx, id); err != nil {
			res.fail(id, err)
			continue
		}
		res.ok()
	}
	return res
}

// ListActive returns every open loan with its derived display status.
func (s *service) ListActive(ctx context.Context) ([]*LoanView, error) {
	rows, err := s.store.ListActiveBorrowings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active borrowings: %w", err)
	}
	return s.toViews(rows), nil
}

// ListActiveByMember returns a member's open loans with display status.
func (s *service) ListActiveByMember(ctx context.Context, memberID uuid.UUID) ([]*LoanView, error) {
	rows, err := s.store.ListActiveBorrowingsByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member borrowings: %w", err)
	}
	return s.toViews(rows), nil
}

// History returns a member's full ledger, newest first.
func (s *service) History(ctx context.Context, memberID uuid.UUID) ([]*BorrowRecord, error) {
	return s.store.ListBorrowRecordsByMember(ctx, memberID)
}

func (s *service) toViews(rows []*ActiveBorrowing) []*LoanView {
	now := s.now().UTC()
	views := make([]*LoanView, 0, len(rows))
	for _, ab := range rows {
		views = append(views, &LoanView{
			ActiveBorrowing: *ab,
			Display:         DeriveDisplayStatus(ab.Status, ab.DueDate, now, s.cfg.DueSoonThresholdDays),
		})
	}
	return views
}
