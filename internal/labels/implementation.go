// internal/labels/implementation.go
package labels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"siperpus/internal/postgres"
)

// service implements the Service interface.
type service struct {
	store         Store
	books         BookDirectory
	barcodePrefix string
	now           func() time.Time
}

// NewService creates a new label generator instance.
func NewService(store Store, books BookDirectory, barcodePrefix string) Service {
	return &service{
		store:         store,
		books:         books,
		barcodePrefix: barcodePrefix,
		now:           time.Now,
	}
}

// Generate creates the label for a book, deriving a scanner-compatible
// barcode from the book's own. Idempotent: a second call for the same
// book returns the existing label untouched.
func (s *service) Generate(ctx context.Context, bookID uuid.UUID, settings Settings) (*Label, error) {
	existing, err := s.store.GetByBook(ctx, bookID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, postgres.ErrNotFound) {
		return nil, fmt.Errorf("check existing label: %w", err)
	}

	book, err := s.books.Get(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("resolve book: %w", err)
	}

	settings = settings.withDefaults()
	label := &Label{
		ID:            uuid.New(),
		BookID:        bookID,
		Barcode:       CompliantBarcode(book.Barcode, bookID, s.barcodePrefix),
		LabelTemplate: settings.Template,
		Size:          settings.Size,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.store.Insert(ctx, label); err != nil {
		// Lost a race against a concurrent Generate for the same book;
		// the winner's label is the label.
		if errors.Is(err, postgres.ErrConflict) {
			return s.store.GetByBook(ctx, bookID)
		}
		return nil, fmt.Errorf("create label: %w", err)
	}
	return label, nil
}

// Get retrieves a label by its ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Label, error) {
	return s.store.Get(ctx, id)
}

// List returns all labels.
func (s *service) List(ctx context.Context) ([]*Label, error) {
	return s.store.List(ctx)
}

// Print records one print run of a label.
func (s *service) Print(ctx context.Context, labelID uuid.UUID) (*Label, error) {
	label, err := s.store.Get(ctx, labelID)
	if err != nil {
		return nil, fmt.Errorf("find label: %w", err)
	}
	now := s.now().UTC()
	label.PrintCount++
	label.LastPrintedAt = &now
	if err := s.store.Update(ctx, label); err != nil {
		return nil, fmt.Errorf("record print: %w", err)
	}
	return label, nil
}

// PrintBatch prints each label independently. Best-effort: failures are
// collected, successes stand.
func (s *service) PrintBatch(ctx context.Context, labelIDs []uuid.UUID) *PrintResult {
	res := &PrintResult{}
	for _, id := range labelIDs {
		if _, err := s.Print(ctx, id); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, PrintError{ID: id, Message: err.Error()})
			continue
		}
		res.Printed++
	}
	return res
}

// Repair scans every label and rewrites the barcodes that fail the
// scanner-compatibility check. Valid barcodes are never changed, so a
// repair pass over a healthy set reports {fixed: 0, total: N}.
func (s *service) Repair(ctx context.Context) (*RepairReport, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}

	report := &RepairReport{Total: len(all)}
	for _, label := range all {
		if ValidBarcode(label.Barcode) {
			continue
		}
		label.Barcode = CompliantBarcode(label.Barcode, label.BookID, s.barcodePrefix)
		if err := s.store.Update(ctx, label); err != nil {
			return report, fmt.Errorf("repair label %s: %w", label.ID, err)
		}
		report.Fixed++
	}
	return report, nil
}
