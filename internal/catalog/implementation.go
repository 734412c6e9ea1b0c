// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"siperpus/internal/lookup"
)

// service implements the Service interface.
type service struct {
	store         Store
	barcodePrefix string
}

// NewService creates a new catalog service instance. barcodePrefix is the
// scanner prefix stripped from lookup queries.
func NewService(store Store, barcodePrefix string) Service {
	return &service{store: store, barcodePrefix: barcodePrefix}
}

// Add catalogs a new physical copy.
func (s *service) Add(ctx context.Context, in AddInput) (*Book, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Author) == "" {
		return nil, fmt.Errorf("%w: author is required", ErrValidation)
	}
	if strings.TrimSpace(in.Barcode) == "" {
		return nil, fmt.Errorf("%w: barcode is required", ErrValidation)
	}

	now := time.Now().UTC()
	book := &Book{
		ID:                uuid.New(),
		Title:             strings.TrimSpace(in.Title),
		Author:            strings.TrimSpace(in.Author),
		ISBN:              strings.TrimSpace(in.ISBN),
		Barcode:           strings.ToUpper(strings.TrimSpace(in.Barcode)),
		Status:            StatusAvailable,
		Category:          in.Category,
		SubCategory:       in.SubCategory,
		CallNumber:        in.CallNumber,
		Publisher:         in.Publisher,
		PublishedYear:     in.PublishedYear,
		Language:          in.Language,
		Pages:             in.Pages,
		Description:       in.Description,
		Location:          in.Location,
		AcquiredAt:        in.AcquiredAt,
		AcquisitionMethod: in.AcquisitionMethod,
		Price:             in.Price,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Insert(ctx, book); err != nil {
		return nil, fmt.Errorf("add book: %w", err)
	}
	return book, nil
}

// Get retrieves a book by its ID.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Book, error) {
	return s.store.Get(ctx, id)
}

// Update persists edits to a book. The same normalization and checks as
// Add apply, so an edit cannot smuggle in an out-of-enum status or an
// unnormalized barcode.
func (s *service) Update(ctx context.Context, b *Book) error {
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.ISBN = strings.TrimSpace(b.ISBN)
	b.Barcode = strings.ToUpper(strings.TrimSpace(b.Barcode))

	if b.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if b.Author == "" {
		return fmt.Errorf("%w: author is required", ErrValidation)
	}
	if b.Barcode == "" {
		return fmt.Errorf("%w: barcode is required", ErrValidation)
	}
	if !b.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, b.Status)
	}

	b.UpdatedAt = time.Now().UTC()
	return s.store.Update(ctx, b)
}

// SetStatus moves a book to a new circulation status.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status BookStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return s.store.SetStatus(ctx, id, status)
}

// Delete removes a book record. Destructive.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// List returns all books ordered by creation time.
func (s *service) List(ctx context.Context) ([]*Book, error) {
	return s.store.List(ctx)
}

// Resolve runs the free-text lookup over the catalog. Scanned barcodes
// arrive with the label prefix; it is stripped before matching.
func (s *service) Resolve(ctx context.Context, query string) (*ResolveResult, error) {
	q := lookup.StripPrefix(lookup.Normalize(query), s.barcodePrefix)
	if q == "" {
		return &ResolveResult{}, nil
	}

	books, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	r := lookup.Resolve(q, books, func(b *Book) lookup.Fields { return b.LookupFields() })
	res := &ResolveResult{Candidates: r.Candidates}
	if res.Candidates == nil {
		res.Candidates = []*Book{}
	}
	if r.Selected != nil {
		res.Selected = *r.Selected
	}
	return res, nil
}
