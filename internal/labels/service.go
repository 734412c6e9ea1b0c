// internal/labels/service.go
package labels

import (
	"context"

	"github.com/google/uuid"

	"siperpus/internal/catalog"
)

// RepairReport is the outcome of a barcode repair pass.
type RepairReport struct {
	Fixed int `json:"fixed"`
	Total int `json:"total"`
}

// PrintError is one failed item in a batch print.
type PrintError struct {
	ID      uuid.UUID `json:"id"`
	Message string    `json:"message"`
}

// PrintResult aggregates a best-effort batch print.
type PrintResult struct {
	Printed int          `json:"printed"`
	Failed  int          `json:"failed"`
	Errors  []PrintError `json:"errors,omitempty"`
}

// BookDirectory is the slice of the catalog the generator needs.
type BookDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*catalog.Book, error)
}

// Service defines the interface for the label generator.
type Service interface {
	// Generate is idempotent per book: an existing label is returned
	// unchanged, never duplicated.
	Generate(ctx context.Context, bookID uuid.UUID, settings Settings) (*Label, error)
	Get(ctx context.Context, id uuid.UUID) (*Label, error)
	List(ctx context.Context) ([]*Label, error)
	// Print increments print_count and stamps last_printed_at.
	Print(ctx context.Context, labelID uuid.UUID) (*Label, error)
	// PrintBatch applies Print to each id independently, best-effort.
	PrintBatch(ctx context.Context, labelIDs []uuid.UUID) *PrintResult
	// Repair re-derives a compliant barcode for every label that fails
	// validation and never touches one that already validates.
	Repair(ctx context.Context) (*RepairReport, error)
}

// Store is the backing record store for labels.
type Store interface {
	Insert(ctx context.Context, l *Label) error
	Get(ctx context.Context, id uuid.UUID) (*Label, error)
	GetByBook(ctx context.Context, bookID uuid.UUID) (*Label, error)
	List(ctx context.Context) ([]*Label, error)
	Update(ctx context.Context, l *Label) error
}
