// internal/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrValidation marks input that was rejected before any side effect.
var ErrValidation = errors.New("invalid book input")

// AddInput carries the fields required to catalog a book.
type AddInput struct {
	Title             string
	Author            string
	ISBN              string
	Barcode           string
	Category          string
	SubCategory       string
	CallNumber        string
	Publisher         string
	PublishedYear     int
	Language          string
	Pages             int
	Description       string
	Location          string
	AcquiredAt        *time.Time
	AcquisitionMethod string
	Price             float64
	Notes             string
}

// ResolveResult is the outcome of a free-text book lookup.
type ResolveResult struct {
	Selected   *Book   `json:"selected,omitempty"`
	Candidates []*Book `json:"candidates"`
}

// Service defines the interface for the catalog directory.
type Service interface {
	Add(ctx context.Context, in AddInput) (*Book, error)
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	Update(ctx context.Context, b *Book) error
	SetStatus(ctx context.Context, id uuid.UUID, status BookStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Book, error)
	Resolve(ctx context.Context, query string) (*ResolveResult, error)
}

// Store is the backing record store for books.
type Store interface {
	Insert(ctx context.Context, b *Book) error
	Get(ctx context.Context, id uuid.UUID) (*Book, error)
	Update(ctx context.Context, b *Book) error
	SetStatus(ctx context.Context, id uuid.UUID, status BookStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Book, error)
	Search(ctx context.Context, query string) ([]*Book, error)
}
