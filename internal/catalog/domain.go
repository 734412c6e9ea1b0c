// internal/catalog/domain.go
package catalog

import (
	"time"

	"github.com/google/uuid"

	"siperpus/internal/lookup"
)

// BookStatus is the single circulation-driven mutable field on a book.
type BookStatus string

const (
	StatusAvailable BookStatus = "available"
	StatusBorrowed  BookStatus = "borrowed"
	StatusReserved  BookStatus = "reserved"
	StatusDamaged   BookStatus = "damaged"
	StatusLost      BookStatus = "lost"
)

// Valid reports whether s is a known book status.
func (s BookStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusBorrowed, StatusReserved, StatusDamaged, StatusLost:
		return true
	}
	return false
}

// Book represents one physical catalog copy. Barcode is unique per copy.
// The descriptive fields beyond the core bibliographic set back the
// 16-column spreadsheet export.
type Book struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	Title             string     `db:"title" json:"title"`
	Author            string     `db:"author" json:"author"`
	ISBN              string     `db:"isbn" json:"isbn"`
	Barcode           string     `db:"barcode" json:"barcode"`
	Status            BookStatus `db:"status" json:"status"`
	Category          string     `db:"category" json:"category,omitempty"`
	SubCategory       string     `db:"sub_category" json:"sub_category,omitempty"`
	CallNumber        string     `db:"call_number" json:"call_number,omitempty"`
	Publisher         string     `db:"publisher" json:"publisher,omitempty"`
	PublishedYear     int        `db:"published_year" json:"published_year,omitempty"`
	Language          string     `db:"language" json:"language,omitempty"`
	Pages             int        `db:"pages" json:"pages,omitempty"`
	Description       string     `db:"description" json:"description,omitempty"`
	Location          string     `db:"location" json:"location,omitempty"`
	AcquiredAt        *time.Time `db:"acquired_at" json:"acquired_at,omitempty"`
	AcquisitionMethod string     `db:"acquisition_method" json:"acquisition_method,omitempty"`
	Price             float64    `db:"price" json:"price,omitempty"`
	Notes             string     `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// LookupFields exposes the book to the shared free-text resolver.
func (b *Book) LookupFields() lookup.Fields {
	return lookup.Fields{
		Contains: []string{b.Barcode, b.Title, b.ISBN},
		Exact:    []string{b.Barcode, b.Title},
	}
}
