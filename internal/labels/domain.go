// internal/labels/domain.go

// Package labels generates and tracks printable book labels. A book gets
// at most one label; the barcode on it must stay scanner-compatible.
package labels

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Label is the printable label for one catalog copy.
type Label struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	BookID        uuid.UUID  `db:"book_id" json:"book_id"`
	Barcode       string     `db:"barcode" json:"barcode"`
	LabelTemplate string     `db:"label_template" json:"label_template"`
	Size          string     `db:"size" json:"size"`
	PrintCount    int        `db:"print_count" json:"print_count"`
	LastPrintedAt *time.Time `db:"last_printed_at" json:"last_printed_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Settings selects the rendering template and physical size.
type Settings struct {
	Template string `json:"template"`
	Size     string `json:"size"`
}

func (s Settings) withDefaults() Settings {
	if s.Template == "" {
		s.Template = "default"
	}
	if s.Size == "" {
		s.Size = "medium"
	}
	return s
}

// Code 39 bounds: handheld scanners in the field reject codes outside
// this charset or longer than 32 characters.
const (
	minBarcodeLen = 4
	maxBarcodeLen = 32
)

const barcodeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// ValidBarcode reports whether code passes the scanner-compatibility
// check: Code 39 charset and bounded length.
func ValidBarcode(code string) bool {
	if len(code) < minBarcodeLen || len(code) > maxBarcodeLen {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(barcodeCharset, r) {
			return false
		}
	}
	return true
}

// CompliantBarcode derives a valid barcode from raw. A raw value that
// sanitizes into a valid code is used as-is; otherwise a stable code is
// derived from the book id so repair runs are deterministic.
func CompliantBarcode(raw string, bookID uuid.UUID, prefix string) string {
	s := sanitizeBarcode(raw)
	if ValidBarcode(s) {
		return s
	}
	hex := strings.ToUpper(strings.ReplaceAll(bookID.String(), "-", ""))
	return prefix + hex[:10]
}

func sanitizeBarcode(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(raw)) {
		if strings.ContainsRune(barcodeCharset, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
