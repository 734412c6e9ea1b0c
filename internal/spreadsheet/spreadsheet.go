// internal/spreadsheet/spreadsheet.go

// Package spreadsheet implements the column-mapping contract between the
// catalog and the spreadsheet collaborator: import consumes a
// column-letter-to-field mapping, export produces the fixed 16-column
// table with Indonesian headers. Rendering to an actual workbook is the
// collaborator's job; this package deals in plain rows.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"siperpus/internal/catalog"
)

// ExportHeaders is the fixed export header row, in contract order.
var ExportHeaders = []string{
	"Judul Buku",
	"Penulis",
	"ISBN",
	"Penerbit",
	"Tahun Terbit",
	"Kategori",
	"Sub Kategori",
	"Bahasa",
	"Jumlah Halaman",
	"Deskripsi",
	"Status",
	"Lokasi",
	"Tanggal Perolehan",
	"Cara Perolehan",
	"Harga",
	"Catatan",
}

const dateLayout = "2006-01-02"

// ColumnMapping maps a book field name to a spreadsheet column letter,
// e.g. {"title": "A", "author": "B"}.
type ColumnMapping map[string]string

// DefaultImportMapping mirrors the export column order, with the barcode
// appended as column Q since import needs one per physical copy.
func DefaultImportMapping() ColumnMapping {
	return ColumnMapping{
		"title":              "A",
		"author":             "B",
		"isbn":               "C",
		"publisher":          "D",
		"published_year":     "E",
		"category":           "F",
		"sub_category":       "G",
		"language":           "H",
		"pages":              "I",
		"description":        "J",
		"status":             "K",
		"location":           "L",
		"acquired_at":        "M",
		"acquisition_method": "N",
		"price":              "O",
		"notes":              "P",
		"barcode":            "Q",
	}
}

// ColumnIndex converts a column letter ("A", "B", ... "AA") to its
// zero-based index.
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return 0, fmt.Errorf("empty column letter")
	}
	idx := 0
	for _, r := range letter {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q", letter)
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1, nil
}

// value reads the mapped cell for field, or "" when the field is unmapped
// or the row is short.
func (m ColumnMapping) value(row []string, field string) (string, error) {
	letter, ok := m[field]
	if !ok {
		return "", nil
	}
	idx, err := ColumnIndex(letter)
	if err != nil {
		return "", fmt.Errorf("field %s: %w", field, err)
	}
	if idx >= len(row) {
		return "", nil
	}
	return strings.TrimSpace(row[idx]), nil
}

// ParseBookRow converts one mapped spreadsheet row into catalog input.
func ParseBookRow(m ColumnMapping, row []string) (catalog.AddInput, error) {
	var in catalog.AddInput
	var err error

	text := func(field string) string {
		if err != nil {
			return ""
		}
		var v string
		v, err = m.value(row, field)
		return v
	}

	in.Title = text("title")
	in.Author = text("author")
	in.ISBN = text("isbn")
	in.Barcode = text("barcode")
	in.Publisher = text("publisher")
	in.Category = text("category")
	in.SubCategory = text("sub_category")
	in.Language = text("language")
	in.Description = text("description")
	in.Location = text("location")
	in.AcquisitionMethod = text("acquisition_method")
	in.Notes = text("notes")

	if year := text("published_year"); year != "" && err == nil {
		in.PublishedYear, err = strconv.Atoi(year)
	}
	if pages := text("pages"); pages != "" && err == nil {
		in.Pages, err = strconv.Atoi(pages)
	}
	if price := text("price"); price != "" && err == nil {
		in.Price, err = strconv.ParseFloat(price, 64)
	}
	if acquired := text("acquired_at"); acquired != "" && err == nil {
		var t time.Time
		t, err = time.Parse(dateLayout, acquired)
		if err == nil {
			in.AcquiredAt = &t
		}
	}
	if err != nil {
		return catalog.AddInput{}, fmt.Errorf("parse book row: %w", err)
	}
	return in, nil
}

// ExportRow renders one book as an export row, in ExportHeaders order.
func ExportRow(b *catalog.Book) []string {
	acquired := ""
	if b.AcquiredAt != nil {
		acquired = b.AcquiredAt.Format(dateLayout)
	}
	return []string{
		b.Title,
		b.Author,
		b.ISBN,
		b.Publisher,
		formatInt(b.PublishedYear),
		b.Category,
		b.SubCategory,
		b.Language,
		formatInt(b.Pages),
		b.Description,
		string(b.Status),
		b.Location,
		acquired,
		b.AcquisitionMethod,
		formatPrice(b.Price),
		b.Notes,
	}
}

// ExportTable builds the full export: header row plus one row per book.
func ExportTable(books []*catalog.Book) [][]string {
	table := make([][]string, 0, len(books)+1)
	table = append(table, ExportHeaders)
	for _, b := range books {
		table = append(table, ExportRow(b))
	}
	return table
}

// WriteCSV streams a table to w in CSV form.
func WriteCSV(w io.Writer, table [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range table {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func formatPrice(p float64) string {
	if p == 0 {
		return ""
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
