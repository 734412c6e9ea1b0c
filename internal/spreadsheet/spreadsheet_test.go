package spreadsheet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siperpus/internal/catalog"
)

func TestExportHeadersContract(t *testing.T) {
	require.Len(t, ExportHeaders, 16)
	assert.Equal(t, "Judul Buku", ExportHeaders[0])
	assert.Equal(t, "Penulis", ExportHeaders[1])
	assert.Equal(t, "Status", ExportHeaders[10])
	assert.Equal(t, "Catatan", ExportHeaders[15])
}

func TestColumnIndex(t *testing.T) {
	cases := []struct {
		letter string
		want   int
	}{
		{"A", 0},
		{"B", 1},
		{"Z", 25},
		{"AA", 26},
		{"AB", 27},
		{" q ", 16},
	}
	for _, tc := range cases {
		got, err := ColumnIndex(tc.letter)
		require.NoError(t, err, tc.letter)
		assert.Equal(t, tc.want, got, tc.letter)
	}

	_, err := ColumnIndex("")
	assert.Error(t, err)
	_, err = ColumnIndex("A1")
	assert.Error(t, err)
}

func TestParseBookRowDefaultMapping(t *testing.T) {
	row := []string{
		"Laskar Pelangi",     // A title
		"Andrea Hirata",      // B author
		"9789793062792",      // C isbn
		"Bentang Pustaka",    // D publisher
		"2005",               // E published_year
		"Fiksi",              // F category
		"Novel",              // G sub_category
		"Indonesia",          // H language
		"529",                // I pages
		"Novel pertama",      // J description
		"available",          // K status
		"Rak A-3",            // L location
		"2024-07-15",         // M acquired_at
		"Pembelian",          // N acquisition_method
		"85000",              // O price
		"Hadiah alumni",      // P notes
		"00042",              // Q barcode
	}

	in, err := ParseBookRow(DefaultImportMapping(), row)
	require.NoError(t, err)

	assert.Equal(t, "Laskar Pelangi", in.Title)
	assert.Equal(t, "Andrea Hirata", in.Author)
	assert.Equal(t, "9789793062792", in.ISBN)
	assert.Equal(t, "00042", in.Barcode)
	assert.Equal(t, 2005, in.PublishedYear)
	assert.Equal(t, 529, in.Pages)
	assert.Equal(t, 85000.0, in.Price)
	require.NotNil(t, in.AcquiredAt)
	assert.Equal(t, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), *in.AcquiredAt)
}

func TestParseBookRowShortRow(t *testing.T) {
	// Unmapped cells and missing trailing columns read as empty.
	in, err := ParseBookRow(DefaultImportMapping(), []string{"Judul", "Penulis"})
	require.NoError(t, err)
	assert.Equal(t, "Judul", in.Title)
	assert.Equal(t, "Penulis", in.Author)
	assert.Equal(t, "", in.Barcode)
	assert.Zero(t, in.PublishedYear)
	assert.Nil(t, in.AcquiredAt)
}

func TestParseBookRowCustomMapping(t *testing.T) {
	mapping := ColumnMapping{"title": "B", "barcode": "A"}
	in, err := ParseBookRow(mapping, []string{"00042", "Laskar Pelangi", "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Laskar Pelangi", in.Title)
	assert.Equal(t, "00042", in.Barcode)
	assert.Equal(t, "", in.Author)
}

func TestParseBookRowBadNumber(t *testing.T) {
	mapping := ColumnMapping{"title": "A", "published_year": "B"}
	_, err := ParseBookRow(mapping, []string{"Judul", "dua ribu lima"})
	assert.Error(t, err)
}

func TestParseBookRowBadDate(t *testing.T) {
	mapping := ColumnMapping{"title": "A", "acquired_at": "B"}
	_, err := ParseBookRow(mapping, []string{"Judul", "15/07/2024"})
	assert.Error(t, err)
}

func TestExportRowOrder(t *testing.T) {
	acquired := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	book := &catalog.Book{
		Title:             "Laskar Pelangi",
		Author:            "Andrea Hirata",
		ISBN:              "9789793062792",
		Publisher:         "Bentang Pustaka",
		PublishedYear:     2005,
		Category:          "Fiksi",
		SubCategory:       "Novel",
		Language:          "Indonesia",
		Pages:             529,
		Description:       "Novel pertama",
		Status:            catalog.StatusAvailable,
		Location:          "Rak A-3",
		AcquiredAt:        &acquired,
		AcquisitionMethod: "Pembelian",
		Price:             85000,
		Notes:             "Hadiah alumni",
	}

	row := ExportRow(book)
	require.Len(t, row, len(ExportHeaders))
	assert.Equal(t, "Laskar Pelangi", row[0])
	assert.Equal(t, "2005", row[4])
	assert.Equal(t, "available", row[10])
	assert.Equal(t, "2024-07-15", row[12])
	assert.Equal(t, "85000.00", row[14])
}

func TestExportRowEmptyOptionals(t *testing.T) {
	row := ExportRow(&catalog.Book{Title: "Judul", Author: "Penulis", Status: catalog.StatusAvailable})
	assert.Equal(t, "", row[4], "zero year renders empty")
	assert.Equal(t, "", row[12], "nil acquisition date renders empty")
	assert.Equal(t, "", row[14], "zero price renders empty")
}

func TestWriteCSVRoundTrip(t *testing.T) {
	books := []*catalog.Book{
		{Title: "Laskar Pelangi", Author: "Andrea Hirata", Status: catalog.StatusAvailable},
		{Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Status: catalog.StatusBorrowed},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ExportTable(books)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Judul Buku,Penulis,ISBN"))
	assert.Contains(t, lines[1], "Laskar Pelangi")
	assert.Contains(t, lines[2], "Bumi Manusia")
}
