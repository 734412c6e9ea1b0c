package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siperpus/internal/lookup"
	"siperpus/internal/postgres"
)

type memBookStore struct {
	books map[uuid.UUID]*Book
}

func newMemBookStore() *memBookStore {
	return &memBookStore{books: make(map[uuid.UUID]*Book)}
}

func (m *memBookStore) Insert(_ context.Context, b *Book) error {
	for _, existing := range m.books {
		if existing.Barcode == b.Barcode {
			return fmt.Errorf("barcode taken: %w", postgres.ErrConflict)
		}
	}
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *memBookStore) Get(_ context.Context, id uuid.UUID) (*Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, fmt.Errorf("book %s: %w", id, postgres.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (m *memBookStore) Update(_ context.Context, b *Book) error {
	if _, ok := m.books[b.ID]; !ok {
		return fmt.Errorf("book %s: %w", b.ID, postgres.ErrNotFound)
	}
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *memBookStore) SetStatus(_ context.Context, id uuid.UUID, status BookStatus) error {
	b, ok := m.books[id]
	if !ok {
		return fmt.Errorf("book %s: %w", id, postgres.ErrNotFound)
	}
	b.Status = status
	return nil
}

func (m *memBookStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.books[id]; !ok {
		return fmt.Errorf("book %s: %w", id, postgres.ErrNotFound)
	}
	delete(m.books, id)
	return nil
}

func (m *memBookStore) List(_ context.Context) ([]*Book, error) {
	var out []*Book
	for _, b := range m.books {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memBookStore) Search(_ context.Context, query string) ([]*Book, error) {
	var out []*Book
	for _, b := range m.books {
		for _, f := range b.LookupFields().Contains {
			if strings.Contains(lookup.Normalize(f), query) {
				cp := *b
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func addBook(t *testing.T, svc Service, title, barcode string) *Book {
	t.Helper()
	b, err := svc.Add(context.Background(), AddInput{
		Title:   title,
		Author:  "Penulis",
		Barcode: barcode,
	})
	require.NoError(t, err)
	return b
}

func TestAddDefaultsToAvailable(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")

	b, err := svc.Add(context.Background(), AddInput{
		Title:   "  Laskar Pelangi ",
		Author:  "Andrea Hirata",
		Barcode: "lib-0042",
	})
	require.NoError(t, err)

	assert.Equal(t, "Laskar Pelangi", b.Title)
	assert.Equal(t, StatusAvailable, b.Status)
	assert.Equal(t, "LIB-0042", b.Barcode, "barcodes are stored uppercased")
}

func TestAddRequiresCoreFields(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")
	ctx := context.Background()

	_, err := svc.Add(ctx, AddInput{Author: "A", Barcode: "0001"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, AddInput{Title: "T", Barcode: "0001"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, AddInput{Title: "T", Author: "A"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddDuplicateBarcode(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")
	addBook(t, svc, "Laskar Pelangi", "00042")

	_, err := svc.Add(context.Background(), AddInput{
		Title:   "Salinan Kedua",
		Author:  "Penulis",
		Barcode: "00042",
	})
	assert.ErrorIs(t, err, postgres.ErrConflict)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	store := newMemBookStore()
	svc := NewService(store, "LIB")
	b := addBook(t, svc, "Laskar Pelangi", "00042")
	ctx := context.Background()

	// An edit arriving with a status outside the enum must not reach the
	// store; a corrupted status would make the copy unborrowable.
	b.Status = BookStatus("vanished")
	err := svc.Update(ctx, b)
	assert.ErrorIs(t, err, ErrValidation)

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, got.Status)
}

func TestUpdateNormalizesBarcode(t *testing.T) {
	store := newMemBookStore()
	svc := NewService(store, "LIB")
	b := addBook(t, svc, "Laskar Pelangi", "00042")
	ctx := context.Background()

	b.Barcode = " lib-0042 "
	b.Title = "  Laskar Pelangi  "
	require.NoError(t, svc.Update(ctx, b))

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "LIB-0042", got.Barcode)
	assert.Equal(t, "Laskar Pelangi", got.Title)
}

func TestUpdateRequiresCoreFields(t *testing.T) {
	store := newMemBookStore()
	svc := NewService(store, "LIB")
	b := addBook(t, svc, "Laskar Pelangi", "00042")
	ctx := context.Background()

	cleared := *b
	cleared.Author = "  "
	assert.ErrorIs(t, svc.Update(ctx, &cleared), ErrValidation)

	cleared = *b
	cleared.Barcode = ""
	assert.ErrorIs(t, svc.Update(ctx, &cleared), ErrValidation)
}

func TestSetStatusValidatesStatus(t *testing.T) {
	store := newMemBookStore()
	svc := NewService(store, "LIB")
	b := addBook(t, svc, "Laskar Pelangi", "00042")
	ctx := context.Background()

	require.NoError(t, svc.SetStatus(ctx, b.ID, StatusDamaged))
	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDamaged, got.Status)

	assert.ErrorIs(t, svc.SetStatus(ctx, b.ID, BookStatus("vanished")), ErrValidation)
}

func TestResolveStripsBarcodePrefix(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")
	b := addBook(t, svc, "Laskar Pelangi", "00042")
	addBook(t, svc, "Bumi Manusia", "00043")

	// A scanned code arrives with the label prefix attached.
	res, err := svc.Resolve(context.Background(), "LIB00042")
	require.NoError(t, err)
	require.NotNil(t, res.Selected)
	assert.Equal(t, b.ID, res.Selected.ID)
}

func TestResolveByTitle(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")
	addBook(t, svc, "Laskar Pelangi", "00042")
	addBook(t, svc, "Sang Pemimpi", "00043")

	res, err := svc.Resolve(context.Background(), "pelangi")
	require.NoError(t, err)
	require.NotNil(t, res.Selected)
	assert.Equal(t, "Laskar Pelangi", res.Selected.Title)
}

func TestResolveAmbiguousQuery(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")
	addBook(t, svc, "Bumi Manusia", "00042")
	addBook(t, svc, "Anak Semua Bangsa", "00043")

	// "00" hits both barcodes; neither is an exact match.
	res, err := svc.Resolve(context.Background(), "00")
	require.NoError(t, err)
	assert.Nil(t, res.Selected)
	assert.Len(t, res.Candidates, 2)
}

func TestResolveEmptyQueryClears(t *testing.T) {
	svc := NewService(newMemBookStore(), "LIB")
	addBook(t, svc, "Laskar Pelangi", "00042")

	res, err := svc.Resolve(context.Background(), "  ")
	require.NoError(t, err)
	assert.Nil(t, res.Selected)
	assert.Empty(t, res.Candidates)
}
