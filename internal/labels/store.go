// internal/labels/store.go
package labels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"siperpus/internal/postgres"
)

// postgresStore implements Store on the book_labels table.
type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the Postgres-backed label store.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (ps *postgresStore) Insert(ctx context.Context, l *Label) error {
	query := `
		INSERT INTO book_labels (id, book_id, barcode, label_template, size, print_count, last_printed_at, created_at)
		VALUES (:id, :book_id, :barcode, :label_template, :size, :print_count, :last_printed_at, :created_at)
	`
	_, err := ps.db.NamedExecContext(ctx, query, l)
	return postgres.MapError(err)
}

func (ps *postgresStore) Get(ctx context.Context, id uuid.UUID) (*Label, error) {
	label := &Label{}
	err := ps.db.GetContext(ctx, label, `SELECT * FROM book_labels WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("label %s: %w", id, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get label: %w", err)
	}
	return label, nil
}

func (ps *postgresStore) GetByBook(ctx context.Context, bookID uuid.UUID) (*Label, error) {
	label := &Label{}
	err := ps.db.GetContext(ctx, label, `SELECT * FROM book_labels WHERE book_id = $1`, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("label for book %s: %w", bookID, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get label by book: %w", err)
	}
	return label, nil
}

func (ps *postgresStore) List(ctx context.Context) ([]*Label, error) {
	var all []*Label
	err := ps.db.SelectContext(ctx, &all, `SELECT * FROM book_labels ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	return all, nil
}

func (ps *postgresStore) Update(ctx context.Context, l *Label) error {
	query := `
		UPDATE book_labels
		SET barcode = :barcode, label_template = :label_template, size = :size,
			print_count = :print_count, last_printed_at = :last_printed_at
		WHERE id = :id
	`
	res, err := ps.db.NamedExecContext(ctx, query, l)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("label %s: %w", l.ID, postgres.ErrNotFound)
	}
	return nil
}
