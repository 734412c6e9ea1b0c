// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"siperpus/internal/postgres"
)

var dialect = goqu.Dialect("postgres")

// postgresStore implements Store on the books table.
type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the Postgres-backed book store.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (ps *postgresStore) Insert(ctx context.Context, b *Book) error {
	query := `
		INSERT INTO books (
			id, title, author, isbn, barcode, status, category, sub_category,
			call_number, publisher, published_year, language, pages, description,
			location, acquired_at, acquisition_method, price, notes, created_at, updated_at
		) VALUES (
			:id, :title, :author, :isbn, :barcode, :status, :category, :sub_category,
			:call_number, :publisher, :published_year, :language, :pages, :description,
			:location, :acquired_at, :acquisition_method, :price, :notes, :created_at, :updated_at
		)
	`
	_, err := ps.db.NamedExecContext(ctx, query, b)
	return postgres.MapError(err)
}

func (ps *postgresStore) Get(ctx context.Context, id uuid.UUID) (*Book, error) {
	book := &Book{}
	err := ps.db.GetContext(ctx, book, `SELECT * FROM books WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %s: %w", id, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

func (ps *postgresStore) Update(ctx context.Context, b *Book) error {
	query := `
		UPDATE books SET
			title = :title, author = :author, isbn = :isbn, barcode = :barcode,
			status = :status, category = :category, sub_category = :sub_category,
			call_number = :call_number, publisher = :publisher,
			published_year = :published_year, language = :language, pages = :pages,
			description = :description, location = :location, acquired_at = :acquired_at,
			acquisition_method = :acquisition_method, price = :price, notes = :notes,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := ps.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return postgres.MapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %s: %w", b.ID, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) SetStatus(ctx context.Context, id uuid.UUID, status BookStatus) error {
	res, err := ps.db.ExecContext(ctx,
		`UPDATE books SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %s: %w", id, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %s: %w", id, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) List(ctx context.Context) ([]*Book, error) {
	var books []*Book
	err := ps.db.SelectContext(ctx, &books, `SELECT * FROM books ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Search narrows the catalog to rows where barcode, title or ISBN
// contains the query.
func (ps *postgresStore) Search(ctx context.Context, query string) ([]*Book, error) {
	pattern := "%" + postgres.EscapeLike(query) + "%"
	ds := dialect.From("books").
		Where(goqu.Or(
			goqu.C("barcode").ILike(pattern),
			goqu.C("title").ILike(pattern),
			goqu.C("isbn").ILike(pattern),
		)).
		Order(goqu.C("created_at").Asc())

	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	var books []*Book
	if err := ps.db.SelectContext(ctx, &books, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return books, nil
}
