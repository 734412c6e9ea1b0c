// internal/circulation/store.go
package circulation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"siperpus/internal/catalog"
	"siperpus/internal/postgres"
)

// postgresStore implements Store over the active_borrowings,
// borrow_records and books tables. A nil db marks a transaction-scoped
// instance whose queries run on the enclosing sqlx.Tx.
type postgresStore struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

// NewPostgresStore creates the Postgres-backed circulation store.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db, q: db}
}

// Transact runs fn against a transaction-scoped store. Nested calls reuse
// the enclosing transaction.
func (ps *postgresStore) Transact(ctx context.Context, fn func(Store) error) error {
	if ps.db == nil {
		return fn(ps)
	}
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&postgresStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (ps *postgresStore) CreateActiveBorrowing(ctx context.Context, ab *ActiveBorrowing) error {
	query := `
		INSERT INTO active_borrowings (id, member_id, book_id, borrow_date, due_date, renewal_count, fine_amount, status)
		VALUES (:id, :member_id, :book_id, :borrow_date, :due_date, :renewal_count, :fine_amount, :status)
	`
	_, err := sqlx.NamedExecContext(ctx, ps.q, query, ab)
	return postgres.MapError(err)
}

func (ps *postgresStore) GetActiveBorrowing(ctx context.Context, id uuid.UUID) (*ActiveBorrowing, error) {
	ab := &ActiveBorrowing{}
	err := sqlx.GetContext(ctx, ps.q, ab, `SELECT * FROM active_borrowings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active borrowing %s: %w", id, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get active borrowing: %w", err)
	}
	return ab, nil
}

func (ps *postgresStore) FindActiveBorrowingByBook(ctx context.Context, bookID uuid.UUID) (*ActiveBorrowing, error) {
	ab := &ActiveBorrowing{}
	err := sqlx.GetContext(ctx, ps.q, ab, `SELECT * FROM active_borrowings WHERE book_id = $1`, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("open loan for book %s: %w", bookID, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find active borrowing by book: %w", err)
	}
	return ab, nil
}

func (ps *postgresStore) ListActiveBorrowings(ctx context.Context) ([]*ActiveBorrowing, error) {
	var rows []*ActiveBorrowing
	err := sqlx.SelectContext(ctx, ps.q, &rows, `SELECT * FROM active_borrowings ORDER BY due_date`)
	if err != nil {
		return nil, fmt.Errorf("list active borrowings: %w", err)
	}
	return rows, nil
}

func (ps *postgresStore) ListActiveBorrowingsByMember(ctx context.Context, memberID uuid.UUID) ([]*ActiveBorrowing, error) {
	var rows []*ActiveBorrowing
	err := sqlx.SelectContext(ctx, ps.q, &rows,
		`SELECT * FROM active_borrowings WHERE member_id = $1 ORDER BY due_date`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member borrowings: %w", err)
	}
	return rows, nil
}

func (ps *postgresStore) CountActiveBorrowingsByMember(ctx context.Context, memberID uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, ps.q, &count,
		`SELECT COUNT(*) FROM active_borrowings WHERE member_id = $1`, memberID)
	if err != nil {
		return 0, fmt.Errorf("count member borrowings: %w", err)
	}
	return count, nil
}

func (ps *postgresStore) UpdateActiveBorrowing(ctx context.Context, ab *ActiveBorrowing) error {
	query := `
		UPDATE active_borrowings
		SET due_date = :due_date, renewal_count = :renewal_count, fine_amount = :fine_amount, status = :status
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, ps.q, query, ab)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("active borrowing %s: %w", ab.ID, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) DeleteActiveBorrowing(ctx context.Context, id uuid.UUID) error {
	res, err := ps.q.ExecContext(ctx, `DELETE FROM active_borrowings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("active borrowing %s: %w", id, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) CreateBorrowRecord(ctx context.Context, rec *BorrowRecord) error {
	query := `
		INSERT INTO borrow_records (id, member_id, book_id, borrow_date, due_date, return_date, status, created_at)
		VALUES (:id, :member_id, :book_id, :borrow_date, :due_date, :return_date, :status, :created_at)
	`
	_, err := sqlx.NamedExecContext(ctx, ps.q, query, rec)
	return postgres.MapError(err)
}

func (ps *postgresStore) GetOpenBorrowRecord(ctx context.Context, memberID, bookID uuid.UUID) (*BorrowRecord, error) {
	rec := &BorrowRecord{}
	err := sqlx.GetContext(ctx, ps.q, rec, `
		SELECT * FROM borrow_records
		WHERE member_id = $1 AND book_id = $2 AND status = 'active'
	`, memberID, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("open borrow record: %w", postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get open borrow record: %w", err)
	}
	return rec, nil
}

func (ps *postgresStore) UpdateBorrowRecord(ctx context.Context, rec *BorrowRecord) error {
	query := `
		UPDATE borrow_records
		SET due_date = :due_date, return_date = :return_date, status = :status
		WHERE id = :id
	`
	res, err := sqlx.NamedExecContext(ctx, ps.q, query, rec)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("borrow record %s: %w", rec.ID, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) ListBorrowRecordsByMember(ctx context.Context, memberID uuid.UUID) ([]*BorrowRecord, error) {
	var rows []*BorrowRecord
	err := sqlx.SelectContext(ctx, ps.q, &rows,
		`SELECT * FROM borrow_records WHERE member_id = $1 ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, fmt.Errorf("list borrow records: %w", err)
	}
	return rows, nil
}

func (ps *postgresStore) SetBookStatus(ctx context.Context, bookID uuid.UUID, status catalog.BookStatus) error {
	res, err := ps.q.ExecContext(ctx,
		`UPDATE books SET status = $1, updated_at = NOW() WHERE id = $2`, status, bookID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("book %s: %w", bookID, postgres.ErrNotFound)
	}
	return nil
}
