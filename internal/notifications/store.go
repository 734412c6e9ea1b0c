// internal/notifications/store.go
package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"siperpus/internal/postgres"
)

// postgresStore implements Store on the notifications table.
type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the Postgres-backed notification store.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (ps *postgresStore) Insert(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, type, is_read, created_at)
		VALUES (:id, :title, :message, :type, :is_read, :created_at)
	`
	_, err := ps.db.NamedExecContext(ctx, query, n)
	return postgres.MapError(err)
}

func (ps *postgresStore) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	n := &Notification{}
	err := ps.db.GetContext(ctx, n, `SELECT * FROM notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notification %s: %w", id, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func (ps *postgresStore) List(ctx context.Context) ([]*Notification, error) {
	var all []*Notification
	err := ps.db.SelectContext(ctx, &all, `SELECT * FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return all, nil
}

func (ps *postgresStore) ListUnreadIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := ps.db.SelectContext(ctx, &ids,
		`SELECT id FROM notifications WHERE is_read = FALSE ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return ids, nil
}

func (ps *postgresStore) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := ps.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM notifications WHERE is_read = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// SetRead only ever moves is_read forward, keeping the state monotonic.
func (ps *postgresStore) SetRead(ctx context.Context, id uuid.UUID) error {
	res, err := ps.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification %s: %w", id, postgres.ErrNotFound)
	}
	return nil
}
