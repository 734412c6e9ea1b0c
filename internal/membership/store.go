// internal/membership/store.go
package membership

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

// postgresStore implements Store on the members table.
type postgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the Postgres-backed member store.
func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

func (ps *postgresStore) Insert(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (id, name, email, role, student_id, teacher_id, employee_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := ps.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Email, m.Role, m.StudentID, m.TeacherID, m.EmployeeID, m.Status, m.CreatedAt, m.UpdatedAt)
	return postgres.MapError(err)
}

func (ps *postgresStore) Get(ctx context.Context, id uuid.UUID) (*Member, error) {
	member := &Member{}
	err := ps.db.GetContext(ctx, member, `SELECT * FROM members WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, postgres.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (ps *postgresStore) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET name = $1, email = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := ps.db.ExecContext(ctx, query, m.Name, m.Email, m.Status, m.UpdatedAt, m.ID)
	if err != nil {
		return postgres.MapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s: %w", m.ID, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := ps.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s: %w", id, postgres.ErrNotFound)
	}
	return nil
}

func (ps *postgresStore) List(ctx context.Context) ([]*Member, error) {
	var members []*Member
	err := ps.db.SelectContext(ctx, &members, `SELECT * FROM members ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// Search narrows the directory to rows where any searchable column
// contains the query. Final selection precedence is applied client-side
// by the resolver.
func (ps *postgresStore) Search(ctx context.Context, query string) ([]*Member, error) {
	pattern := "%" + postgres.EscapeLike(query) + "%"
	ds := dialect.From("members").
		Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("email").ILike(pattern),
			goqu.C("student_id").ILike(pattern),
			goqu.C("teacher_id").ILike(pattern),
			goqu.C("employee_id").ILike(pattern),
		)).
		Order(goqu.C("created_at").Asc())

	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	var members []*Member
	if err := ps.db.SelectContext(ctx, &members, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return members, nil
}
