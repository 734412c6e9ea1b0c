// internal/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema mirrors the eventstore bootstrap style: idempotent DDL executed
// once at startup instead of a migration toolchain.
const schema = `
CREATE TABLE IF NOT EXISTS members (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL,
	student_id TEXT UNIQUE,
	teacher_id TEXT UNIQUE,
	employee_id TEXT UNIQUE,
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS books (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	isbn TEXT NOT NULL,
	barcode TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL DEFAULT 'available',
	category TEXT,
	sub_category TEXT,
	call_number TEXT,
	publisher TEXT,
	published_year INT,
	language TEXT,
	pages INT,
	description TEXT,
	location TEXT,
	acquired_at DATE,
	acquisition_method TEXT,
	price NUMERIC(12,2),
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS active_borrowings (
	id UUID PRIMARY KEY,
	member_id UUID NOT NULL REFERENCES members(id),
	book_id UUID NOT NULL REFERENCES books(id),
	borrow_date TIMESTAMPTZ NOT NULL,
	due_date TIMESTAMPTZ NOT NULL,
	renewal_count INT NOT NULL DEFAULT 0,
	fine_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'active',
	UNIQUE (book_id)
);

CREATE TABLE IF NOT EXISTS borrow_records (
	id UUID PRIMARY KEY,
	member_id UUID NOT NULL REFERENCES members(id),
	book_id UUID NOT NULL REFERENCES books(id),
	borrow_date TIMESTAMPTZ NOT NULL,
	due_date TIMESTAMPTZ NOT NULL,
	return_date TIMESTAMPTZ,
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS borrow_records_open_idx
	ON borrow_records (member_id, book_id) WHERE status = 'active';

CREATE TABLE IF NOT EXISTS book_labels (
	id UUID PRIMARY KEY,
	book_id UUID NOT NULL UNIQUE REFERENCES books(id),
	barcode TEXT NOT NULL,
	label_template TEXT NOT NULL,
	size TEXT NOT NULL,
	print_count INT NOT NULL DEFAULT 0,
	last_printed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notifications (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	type TEXT NOT NULL DEFAULT 'info',
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates all tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
