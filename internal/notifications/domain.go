// internal/notifications/domain.go

// Package notifications stores user-facing notices. Read-state is
// monotonic: a notification moves from unread to read exactly once and
// never back. Delivery channels are out of scope; records only.
package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies a notification for display.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeSuccess Type = "success"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeError, TypeSuccess:
		return true
	}
	return false
}

// Notification is one notice shown to the user.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Type      Type      `db:"type" json:"type"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
