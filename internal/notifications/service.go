// internal/notifications/service.go
package notifications

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrValidation marks input that was rejected before any side effect.
var ErrValidation = errors.New("invalid notification input")

// Service defines the interface for the notification feed.
type Service interface {
	Create(ctx context.Context, title, message string, typ Type) (*Notification, error)
	List(ctx context.Context) ([]*Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	// MarkRead is idempotent: an already-read notification stays read.
	MarkRead(ctx context.Context, id uuid.UUID) error
	// MarkAllRead affects only the notifications unread at call time;
	// ones created while it runs keep their unread state.
	MarkAllRead(ctx context.Context) (int, error)
}

// Store is the backing record store for notifications.
type Store interface {
	Insert(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id uuid.UUID) (*Notification, error)
	List(ctx context.Context) ([]*Notification, error)
	ListUnreadIDs(ctx context.Context) ([]uuid.UUID, error)
	CountUnread(ctx context.Context) (int, error)
	SetRead(ctx context.Context, id uuid.UUID) error
}
