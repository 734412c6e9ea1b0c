// internal/notifications/implementation.go
package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	store Store
}

// NewService creates a new notification feed instance.
func NewService(store Store) Service {
	return &service{store: store}
}

// Create records a new unread notification.
func (s *service) Create(ctx context.Context, title, message string, typ Type) (*Notification, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if typ == "" {
		typ = TypeInfo
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrValidation, typ)
	}

	n := &Notification{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Message:   message,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// List returns all notifications, newest first.
func (s *service) List(ctx context.Context) ([]*Notification, error) {
	return s.store.List(ctx)
}

// UnreadCount returns the number of unread notifications.
func (s *service) UnreadCount(ctx context.Context) (int, error) {
	return s.store.CountUnread(ctx)
}

// MarkRead flips a notification to read. Marking an already-read one is a
// no-op observable as "still read".
func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.store.SetRead(ctx, id)
}

// MarkAllRead snapshots the unread set first and marks exactly those, so
// notifications created concurrently are not retroactively read.
func (s *service) MarkAllRead(ctx context.Context) (int, error) {
	ids, err := s.store.ListUnreadIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list unread: %w", err)
	}
	marked := 0
	for _, id := range ids {
		if err := s.store.SetRead(ctx, id); err != nil {
			return marked, fmt.Errorf("mark notification %s: %w", id, err)
		}
		marked++
	}
	return marked, nil
}
