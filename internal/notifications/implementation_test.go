package notifications

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siperpus/internal/postgres"
)

type memNotificationStore struct {
	notifications map[uuid.UUID]*Notification

	// onListUnread runs after the unread snapshot is taken, to model a
	// notification arriving while MarkAllRead is in flight.
	onListUnread func()
}

func newMemNotificationStore() *memNotificationStore {
	return &memNotificationStore{notifications: make(map[uuid.UUID]*Notification)}
}

func (m *memNotificationStore) Insert(_ context.Context, n *Notification) error {
	cp := *n
	m.notifications[n.ID] = &cp
	return nil
}

func (m *memNotificationStore) Get(_ context.Context, id uuid.UUID) (*Notification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", id, postgres.ErrNotFound)
	}
	cp := *n
	return &cp, nil
}

func (m *memNotificationStore) List(_ context.Context) ([]*Notification, error) {
	var out []*Notification
	for _, n := range m.notifications {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memNotificationStore) ListUnreadIDs(_ context.Context) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for id, n := range m.notifications {
		if !n.IsRead {
			out = append(out, id)
		}
	}
	if m.onListUnread != nil {
		m.onListUnread()
	}
	return out, nil
}

func (m *memNotificationStore) CountUnread(_ context.Context) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationStore) SetRead(_ context.Context, id uuid.UUID) error {
	n, ok := m.notifications[id]
	if !ok {
		return fmt.Errorf("notification %s: %w", id, postgres.ErrNotFound)
	}
	n.IsRead = true
	return nil
}

func TestCreateDefaultsToInfo(t *testing.T) {
	svc := NewService(newMemNotificationStore())

	n, err := svc.Create(context.Background(), "Buku terlambat", "1 buku melewati jatuh tempo", "")
	require.NoError(t, err)
	assert.Equal(t, TypeInfo, n.Type)
	assert.False(t, n.IsRead)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := NewService(newMemNotificationStore())
	ctx := context.Background()

	_, err := svc.Create(ctx, "  ", "pesan", TypeInfo)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "Judul", "pesan", Type("shout"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarkReadIsMonotonic(t *testing.T) {
	store := newMemNotificationStore()
	svc := NewService(store)
	ctx := context.Background()

	n, err := svc.Create(ctx, "Judul", "pesan", TypeWarning)
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, n.ID))
	got, err := store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)

	// Marking again is a no-op, never a flip back to unread.
	require.NoError(t, svc.MarkRead(ctx, n.ID))
	got, err = store.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc := NewService(newMemNotificationStore())
	err := svc.MarkRead(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrNotFound)
}

func TestUnreadCount(t *testing.T) {
	svc := NewService(newMemNotificationStore())
	ctx := context.Background()

	first, err := svc.Create(ctx, "Satu", "", TypeInfo)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Dua", "", TypeInfo)
	require.NoError(t, err)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.MarkRead(ctx, first.ID))
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkAllReadSnapshotsUnreadSet(t *testing.T) {
	store := newMemNotificationStore()
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Satu", "", TypeInfo)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Dua", "", TypeInfo)
	require.NoError(t, err)

	// A notification lands right after the snapshot; it must stay unread.
	var late *Notification
	store.onListUnread = func() {
		store.onListUnread = nil
		late, err = svc.Create(ctx, "Tiga", "", TypeInfo)
		require.NoError(t, err)
	}

	marked, err := svc.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	got, err := store.Get(ctx, late.ID)
	require.NoError(t, err)
	assert.False(t, got.IsRead, "notifications created mid-run stay unread")

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkAllReadOnEmptyFeed(t *testing.T) {
	svc := NewService(newMemNotificationStore())
	marked, err := svc.MarkAllRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}
