// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the notification workflow

package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianExchange/services/exchange/datatypes"
	"github.com/AleutianAI/AleutianExchange/services/exchange/store"
)

func newNotificationFixture(t *testing.T) (*store.Memory, *NotificationService) {
	t.Helper()
	m := store.NewMemory()
	svc := NewNotificationService(m, nil)
	svc.now = fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc.newID = sequentialIDs("n")
	return m, svc
}

func TestAnswerCreated_WritesNotification(t *testing.T) {
	m, svc := newNotificationFixture(t)
	ctx := context.Background()

	q := &datatypes.Question{ID: "q1", Title: "What is a nil map?", AuthorID: "asker"}
	a := &datatypes.Answer{ID: "a1", QuestionID: "q1", AuthorID: "helper"}
	svc.AnswerCreated(ctx, q, a)

	items, total, err := m.ListNotifications(ctx, store.NotificationQuery{UserID: "asker"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, `Your question "What is a nil map?" received a new answer!`, items[0].Message)
	assert.False(t, items[0].IsRead)
}

func TestNotificationList_WithUnreadCount(t *testing.T) {
	m, svc := newNotificationFixture(t)
	ctx := context.Background()
	base := time.Now()
	for i, id := range []string{"n1", "n2", "n3"} {
		require.NoError(t, m.CreateNotification(ctx, &datatypes.Notification{
			ID: id, UserID: "u1", CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	items, pagination, unread, err := svc.List(ctx, "u1", false, ListParams{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 20, pagination.Limit) // notification default page size
	assert.Equal(t, int64(3), unread)
	assert.Equal(t, "n3", items[0].ID)

	_, err = svc.MarkRead(ctx, "n3", "u1")
	require.NoError(t, err)

	items, _, unread, err = svc.List(ctx, "u1", true, ListParams{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(2), unread)
}

func TestNotificationMutations_AreUserScoped(t *testing.T) {
	m, svc := newNotificationFixture(t)
	ctx := context.Background()
	require.NoError(t, m.CreateNotification(ctx, &datatypes.Notification{ID: "n1", UserID: "u1"}))

	_, err := svc.MarkRead(ctx, "n1", "u2")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "n1", "u2"), ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "n1", "u1"))
	assert.ErrorIs(t, svc.Delete(ctx, "n1", "u1"), ErrNotFound)
}

func TestNotificationMarkAllAndDeleteAll(t *testing.T) {
	m, svc := newNotificationFixture(t)
	ctx := context.Background()
	require.NoError(t, m.CreateNotification(ctx, &datatypes.Notification{ID: "n1", UserID: "u1"}))
	require.NoError(t, m.CreateNotification(ctx, &datatypes.Notification{ID: "n2", UserID: "u1"}))
	require.NoError(t, m.CreateNotification(ctx, &datatypes.Notification{ID: "n3", UserID: "u2"}))

	require.NoError(t, svc.MarkAllRead(ctx, "u1"))
	count, err := svc.UnreadCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The other user's notification is untouched.
	count, err = svc.UnreadCount(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.DeleteAll(ctx, "u1"))
	_, total, err := m.ListNotifications(ctx, store.NotificationQuery{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
