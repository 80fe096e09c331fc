package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kerbaras/storyline/pkg/data"
)

func TestPushPrependsAndCountsUnread(t *testing.T) {
	var s NotificationState
	s.FinishList(&data.Page[data.Notification]{
		Results: []data.Notification{{ID: 1, Message: "old"}},
		Total:   1,
	}, false)

	s.Push(data.Notification{ID: 2, Message: "new"})
	s.Push(data.Notification{ID: 3, Message: "newest"})

	assert.Equal(t, 2, s.UnreadCount)
	assert.Equal(t, 3, s.Notifications[0].ID)
	assert.Equal(t, 2, s.Notifications[1].ID)
	assert.Equal(t, 1, s.Notifications[2].ID)
}

func TestResetUnreadKeepsItems(t *testing.T) {
	var s NotificationState
	s.Push(data.Notification{ID: 1})
	s.Push(data.Notification{ID: 2})

	s.ResetUnread()

	assert.Zero(t, s.UnreadCount)
	assert.Len(t, s.Notifications, 2, "opening the panel only clears the badge")
}

func TestNotificationListLifecycle(t *testing.T) {
	var s NotificationState
	s.Pagination.HasMore = true

	assert.True(t, s.StartList(false))
	assert.True(t, s.Loading)

	next := "http://api/users/notifications/?page=2"
	s.FinishList(&data.Page[data.Notification]{
		Results: []data.Notification{{ID: 5}, {ID: 4}},
		Total:   4,
		Page:    1,
		Links:   data.PageLinks{Next: &next},
	}, false)

	assert.False(t, s.Loading)
	assert.True(t, s.HasMore)

	assert.True(t, s.StartList(true))
	s.FinishList(&data.Page[data.Notification]{
		Results: []data.Notification{{ID: 3}, {ID: 2}},
		Total:   4,
		Page:    2,
	}, true)

	assert.Equal(t, []int{5, 4, 3, 2}, notificationIDs(s.Notifications))
	assert.False(t, s.HasMore)
}

func notificationIDs(items []data.Notification) []int {
	out := make([]int, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}
