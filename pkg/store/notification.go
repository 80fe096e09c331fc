package store

import (
	"github.com/kerbaras/storyline/pkg/data"
)

// NotificationState holds the feed. The socket listener prepends into it;
// the listing endpoint pages into it like any other list.
type NotificationState struct {
	Pagination

	Notifications []data.Notification
	UnreadCount   int

	Loading bool
	Error   string
}

// Push prepends a notification delivered over the socket and bumps the
// unread counter.
func (s *NotificationState) Push(n data.Notification) {
	s.Notifications = append([]data.Notification{n}, s.Notifications...)
	s.UnreadCount++
}

// ResetUnread clears the badge when the panel opens. Individual items are
// not marked read here; the listing endpoint owns that.
func (s *NotificationState) ResetUnread() {
	s.UnreadCount = 0
}

func (s *NotificationState) SetUnread(count int) {
	s.UnreadCount = count
}

func (s *NotificationState) StartList(loadMore bool) bool {
	if loadMore && (s.Loading || !s.HasMore) {
		return false
	}
	s.Loading = true
	s.Error = ""
	return true
}

func (s *NotificationState) FinishList(page *data.Page[data.Notification], loadMore bool) {
	if loadMore {
		s.Notifications = mergePage(s.Notifications, page.Results, func(n data.Notification) int { return n.ID })
	} else {
		s.Notifications = page.Results
	}
	s.applyLinks(page.Links, page.Total, page.Page)
	s.Loading = false
}

func (s *NotificationState) FailList(err error) {
	s.Loading = false
	s.Notifications = nil
	s.Error = errText(err)
}
