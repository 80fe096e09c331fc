package components

import (
	"strings"

	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type NotificationList struct {
	Items         []data.Notification
	SelectedIndex int
	Width         int
}

func NewNotificationList() *NotificationList {
	return &NotificationList{Width: 80}
}

func (l *NotificationList) SetItems(items []data.Notification) {
	l.Items = items
	if l.SelectedIndex >= len(items) {
		l.SelectedIndex = 0
	}
}

func (l *NotificationList) Next() {
	if len(l.Items) == 0 {
		return
	}
	if l.SelectedIndex < len(l.Items)-1 {
		l.SelectedIndex++
	}
}

func (l *NotificationList) Prev() {
	if l.SelectedIndex > 0 {
		l.SelectedIndex--
	}
}

func (l *NotificationList) AtEnd() bool {
	return len(l.Items) > 0 && l.SelectedIndex == len(l.Items)-1
}

func (l *NotificationList) View() string {
	if len(l.Items) == 0 {
		return styles.MutedStyle.Render("No notifications")
	}

	var b strings.Builder
	for i, n := range l.Items {
		marker := "  "
		if !n.IsRead {
			marker = styles.SuccessStyle.Render("● ")
		}
		line := styles.TextStyle.Render(n.Message)
		if i == l.SelectedIndex {
			line = styles.TitleStyle.Render(n.Message)
		}
		b.WriteString(marker + line)
		b.WriteString("\n")
		b.WriteString("  " + styles.MutedStyle.Render(n.CreatedAt))
		b.WriteString("\n")
	}
	return b.String()
}
