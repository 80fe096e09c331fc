package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type NotificationsScreen struct {
	deps *Deps

	list *components.NotificationList

	width  int
	height int
}

func NewNotificationsScreen(deps *Deps) *NotificationsScreen {
	return &NotificationsScreen{deps: deps, list: components.NewNotificationList()}
}

func (s *NotificationsScreen) Init() tea.Cmd {
	// opening the feed counts as reading it
	s.deps.Store.Notifications.ResetUnread()
	if s.deps.Store.Notifications.StartList(false) {
		return s.fetch(false)
	}
	return nil
}

func (s *NotificationsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j":
			if s.list.AtEnd() && s.deps.Store.Notifications.HasMore {
				if s.deps.Store.Notifications.StartList(true) {
					return s, s.fetch(true)
				}
				return s, nil
			}
			s.list.Next()
		case "up", "k":
			s.list.Prev()
		}

	case notificationsMsg:
		if msg.err != nil {
			s.deps.Store.Notifications.FailList(msg.err)
			s.list.SetItems(nil)
			return s, nil
		}
		s.deps.Store.Notifications.FinishList(msg.page, msg.loadMore)
		s.list.SetItems(s.deps.Store.Notifications.Notifications)
	}

	return s, nil
}

func (s *NotificationsScreen) View() string {
	header := styles.TitleStyle.Render("Notifications")

	errLine := components.ErrorLine(s.deps.Store.Notifications.Error)

	var body string
	if s.deps.Store.Notifications.Loading && !s.deps.Store.Notifications.FirstLoaded {
		body = styles.LoadingStyle.Render("Loading notifications...")
	} else {
		body = s.list.View()
		if s.deps.Store.Notifications.HasMore {
			body += styles.MutedStyle.Render("↓ more")
		}
	}

	help := styles.HelpStyle.Render("↑/↓: navigate • tab: switch view • q: quit")

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errLine, body, help)
}

type notificationsMsg struct {
	page     *data.Page[data.Notification]
	loadMore bool
	err      error
}

func (s *NotificationsScreen) fetch(loadMore bool) tea.Cmd {
	nextURL := ""
	if loadMore {
		nextURL = s.deps.Store.Notifications.NextLink
	}
	pageSize := s.deps.Config.Pages.Notifications
	return func() tea.Msg {
		page, err := s.deps.API.ListNotifications(context.Background(), pageSize, nextURL)
		return notificationsMsg{page: page, loadMore: loadMore, err: err}
	}
}
