package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
	"github.com/kerbaras/storyline/pkg/realtime"
)

type screenType int

const (
	homeView screenType = iota
	searchView
	libraryView
	notificationsView
	loginView
	registerView
	storyView
	readerView
	editorView
	storyFormView
)

var tabViews = []screenType{homeView, searchView, libraryView, notificationsView}

type RootScreen struct {
	deps     *Deps
	listener *realtime.Listener

	currentView screenType
	home        *HomeScreen
	search      *SearchScreen
	library     *LibraryScreen
	feed        *NotificationsScreen
	login       *LoginScreen
	register    *RegisterScreen
	story       *StoryScreen
	reader      *ReaderScreen
	editor      *EditorScreen
	storyForm   *StoryFormScreen

	width  int
	height int
}

func NewRootScreen(deps *Deps) *RootScreen {
	return &RootScreen{
		deps:   deps,
		home:   NewHomeScreen(deps),
		search: NewSearchScreen(deps),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.bootstrapSession(), r.home.Init())
}

// bootstrapSession decides what the stored token is worth. An expired token
// demotes silently without a network call; a live one is still checked with
// the server before the session is trusted.
func (r *RootScreen) bootstrapSession() tea.Cmd {
	token := r.deps.Store.Auth.Access
	if token == "" {
		if r.deps.Store.Auth.IsAuthenticated {
			r.deps.Store.Auth.SetAuthenticated(false)
		}
		return nil
	}
	if api.TokenExpired(token) {
		r.deps.Store.Auth.SetAuthenticated(false)
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		ok, err := r.deps.API.VerifyToken(ctx, token)
		if err != nil || !ok {
			return sessionVerifiedMsg{ok: false}
		}
		user, err := r.deps.API.CurrentUser(ctx)
		if err != nil {
			return sessionVerifiedMsg{ok: false}
		}
		return sessionVerifiedMsg{ok: true, user: user}
	}
}

func (r *RootScreen) startListener() tea.Cmd {
	if r.listener != nil {
		r.listener.Close()
	}
	session := r.deps.Session
	r.listener = realtime.NewListener(r.deps.Config.WS.URL, func() (string, bool) {
		return session.Get(data.KeyAccess), session.Get(data.KeyIsAuthenticated) == "true"
	}, r.deps.Log)
	r.listener.Start()
	return tea.Batch(waitForNotification(r.listener), r.fetchUnreadCount())
}

func (r *RootScreen) stopListener() {
	if r.listener != nil {
		r.listener.Close()
		r.listener = nil
	}
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			r.stopListener()
			return r, tea.Quit
		case "q":
			if r.currentView == homeView || r.currentView == libraryView || r.currentView == notificationsView {
				r.stopListener()
				return r, tea.Quit
			}
		case "ctrl+l":
			if r.deps.Store.Auth.IsAuthenticated {
				r.stopListener()
				r.deps.Store.Auth.Logout()
				r.currentView = homeView
				return r, r.home.Init()
			}
			return r, r.switchView(loginView, nil)
		case "tab":
			if r.isTabView() {
				next := (r.tabIndex() + 1) % len(tabViews)
				return r, r.switchView(tabViews[next], nil)
			}
		case "1", "2", "3", "4":
			if r.isTabView() && !(r.currentView == searchView && r.search.input.Focused()) {
				idx := int(msg.String()[0] - '1')
				return r, r.switchView(tabViews[idx], nil)
			}
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "home":
			return r, r.switchView(homeView, nil)
		case "search":
			return r, r.switchView(searchView, nil)
		case "library":
			return r, r.switchView(libraryView, nil)
		case "notifications":
			return r, r.switchView(notificationsView, nil)
		case "login":
			return r, r.switchView(loginView, nil)
		case "register":
			return r, r.switchView(registerView, nil)
		case "story":
			return r, r.switchView(storyView, msg.Data)
		case "reader":
			return r, r.switchView(readerView, msg.Data)
		case "editor":
			return r, r.switchView(editorView, msg.Data)
		case "storyform":
			return r, r.switchView(storyFormView, msg.Data)
		}
		return r, nil

	case SessionStartedMsg:
		return r, r.startListener()

	case sessionVerifiedMsg:
		r.deps.Store.Auth.SetAuthenticated(msg.ok)
		if !msg.ok {
			return r, nil
		}
		r.deps.Store.Auth.SetUser(msg.user)
		return r, r.startListener()

	case notificationMsg:
		if !msg.ok {
			// channel closed on logout; nothing to re-arm
			return r, nil
		}
		r.deps.Store.Notifications.Push(msg.notification)
		cmds := []tea.Cmd{waitForNotification(r.listener)}
		if r.currentView == notificationsView {
			// the open feed counts as read
			r.deps.Store.Notifications.ResetUnread()
		}
		return r, tea.Batch(cmds...)

	case unreadCountMsg:
		if msg.err == nil {
			r.deps.Store.Notifications.SetUnread(msg.count)
		}
		return r, nil
	}

	// forward everything else to the active screen
	model, screenCmd := r.active().Update(msg)
	r.setActive(model)
	return r, screenCmd
}

func (r *RootScreen) isTabView() bool {
	for _, v := range tabViews {
		if r.currentView == v {
			return true
		}
	}
	return false
}

func (r *RootScreen) tabIndex() int {
	for i, v := range tabViews {
		if r.currentView == v {
			return i
		}
	}
	return 0
}

// switchView builds the target screen when it carries per-visit state and
// runs its Init. Library and notifications are signed-in only.
func (r *RootScreen) switchView(view screenType, payload interface{}) tea.Cmd {
	if (view == libraryView || view == notificationsView || view == editorView || view == storyFormView) &&
		!r.deps.Store.Auth.IsAuthenticated {
		view = loginView
		payload = nil
	}

	switch view {
	case libraryView:
		if r.library == nil {
			r.library = NewLibraryScreen(r.deps)
		}
	case notificationsView:
		if r.feed == nil {
			r.feed = NewNotificationsScreen(r.deps)
		}
	case loginView:
		r.login = NewLoginScreen(r.deps)
	case registerView:
		r.register = NewRegisterScreen(r.deps)
	case storyView:
		storyID, ok := payload.(int)
		if !ok {
			return nil
		}
		r.story = NewStoryScreen(r.deps, storyID)
	case readerView:
		target, ok := payload.(readerTarget)
		if !ok {
			return nil
		}
		r.reader = NewReaderScreen(r.deps, target)
	case editorView:
		storyID, ok := payload.(int)
		if !ok {
			return nil
		}
		r.editor = NewEditorScreen(r.deps, storyID)
	case storyFormView:
		var existing *data.Story
		if story, ok := payload.(data.Story); ok {
			existing = &story
		}
		r.storyForm = NewStoryFormScreen(r.deps, existing)
	}

	r.currentView = view
	return r.active().Init()
}

func (r *RootScreen) active() tea.Model {
	switch r.currentView {
	case searchView:
		return r.search
	case libraryView:
		return r.library
	case notificationsView:
		return r.feed
	case loginView:
		return r.login
	case registerView:
		return r.register
	case storyView:
		return r.story
	case readerView:
		return r.reader
	case editorView:
		return r.editor
	case storyFormView:
		return r.storyForm
	default:
		return r.home
	}
}

func (r *RootScreen) setActive(model tea.Model) {
	switch r.currentView {
	case searchView:
		r.search = model.(*SearchScreen)
	case libraryView:
		r.library = model.(*LibraryScreen)
	case notificationsView:
		r.feed = model.(*NotificationsScreen)
	case loginView:
		r.login = model.(*LoginScreen)
	case registerView:
		r.register = model.(*RegisterScreen)
	case storyView:
		r.story = model.(*StoryScreen)
	case readerView:
		r.reader = model.(*ReaderScreen)
	case editorView:
		r.editor = model.(*EditorScreen)
	case storyFormView:
		r.storyForm = model.(*StoryFormScreen)
	default:
		r.home = model.(*HomeScreen)
	}
}

func (r *RootScreen) View() string {
	tabs := r.renderTabs()
	content := r.active().View()
	if tabs == "" {
		return content
	}
	return fmt.Sprintf("%s\n\n%s", tabs, content)
}

func (r *RootScreen) renderTabs() string {
	if !r.isTabView() {
		return ""
	}

	labels := []string{"Home", "Search", "Library", "Notifications"}
	if count := r.deps.Store.Notifications.UnreadCount; count > 0 {
		labels[3] = fmt.Sprintf("Notifications (%d)", count)
	}

	rendered := make([]string, len(labels))
	for i, label := range labels {
		if tabViews[i] == r.currentView {
			rendered[i] = styles.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = styles.InactiveTabStyle.Render(label)
		}
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	status := ""
	if r.listener != nil {
		state := r.listener.State()
		if state != realtime.StateConnected {
			status = "  " + styles.MutedStyle.Render(state.String())
		}
	} else if !r.deps.Store.Auth.IsAuthenticated {
		status = "  " + styles.MutedStyle.Render("browsing anonymously, ctrl+l to sign in")
	}

	return tabs + status
}

type sessionVerifiedMsg struct {
	ok   bool
	user *data.User
}

type notificationMsg struct {
	notification data.Notification
	ok           bool
}

type unreadCountMsg struct {
	count int
	err   error
}

// waitForNotification blocks on the listener's channel and re-arms itself
// from the update loop after each delivery.
func waitForNotification(l *realtime.Listener) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-l.Events()
		return notificationMsg{notification: n, ok: ok}
	}
}

func (r *RootScreen) fetchUnreadCount() tea.Cmd {
	return func() tea.Msg {
		count, err := r.deps.API.CountUnreadNotifications(context.Background())
		return unreadCountMsg{count: count, err: err}
	}
}
