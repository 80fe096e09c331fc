package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
)

// orderings accepted by the listing endpoint, cycled with "o".
var orderings = []string{"", "-views", "-likes_count", "title"}

var orderingLabels = map[string]string{
	"":             "newest",
	"-views":       "most viewed",
	"-likes_count": "most liked",
	"title":        "title",
}

type SearchScreen struct {
	deps *Deps

	input    textinput.Model
	list     *components.StoryList
	ordering int
	searched bool

	width  int
	height int
}

func NewSearchScreen(deps *Deps) *SearchScreen {
	ti := textinput.New()
	ti.Placeholder = "Search stories..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	list := components.NewStoryList()
	list.EmptyText = "No results found"

	return &SearchScreen{deps: deps, input: ti, list: list}
}

func (s *SearchScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *SearchScreen) query() api.StoriesQuery {
	return api.StoriesQuery{
		Search:   s.input.Value(),
		Ordering: orderings[s.ordering],
		PageSize: s.deps.Config.Pages.Stories,
	}
}

func (s *SearchScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width
		s.list.Height = msg.Height - 8

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.input.Focused() {
				if s.input.Value() == "" {
					return s, nil
				}
				s.deps.Store.Stories.ResetList()
				s.list.SetItems(nil)
				s.searched = true
				if s.deps.Store.Stories.StartList(false) {
					return s, s.search(false)
				}
				return s, nil
			}
			if story := s.list.Selected(); story != nil {
				return s, switchTo("story", story.ID)
			}

		case "esc":
			if s.input.Focused() {
				s.input.Blur()
			} else {
				s.input.Focus()
				cmd = textinput.Blink
			}

		case "o":
			if !s.input.Focused() && s.searched {
				s.ordering = (s.ordering + 1) % len(orderings)
				s.deps.Store.Stories.ResetList()
				if s.deps.Store.Stories.StartList(false) {
					return s, s.search(false)
				}
			}

		case "up", "k":
			if !s.input.Focused() {
				s.list.Prev()
			}

		case "down", "j":
			if !s.input.Focused() {
				if s.list.AtEnd() && s.deps.Store.Stories.HasMore {
					if s.deps.Store.Stories.StartList(true) {
						return s, s.search(true)
					}
					return s, nil
				}
				s.list.Next()
			}
		}

	case storiesMsg:
		if msg.err != nil {
			s.deps.Store.Stories.FailList(msg.err)
			s.list.SetItems(nil)
			return s, nil
		}
		s.deps.Store.Stories.FinishList(msg.page, msg.loadMore)
		s.list.SetItems(s.deps.Store.Stories.Stories)
		if len(s.list.Items) > 0 {
			s.input.Blur()
		}
	}

	if s.input.Focused() {
		s.input, cmd = s.input.Update(msg)
	}

	return s, cmd
}

func (s *SearchScreen) View() string {
	header := styles.TitleStyle.Render("Search")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	order := styles.SubtitleStyle.Render("Order: " + orderingLabels[orderings[s.ordering]])

	errLine := components.ErrorLine(s.deps.Store.Stories.Errors.List)

	var results string
	switch {
	case s.deps.Store.Stories.Loading.List && !s.deps.Store.Stories.FirstLoaded:
		results = styles.LoadingStyle.Render("Searching...")
	case s.searched:
		results = styles.SubtitleStyle.Render(fmt.Sprintf("%d results", s.deps.Store.Stories.Total)) + "\n\n"
		results += s.list.View()
	}

	help := styles.HelpStyle.Render(
		"enter: search/open • esc: switch focus • o: ordering • ↑/↓: navigate • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s  %s\n\n%s%s\n\n%s", header, inputView, order, errLine, results, help)
}

func (s *SearchScreen) search(loadMore bool) tea.Cmd {
	q := s.query()
	if loadMore {
		q.NextURL = s.deps.Store.Stories.NextLink
	}
	return func() tea.Msg {
		page, err := s.deps.API.ListStories(context.Background(), q)
		return storiesMsg{page: page, loadMore: loadMore, err: err}
	}
}
