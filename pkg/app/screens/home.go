package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type HomeScreen struct {
	deps *Deps

	list     *components.StoryList
	category int // index into categories, 0 means all

	width  int
	height int
}

func NewHomeScreen(deps *Deps) *HomeScreen {
	list := components.NewStoryList()
	list.EmptyText = "No stories yet"
	return &HomeScreen{deps: deps, list: list}
}

func (s *HomeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if len(s.deps.Store.Categories.Categories) == 0 {
		s.deps.Store.Categories.StartList()
		cmds = append(cmds, s.fetchCategories())
	}
	if s.deps.Store.Stories.StartList(false) {
		cmds = append(cmds, s.fetchStories(false))
	}
	return tea.Batch(cmds...)
}

func (s *HomeScreen) query() api.StoriesQuery {
	q := api.StoriesQuery{PageSize: s.deps.Config.Pages.Stories}
	if s.category > 0 && s.category <= len(s.deps.Store.Categories.Categories) {
		q.Category = s.deps.Store.Categories.Categories[s.category-1].Name
	}
	return q
}

func (s *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width
		s.list.Height = msg.Height - 6

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j":
			if s.list.AtEnd() && s.deps.Store.Stories.HasMore {
				if s.deps.Store.Stories.StartList(true) {
					return s, s.fetchStories(true)
				}
				return s, nil
			}
			s.list.Next()
		case "up", "k":
			s.list.Prev()
		case "c":
			s.category = (s.category + 1) % (len(s.deps.Store.Categories.Categories) + 1)
			s.deps.Store.Stories.ResetList()
			s.list.SetItems(nil)
			if s.deps.Store.Stories.StartList(false) {
				return s, s.fetchStories(false)
			}
		case "r":
			return s, s.fetchRandom()
		case "l":
			if story := s.list.Selected(); story != nil {
				if !s.deps.Store.Auth.IsAuthenticated {
					return s, switchTo("login", nil)
				}
				return s, s.toggleLike(story.ID)
			}
		case "enter":
			if story := s.list.Selected(); story != nil {
				return s, switchTo("story", story.ID)
			}
		}

	case categoriesMsg:
		if msg.err != nil {
			s.deps.Store.Categories.FailList(msg.err)
			return s, nil
		}
		s.deps.Store.Categories.FinishList(msg.categories)

	case storiesMsg:
		if msg.err != nil {
			s.deps.Store.Stories.FailList(msg.err)
			s.list.SetItems(nil)
			return s, nil
		}
		s.deps.Store.Stories.FinishList(msg.page, msg.loadMore)
		s.list.SetItems(s.deps.Store.Stories.Stories)

	case storyLikedMsg:
		if msg.err == nil {
			s.deps.Store.Stories.ApplyLikeToggle(msg.id, msg.liked)
			s.list.SetItems(s.deps.Store.Stories.Stories)
		}

	case randomStoryMsg:
		if msg.err == nil && msg.story != nil {
			s.deps.Store.Stories.FinishSingle(msg.story)
			return s, switchTo("story", msg.story.ID)
		}
	}

	return s, nil
}

func (s *HomeScreen) View() string {
	header := styles.TitleStyle.Render("Stories")

	filter := "All"
	if s.category > 0 && s.category <= len(s.deps.Store.Categories.Categories) {
		filter = s.deps.Store.Categories.Categories[s.category-1].Name
	}
	subtitle := styles.SubtitleStyle.Render(fmt.Sprintf("Category: %s", filter))

	errLine := components.ErrorLine(s.deps.Store.Stories.Errors.List)

	var body string
	if s.deps.Store.Stories.Loading.List && !s.deps.Store.Stories.FirstLoaded {
		body = styles.LoadingStyle.Render("Loading stories...")
	} else {
		body = s.list.View()
		if s.deps.Store.Stories.HasMore {
			body += styles.MutedStyle.Render("↓ more")
		}
	}

	help := styles.HelpStyle.Render(
		"enter: open • l: like • r: random • c: category • ↑/↓: navigate • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s  %s\n\n%s%s\n%s", header, subtitle, errLine, body, help)
}

type categoriesMsg struct {
	categories []data.Category
	err        error
}

type storiesMsg struct {
	page     *data.Page[data.Story]
	loadMore bool
	err      error
}

type storyLikedMsg struct {
	id    int
	liked bool
	err   error
}

type randomStoryMsg struct {
	story *data.Story
	err   error
}

func (s *HomeScreen) fetchCategories() tea.Cmd {
	return func() tea.Msg {
		categories, err := s.deps.API.ListCategories(context.Background())
		return categoriesMsg{categories: categories, err: err}
	}
}

func (s *HomeScreen) fetchStories(loadMore bool) tea.Cmd {
	q := s.query()
	if loadMore {
		q.NextURL = s.deps.Store.Stories.NextLink
	}
	return func() tea.Msg {
		page, err := s.deps.API.ListStories(context.Background(), q)
		return storiesMsg{page: page, loadMore: loadMore, err: err}
	}
}

func (s *HomeScreen) toggleLike(id int) tea.Cmd {
	return func() tea.Msg {
		liked, err := s.deps.API.ToggleStoryLike(context.Background(), id)
		return storyLikedMsg{id: id, liked: liked, err: err}
	}
}

func (s *HomeScreen) fetchRandom() tea.Cmd {
	return func() tea.Msg {
		story, err := s.deps.API.RandomStory(context.Background())
		return randomStoryMsg{story: story, err: err}
	}
}
