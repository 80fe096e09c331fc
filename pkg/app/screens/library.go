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

type libraryMode int

const (
	savedMode libraryMode = iota
	myMode
	likedMode
)

func (m libraryMode) label() string {
	switch m {
	case myMode:
		return "My stories"
	case likedMode:
		return "Liked"
	default:
		return "Saved"
	}
}

type LibraryScreen struct {
	deps *Deps

	list *components.StoryList
	mode libraryMode

	width  int
	height int
}

func NewLibraryScreen(deps *Deps) *LibraryScreen {
	list := components.NewStoryList()
	list.EmptyText = "Nothing here yet"
	return &LibraryScreen{deps: deps, list: list}
}

func (s *LibraryScreen) Init() tea.Cmd {
	s.deps.Store.Stories.ResetList()
	s.list.SetItems(nil)
	if s.deps.Store.Stories.StartList(false) {
		return s.fetch(false)
	}
	return nil
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
					return s, s.fetch(true)
				}
				return s, nil
			}
			s.list.Next()
		case "up", "k":
			s.list.Prev()
		case "m":
			s.mode = (s.mode + 1) % 3
			return s, s.Init()
		case "u":
			if s.mode == savedMode {
				if story := s.list.Selected(); story != nil {
					return s, s.unsave(story.ID)
				}
			}
		case "n":
			if s.mode == myMode {
				return s, switchTo("storyform", nil)
			}
		case "e":
			if s.mode == myMode {
				if story := s.list.Selected(); story != nil {
					return s, switchTo("storyform", *story)
				}
			}
		case "enter":
			if story := s.list.Selected(); story != nil {
				return s, switchTo("story", story.ID)
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

	case storyUnsavedMsg:
		if msg.err != nil {
			return s, nil
		}
		// drop it from the saved listing in place
		kept := make([]data.Story, 0, len(s.deps.Store.Stories.Stories))
		for _, story := range s.deps.Store.Stories.Stories {
			if story.ID != msg.id {
				kept = append(kept, story)
			}
		}
		s.deps.Store.Stories.Stories = kept
		s.list.SetItems(kept)
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	header := styles.TitleStyle.Render("Library")
	subtitle := styles.SubtitleStyle.Render(s.mode.label())

	errLine := components.ErrorLine(s.deps.Store.Stories.Errors.List)

	var body string
	if s.deps.Store.Stories.Loading.List && !s.deps.Store.Stories.FirstLoaded {
		body = styles.LoadingStyle.Render("Loading...")
	} else {
		body = s.list.View()
		if s.deps.Store.Stories.HasMore {
			body += styles.MutedStyle.Render("↓ more")
		}
	}

	helpText := "enter: open • m: switch list • ↑/↓: navigate • tab: switch view • q: quit"
	switch s.mode {
	case savedMode:
		helpText = "u: unsave • " + helpText
	case myMode:
		helpText = "n: new story • e: edit • " + helpText
	}
	help := styles.HelpStyle.Render(helpText)

	return fmt.Sprintf("%s  %s\n\n%s%s\n%s", header, subtitle, errLine, body, help)
}

type storyUnsavedMsg struct {
	id  int
	err error
}

func (s *LibraryScreen) fetch(loadMore bool) tea.Cmd {
	mode := s.mode
	q := api.StoriesQuery{PageSize: s.deps.Config.Pages.Stories}
	if loadMore {
		q.NextURL = s.deps.Store.Stories.NextLink
	}
	return func() tea.Msg {
		ctx := context.Background()
		var page *data.Page[data.Story]
		var err error
		switch mode {
		case myMode:
			page, err = s.deps.API.MyStories(ctx, q)
		case likedMode:
			page, err = s.deps.API.LikedStories(ctx, q)
		default:
			page, err = s.deps.API.SavedStories(ctx, q)
		}
		return storiesMsg{page: page, loadMore: loadMore, err: err}
	}
}

func (s *LibraryScreen) unsave(storyID int) tea.Cmd {
	return func() tea.Msg {
		err := s.deps.API.UnsaveByStory(context.Background(), storyID)
		return storyUnsavedMsg{id: storyID, err: err}
	}
}
