package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type ReaderScreen struct {
	deps   *Deps
	target readerTarget

	list *components.MessageList

	// message id to re-select once the page containing it loads
	resumeAt int

	width  int
	height int
}

func NewReaderScreen(deps *Deps, target readerTarget) *ReaderScreen {
	return &ReaderScreen{deps: deps, target: target, list: components.NewMessageList()}
}

func (s *ReaderScreen) Init() tea.Cmd {
	s.deps.Store.Episodes.StartSingle()
	s.deps.Store.Messages.ResetList()
	s.list.SetItems(nil)

	// resume from the locally cached position when it belongs to this
	// episode; with no cache, signed-in readers fall back to the server copy
	cached := false
	if progress, err := s.deps.Session.GetProgress(s.target.StoryID); err == nil && progress != nil {
		cached = true
		if progress.Episode == s.target.EpisodeID {
			s.resumeAt = progress.Message
		}
	}

	cmds := []tea.Cmd{s.fetchEpisode()}
	if !cached && s.deps.Store.Auth.IsAuthenticated {
		cmds = append(cmds, s.fetchProgress())
	}
	if s.deps.Store.Messages.StartList(false) {
		cmds = append(cmds, s.fetchMessages(false))
	}
	return tea.Batch(cmds...)
}

func (s *ReaderScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, switchTo("story", s.target.StoryID)
		case "down", "j", " ":
			if s.list.AtEnd() && s.deps.Store.Messages.HasMore {
				if s.deps.Store.Messages.StartList(true) {
					return s, s.fetchMessages(true)
				}
				return s, nil
			}
			s.list.Next()
			return s, s.saveProgress()
		case "up", "k":
			s.list.Prev()
			return s, s.saveProgress()
		}

	case messagesMsg:
		if msg.err != nil {
			s.deps.Store.Messages.FailList(msg.err)
			s.list.SetItems(nil)
			return s, nil
		}
		s.deps.Store.Messages.FinishList(msg.page, msg.loadMore)
		s.list.SetItems(s.deps.Store.Messages.Messages)
		if s.resumeAt != 0 {
			for i, m := range s.deps.Store.Messages.Messages {
				if m.ID == s.resumeAt {
					s.list.SelectedIndex = i
					s.resumeAt = 0
					break
				}
			}
		}

	case episodeMsg:
		if msg.err != nil {
			s.deps.Store.Episodes.FailSingle(msg.err)
			return s, nil
		}
		s.deps.Store.Episodes.FinishSingle(msg.episode)

	case progressMsg:
		if msg.err == nil && msg.progress != nil && msg.progress.Episode == s.target.EpisodeID {
			s.resumeAt = msg.progress.Message
			for i, m := range s.deps.Store.Messages.Messages {
				if m.ID == s.resumeAt {
					s.list.SelectedIndex = i
					s.resumeAt = 0
					break
				}
			}
		}

	case progressSavedMsg:
		// server-side failures are not surfaced; the local cache already holds
		// the position
	}

	return s, nil
}

func (s *ReaderScreen) View() string {
	title := "Reading"
	if episode := s.deps.Store.Episodes.Episode; episode != nil {
		title = episode.Title
	}
	header := styles.TitleStyle.Render(title)

	errLine := components.ErrorLine(s.deps.Store.Messages.Errors.List)

	var body string
	if s.deps.Store.Messages.Loading.List && !s.deps.Store.Messages.FirstLoaded {
		body = styles.LoadingStyle.Render("Loading messages...")
	} else {
		body = s.list.View()
		if s.deps.Store.Messages.HasMore {
			body += styles.MutedStyle.Render("↓ more")
		}
	}

	help := styles.HelpStyle.Render("space/j: next • k: previous • esc: back to story")

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errLine, body, help)
}

type messagesMsg struct {
	page     *data.Page[data.Message]
	loadMore bool
	err      error
}

type episodeMsg struct {
	episode *data.Episode
	err     error
}

type progressSavedMsg struct {
	err error
}

type progressMsg struct {
	progress *data.Progress
	err      error
}

func (s *ReaderScreen) fetchProgress() tea.Cmd {
	storyID := s.target.StoryID
	return func() tea.Msg {
		progress, err := s.deps.API.GetProgress(context.Background(), storyID)
		return progressMsg{progress: progress, err: err}
	}
}

func (s *ReaderScreen) fetchEpisode() tea.Cmd {
	return func() tea.Msg {
		episode, err := s.deps.API.GetEpisode(context.Background(), s.target.EpisodeID)
		return episodeMsg{episode: episode, err: err}
	}
}

func (s *ReaderScreen) fetchMessages(loadMore bool) tea.Cmd {
	nextURL := ""
	if loadMore {
		nextURL = s.deps.Store.Messages.NextLink
	}
	pageSize := s.deps.Config.Pages.Messages
	episodeID := s.target.EpisodeID
	return func() tea.Msg {
		page, err := s.deps.API.ListMessages(context.Background(), episodeID, pageSize, nextURL)
		return messagesMsg{page: page, loadMore: loadMore, err: err}
	}
}

// saveProgress caches the position locally and mirrors it to the server for
// signed-in readers.
func (s *ReaderScreen) saveProgress() tea.Cmd {
	selected := s.list.Selected()
	if selected == nil {
		return nil
	}
	progress := data.Progress{
		Story:   s.target.StoryID,
		Episode: s.target.EpisodeID,
		Message: selected.ID,
	}
	if err := s.deps.Session.SaveProgress(progress); err != nil {
		s.deps.Log.Warn().Err(err).Msg("saving local progress")
	}
	if !s.deps.Store.Auth.IsAuthenticated {
		return nil
	}
	return func() tea.Msg {
		err := s.deps.API.UpdateProgress(context.Background(), progress)
		return progressSavedMsg{err: err}
	}
}
