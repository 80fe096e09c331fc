package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

// readerTarget tells the reader which episode of which story to open.
type readerTarget struct {
	StoryID   int
	EpisodeID int
}

type StoryScreen struct {
	deps    *Deps
	storyID int
	savedID int

	episodeIndex int

	comments     *components.CommentList
	commentInput textinput.Model

	width  int
	height int
}

func NewStoryScreen(deps *Deps, storyID int) *StoryScreen {
	ti := textinput.New()
	ti.Placeholder = "Write a comment..."
	ti.CharLimit = 500
	ti.Width = 60

	return &StoryScreen{
		deps:         deps,
		storyID:      storyID,
		comments:     components.NewCommentList(),
		commentInput: ti,
	}
}

func (s *StoryScreen) Init() tea.Cmd {
	s.deps.Store.Stories.StartSingle()
	s.deps.Store.Episodes.StartList()
	s.deps.Store.Comments.ResetList()
	cmds := []tea.Cmd{s.fetchStory(), s.fetchEpisodes()}
	if s.deps.Store.Comments.StartList(false) {
		cmds = append(cmds, s.fetchComments(false))
	}
	return tea.Batch(cmds...)
}

func (s *StoryScreen) ownStory() bool {
	story := s.deps.Store.Stories.Story
	user := s.deps.Store.Auth.User
	return story != nil && user != nil && story.Author.ID == user.ID
}

func (s *StoryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.commentInput.Focused() {
			switch msg.String() {
			case "enter":
				text := strings.TrimSpace(s.commentInput.Value())
				if text == "" {
					return s, nil
				}
				s.deps.Store.Comments.StartCreate()
				s.commentInput.Reset()
				s.commentInput.Blur()
				return s, s.createComment(text)
			case "esc":
				s.commentInput.Blur()
				return s, nil
			}
			s.commentInput, cmd = s.commentInput.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "esc":
			return s, switchTo("home", nil)
		case "down", "j":
			if s.episodeIndex < len(s.deps.Store.Episodes.Episodes)-1 {
				s.episodeIndex++
			}
		case "up", "k":
			if s.episodeIndex > 0 {
				s.episodeIndex--
			}
		case "enter":
			episodes := s.deps.Store.Episodes.Episodes
			if s.episodeIndex < len(episodes) {
				target := readerTarget{StoryID: s.storyID, EpisodeID: episodes[s.episodeIndex].ID}
				return s, switchTo("reader", target)
			}
		case "l":
			if !s.deps.Store.Auth.IsAuthenticated {
				return s, switchTo("login", nil)
			}
			return s, s.toggleLike()
		case "s":
			if !s.deps.Store.Auth.IsAuthenticated {
				return s, switchTo("login", nil)
			}
			if story := s.deps.Store.Stories.Story; story != nil {
				return s, s.toggleSave(story.IsSaved)
			}
		case "e":
			if s.ownStory() {
				return s, switchTo("editor", s.storyID)
			}
		case "c":
			if !s.deps.Store.Auth.IsAuthenticated {
				return s, switchTo("login", nil)
			}
			s.commentInput.Focus()
			return s, textinput.Blink
		case "J":
			if s.comments.AtEnd() && s.deps.Store.Comments.HasMore {
				if s.deps.Store.Comments.StartList(true) {
					return s, s.fetchComments(true)
				}
				return s, nil
			}
			s.comments.Next()
		case "K":
			s.comments.Prev()
		case "L":
			if comment := s.comments.Selected(); comment != nil {
				if !s.deps.Store.Auth.IsAuthenticated {
					return s, switchTo("login", nil)
				}
				return s, s.toggleCommentLike(comment.ID)
			}
		case "D":
			if comment := s.comments.Selected(); comment != nil {
				user := s.deps.Store.Auth.User
				if user != nil && comment.Author.ID == user.ID {
					s.deps.Store.Comments.StartDelete()
					return s, s.deleteComment(comment.ID)
				}
			}
		}

	case storyMsg:
		if msg.err != nil {
			s.deps.Store.Stories.FailSingle(msg.err)
			return s, nil
		}
		s.deps.Store.Stories.FinishSingle(msg.story)

	case episodesMsg:
		if msg.err != nil {
			s.deps.Store.Episodes.FailList(msg.err)
			return s, nil
		}
		s.deps.Store.Episodes.FinishList(msg.episodes)

	case commentsMsg:
		if msg.err != nil {
			s.deps.Store.Comments.FailList(msg.err)
			return s, nil
		}
		s.deps.Store.Comments.FinishList(msg.page, msg.loadMore)
		s.comments.SetItems(s.deps.Store.Comments.Comments)

	case commentCreatedMsg:
		if msg.err != nil {
			s.deps.Store.Comments.FailCreate(msg.err)
			return s, nil
		}
		s.deps.Store.Comments.FinishCreate(msg.comment)
		s.deps.Store.Stories.ApplyCommentCount(s.storyID, 1)
		s.comments.SetItems(s.deps.Store.Comments.Comments)

	case commentDeletedMsg:
		if msg.err != nil {
			s.deps.Store.Comments.FailDelete(msg.err)
			return s, nil
		}
		s.deps.Store.Comments.FinishDelete(msg.id)
		s.deps.Store.Stories.ApplyCommentCount(s.storyID, -1)
		s.comments.SetItems(s.deps.Store.Comments.Comments)

	case commentLikedMsg:
		if msg.err == nil {
			s.deps.Store.Comments.ApplyLikeToggle(msg.id, msg.liked)
			s.comments.SetItems(s.deps.Store.Comments.Comments)
		}

	case storyLikedMsg:
		if msg.err == nil {
			s.deps.Store.Stories.ApplyLikeToggle(msg.id, msg.liked)
		}

	case storySavedMsg:
		if msg.err == nil {
			s.deps.Store.Stories.ApplySaved(msg.id, msg.saved)
			s.savedID = msg.savedID
		}
	}

	return s, nil
}

func (s *StoryScreen) View() string {
	story := s.deps.Store.Stories.Story
	if s.deps.Store.Stories.Loading.Single || story == nil {
		if s.deps.Store.Stories.Errors.Single != "" {
			return components.ErrorLine(s.deps.Store.Stories.Errors.Single)
		}
		return styles.LoadingStyle.Render("Loading story...")
	}

	var b strings.Builder

	markers := ""
	if story.IsLiked {
		markers += " ♥"
	}
	if story.IsSaved {
		markers += " ★"
	}
	b.WriteString(styles.TitleStyle.Render(story.Title + markers))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf(
		"by %s • %s • %d likes • %d comments • %d views",
		story.Author.Username, story.Category.Name,
		story.LikesCount, story.CommentsCount, story.Views,
	)))
	b.WriteString("\n\n")
	b.WriteString(styles.TextStyle.Render(story.Description))
	b.WriteString("\n\n")

	b.WriteString(styles.SubtitleStyle.Render("Episodes"))
	b.WriteString("\n")
	if s.deps.Store.Episodes.Loading.List {
		b.WriteString(styles.LoadingStyle.Render("Loading episodes..."))
		b.WriteString("\n")
	} else if len(s.deps.Store.Episodes.Episodes) == 0 {
		b.WriteString(styles.MutedStyle.Render("No episodes yet"))
		b.WriteString("\n")
	} else {
		for i, episode := range s.deps.Store.Episodes.Episodes {
			line := fmt.Sprintf("%d. %s", i+1, episode.Title)
			if i == s.episodeIndex {
				line = styles.TitleStyle.Render("> " + line)
			} else {
				line = styles.TextStyle.Render("  " + line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Comments (%d)", s.deps.Store.Comments.Total)))
	b.WriteString("\n")
	b.WriteString(components.ErrorLine(s.deps.Store.Comments.Errors.List))
	for _, err := range s.deps.Store.Comments.Errors.Create {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}
	b.WriteString(s.comments.View())
	if s.deps.Store.Comments.HasMore {
		b.WriteString(styles.MutedStyle.Render("↓ more comments"))
		b.WriteString("\n")
	}

	if s.commentInput.Focused() {
		b.WriteString("\n")
		b.WriteString(styles.FocusedInputStyle.Render(s.commentInput.View()))
		b.WriteString("\n")
	}

	helpText := "enter: read • l: like • s: save • c: comment • J/K: comments • L: like comment • esc: back"
	if s.ownStory() {
		helpText = "e: edit • D: delete comment • " + helpText
	}
	b.WriteString(styles.HelpStyle.Render(helpText))

	return b.String()
}

type storyMsg struct {
	story *data.Story
	err   error
}

type episodesMsg struct {
	episodes []data.Episode
	err      error
}

type commentsMsg struct {
	page     *data.Page[data.Comment]
	loadMore bool
	err      error
}

type commentCreatedMsg struct {
	comment data.Comment
	err     error
}

type commentDeletedMsg struct {
	id  int
	err error
}

type commentLikedMsg struct {
	id    int
	liked bool
	err   error
}

type storySavedMsg struct {
	id      int
	saved   bool
	savedID int
	err     error
}

func (s *StoryScreen) fetchStory() tea.Cmd {
	return func() tea.Msg {
		story, err := s.deps.API.GetStory(context.Background(), s.storyID)
		return storyMsg{story: story, err: err}
	}
}

func (s *StoryScreen) fetchEpisodes() tea.Cmd {
	return func() tea.Msg {
		episodes, err := s.deps.API.ListEpisodes(context.Background(), s.storyID)
		return episodesMsg{episodes: episodes, err: err}
	}
}

func (s *StoryScreen) fetchComments(loadMore bool) tea.Cmd {
	nextURL := ""
	if loadMore {
		nextURL = s.deps.Store.Comments.NextLink
	}
	return func() tea.Msg {
		page, err := s.deps.API.ListComments(context.Background(), s.storyID, nextURL)
		return commentsMsg{page: page, loadMore: loadMore, err: err}
	}
}

func (s *StoryScreen) createComment(text string) tea.Cmd {
	return func() tea.Msg {
		comment, err := s.deps.API.CreateComment(context.Background(), s.storyID, text)
		if err != nil {
			return commentCreatedMsg{err: err}
		}
		return commentCreatedMsg{comment: *comment}
	}
}

func (s *StoryScreen) deleteComment(id int) tea.Cmd {
	return func() tea.Msg {
		err := s.deps.API.DeleteComment(context.Background(), id)
		return commentDeletedMsg{id: id, err: err}
	}
}

func (s *StoryScreen) toggleCommentLike(id int) tea.Cmd {
	return func() tea.Msg {
		liked, err := s.deps.API.ToggleCommentLike(context.Background(), id)
		return commentLikedMsg{id: id, liked: liked, err: err}
	}
}

func (s *StoryScreen) toggleLike() tea.Cmd {
	id := s.storyID
	return func() tea.Msg {
		liked, err := s.deps.API.ToggleStoryLike(context.Background(), id)
		return storyLikedMsg{id: id, liked: liked, err: err}
	}
}

func (s *StoryScreen) toggleSave(saved bool) tea.Cmd {
	id := s.storyID
	savedID := s.savedID
	return func() tea.Msg {
		ctx := context.Background()
		if saved {
			// Prefer the join resource id when this session created it;
			// stories saved elsewhere only carry the story id.
			var err error
			if savedID != 0 {
				err = s.deps.API.UnsaveStory(ctx, savedID)
			} else {
				err = s.deps.API.UnsaveByStory(ctx, id)
			}
			return storySavedMsg{id: id, saved: false, err: err}
		}
		savedID, err := s.deps.API.SaveStory(ctx, id)
		return storySavedMsg{id: id, saved: true, savedID: savedID, err: err}
	}
}
