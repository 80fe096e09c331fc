package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

// StoryFormScreen creates a new story or edits an existing one. The image
// field takes a local file path and is uploaded as part of the form.
type StoryFormScreen struct {
	deps *Deps

	editID   int
	inputs   []textinput.Model
	focused  int
	category int

	saving bool
	errs   []string

	width  int
	height int
}

func NewStoryFormScreen(deps *Deps, existing *data.Story) *StoryFormScreen {
	placeholders := []string{"Title", "Description", "Cover image path (optional)"}
	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 500
		ti.Width = 60
		inputs[i] = ti
	}
	inputs[0].Focus()

	s := &StoryFormScreen{deps: deps, inputs: inputs}
	if existing != nil {
		s.editID = existing.ID
		s.inputs[0].SetValue(existing.Title)
		s.inputs[1].SetValue(existing.Description)
		for i, category := range deps.Store.Categories.Categories {
			if category.ID == existing.Category.ID {
				s.category = i
			}
		}
	}
	return s
}

func (s *StoryFormScreen) Init() tea.Cmd {
	if len(s.deps.Store.Categories.Categories) == 0 {
		s.deps.Store.Categories.StartList()
		return tea.Batch(textinput.Blink, s.fetchCategories())
	}
	return textinput.Blink
}

func (s *StoryFormScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, switchTo("library", nil)
		case "tab", "down":
			s.focusNext(1)
			return s, textinput.Blink
		case "shift+tab", "up":
			s.focusNext(-1)
			return s, textinput.Blink
		case "ctrl+t":
			if n := len(s.deps.Store.Categories.Categories); n > 0 {
				s.category = (s.category + 1) % n
			}
			return s, nil
		case "enter":
			return s.submit()
		}

	case categoriesMsg:
		if msg.err != nil {
			s.deps.Store.Categories.FailList(msg.err)
			return s, nil
		}
		s.deps.Store.Categories.FinishList(msg.categories)

	case storySavedFormMsg:
		s.saving = false
		if msg.err != nil {
			s.errs = api.ErrorMessages(msg.err)
			return s, nil
		}
		if msg.created {
			// a fresh story needs characters and episodes next
			return s, switchTo("editor", msg.story.ID)
		}
		return s, switchTo("story", msg.story.ID)
	}

	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *StoryFormScreen) focusNext(delta int) {
	s.inputs[s.focused].Blur()
	s.focused = (s.focused + delta + len(s.inputs)) % len(s.inputs)
	s.inputs[s.focused].Focus()
}

func (s *StoryFormScreen) submit() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(s.inputs[0].Value())
	description := strings.TrimSpace(s.inputs[1].Value())

	var errs []string
	if title == "" {
		errs = append(errs, "Title is required")
	}
	if description == "" {
		errs = append(errs, "Description is required")
	}
	categories := s.deps.Store.Categories.Categories
	if len(categories) == 0 {
		errs = append(errs, "Categories are still loading")
	}
	if len(errs) > 0 {
		s.errs = errs
		return s, nil
	}

	in := api.StoryInput{
		Title:       title,
		Description: description,
		Category:    categories[s.category].ID,
		ImagePath:   strings.TrimSpace(s.inputs[2].Value()),
	}

	s.saving = true
	s.errs = nil
	return s, s.save(in)
}

func (s *StoryFormScreen) View() string {
	header := "New story"
	if s.editID != 0 {
		header = "Edit story"
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n\n")

	for i, input := range s.inputs {
		inputStyle := styles.InputStyle
		if i == s.focused {
			inputStyle = styles.FocusedInputStyle
		}
		b.WriteString(inputStyle.Render(input.View()))
		b.WriteString("\n")
	}

	categoryName := "loading..."
	if categories := s.deps.Store.Categories.Categories; len(categories) > 0 {
		categoryName = categories[s.category].Name
	}
	b.WriteString(styles.SubtitleStyle.Render("Category: " + categoryName))
	b.WriteString("\n\n")

	for _, err := range s.errs {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}

	if s.saving {
		b.WriteString(styles.LoadingStyle.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("enter: save • tab: next field • ctrl+t: category • esc: cancel"))

	return b.String()
}

type storySavedFormMsg struct {
	story   *data.Story
	created bool
	err     error
}

func (s *StoryFormScreen) fetchCategories() tea.Cmd {
	return func() tea.Msg {
		categories, err := s.deps.API.ListCategories(context.Background())
		return categoriesMsg{categories: categories, err: err}
	}
}

func (s *StoryFormScreen) save(in api.StoryInput) tea.Cmd {
	id := s.editID
	return func() tea.Msg {
		ctx := context.Background()
		if id == 0 {
			story, err := s.deps.API.CreateStory(ctx, in)
			return storySavedFormMsg{story: story, created: true, err: err}
		}
		story, err := s.deps.API.UpdateStory(ctx, id, in)
		return storySavedFormMsg{story: story, err: err}
	}
}
