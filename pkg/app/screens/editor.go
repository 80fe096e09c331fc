package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/components"
	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type editorMode int

const (
	timelineMode editorMode = iota
	composeMode
	charactersMode
	characterFormMode
	episodeFormMode
)

// characterPalette is offered round-robin when creating characters.
var characterPalette = []string{"#FF6B9D", "#82AAFF", "#C3E88D", "#FFCB6B", "#C792EA", "#F07178"}

// messageTypes in the order the compose form cycles through them.
var messageTypes = []string{
	data.MessageText,
	data.MessageStatus,
	data.MessageImage,
	data.MessageVideo,
	data.MessageAudio,
}

type EditorScreen struct {
	deps    *Deps
	storyID int

	mode         editorMode
	episodeIndex int
	list         *components.MessageList

	// compose form state; editID is zero when creating
	composeInput textinput.Model
	composeType  int
	composeChar  int // index into characters, len(characters) means none
	editID       int
	editOrder    float64

	// character form state
	nameInput      textinput.Model
	colorIndex     int
	characterIndex int
	editCharID     int

	episodeInput textinput.Model

	width  int
	height int
}

func NewEditorScreen(deps *Deps, storyID int) *EditorScreen {
	compose := textinput.New()
	compose.Placeholder = "Message content or file path..."
	compose.CharLimit = 500
	compose.Width = 60

	name := textinput.New()
	name.Placeholder = "Character name"
	name.CharLimit = 50
	name.Width = 30

	episode := textinput.New()
	episode.Placeholder = "Episode title"
	episode.CharLimit = 100
	episode.Width = 40

	list := components.NewMessageList()
	list.Editing = true

	return &EditorScreen{
		deps:         deps,
		storyID:      storyID,
		list:         list,
		composeInput: compose,
		nameInput:    name,
		episodeInput: episode,
	}
}

func (s *EditorScreen) Init() tea.Cmd {
	s.deps.Store.Episodes.StartList()
	s.deps.Store.Characters.StartList()
	s.deps.Store.Messages.ResetList()
	s.list.SetItems(nil)
	return tea.Batch(s.fetchEpisodes(), s.fetchCharacters())
}

func (s *EditorScreen) currentEpisode() *data.Episode {
	episodes := s.deps.Store.Episodes.Episodes
	if len(episodes) == 0 || s.episodeIndex >= len(episodes) {
		return nil
	}
	return &episodes[s.episodeIndex]
}

func (s *EditorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width
		return s, nil

	case tea.KeyMsg:
		switch s.mode {
		case composeMode:
			return s.updateCompose(msg)
		case charactersMode:
			return s.updateCharacters(msg)
		case characterFormMode:
			return s.updateCharacterForm(msg)
		case episodeFormMode:
			return s.updateEpisodeForm(msg)
		default:
			return s.updateTimeline(msg)
		}

	case episodesMsg:
		if msg.err != nil {
			s.deps.Store.Episodes.FailList(msg.err)
			return s, nil
		}
		s.deps.Store.Episodes.FinishList(msg.episodes)
		if episode := s.currentEpisode(); episode != nil {
			if s.deps.Store.Messages.StartList(false) {
				return s, s.fetchMessages(episode.ID, false)
			}
		}

	case charactersMsg:
		if msg.err != nil {
			s.deps.Store.Characters.FailList(msg.err)
			return s, nil
		}
		s.deps.Store.Characters.FinishList(msg.characters)

	case messagesMsg:
		if msg.err != nil {
			s.deps.Store.Messages.FailList(msg.err)
			s.list.SetItems(nil)
			return s, nil
		}
		s.deps.Store.Messages.FinishList(msg.page, msg.loadMore)
		s.list.SetItems(s.deps.Store.Messages.Messages)

	case messageSavedMsg:
		if msg.err != nil {
			if msg.created {
				s.deps.Store.Messages.FailCreate(msg.err)
			} else {
				s.deps.Store.Messages.FailUpdate(msg.err)
			}
			return s, nil
		}
		if msg.created {
			s.deps.Store.Messages.FinishCreate(msg.message)
		} else {
			s.deps.Store.Messages.FinishUpdate(msg.message)
		}
		s.list.SetItems(s.deps.Store.Messages.Messages)

	case messageDeletedMsg:
		if msg.err != nil {
			s.deps.Store.Messages.FailDelete(msg.err)
			return s, nil
		}
		s.deps.Store.Messages.FinishDelete(msg.id)
		s.list.SetItems(s.deps.Store.Messages.Messages)
		if s.list.SelectedIndex >= len(s.list.Items) && s.list.SelectedIndex > 0 {
			s.list.SelectedIndex--
		}

	case messageMovedMsg:
		if msg.err != nil {
			s.deps.Store.Messages.FailReorder(msg.err)
			return s, nil
		}
		s.deps.Store.Messages.CommitMove(msg.from, msg.to, msg.order)
		s.list.SetItems(s.deps.Store.Messages.Messages)
		s.list.SelectedIndex = msg.to

	case characterSavedMsg:
		if msg.err != nil {
			if msg.created {
				s.deps.Store.Characters.FailCreate(msg.err)
			} else {
				s.deps.Store.Characters.FailUpdate(msg.err)
			}
			return s, nil
		}
		if msg.created {
			s.deps.Store.Characters.FinishCreate(msg.character)
		} else {
			s.deps.Store.Characters.FinishUpdate(msg.character)
		}
		s.mode = charactersMode

	case characterDeletedMsg:
		if msg.err != nil {
			s.deps.Store.Characters.FailDelete(msg.err)
			return s, nil
		}
		s.deps.Store.Characters.FinishDelete(msg.id)
		if s.characterIndex >= len(s.deps.Store.Characters.Characters) && s.characterIndex > 0 {
			s.characterIndex--
		}

	case episodeCreatedMsg:
		if msg.err != nil {
			s.deps.Store.Episodes.FailCreate(msg.err)
			return s, nil
		}
		s.deps.Store.Episodes.FinishCreate(msg.episode)
		s.mode = timelineMode
		s.episodeIndex = len(s.deps.Store.Episodes.Episodes) - 1
		return s, s.switchEpisode()
	}

	return s, nil
}

func (s *EditorScreen) updateTimeline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, switchTo("story", s.storyID)
	case "down", "j":
		if s.list.AtEnd() && s.deps.Store.Messages.HasMore {
			if episode := s.currentEpisode(); episode != nil {
				if s.deps.Store.Messages.StartList(true) {
					return s, s.fetchMessages(episode.ID, true)
				}
			}
			return s, nil
		}
		s.list.Next()
	case "up", "k":
		s.list.Prev()
	case "]":
		if s.episodeIndex < len(s.deps.Store.Episodes.Episodes)-1 {
			s.episodeIndex++
			return s, s.switchEpisode()
		}
	case "[":
		if s.episodeIndex > 0 {
			s.episodeIndex--
			return s, s.switchEpisode()
		}
	case "J":
		return s, s.move(s.list.SelectedIndex, s.list.SelectedIndex+1)
	case "K":
		return s, s.move(s.list.SelectedIndex, s.list.SelectedIndex-1)
	case "a":
		if s.currentEpisode() == nil {
			return s, nil
		}
		s.enterCompose(nil)
		return s, textinput.Blink
	case "e":
		if selected := s.list.Selected(); selected != nil {
			s.enterCompose(selected)
			return s, textinput.Blink
		}
	case "d":
		if selected := s.list.Selected(); selected != nil {
			s.deps.Store.Messages.StartDelete()
			return s, s.deleteMessage(selected.ID)
		}
	case "C":
		s.mode = charactersMode
	case "N":
		s.episodeInput.Reset()
		s.episodeInput.Focus()
		s.mode = episodeFormMode
		return s, textinput.Blink
	}
	return s, nil
}

// move plans the fractional order for the splice, asks the server to apply
// it, and only commits the local splice once the server confirms.
func (s *EditorScreen) move(from, to int) tea.Cmd {
	order, ok := s.deps.Store.Messages.PlanMove(from, to)
	if !ok {
		return nil
	}
	messages := s.deps.Store.Messages.Messages
	id := messages[from].ID
	s.deps.Store.Messages.StartReorder()
	return func() tea.Msg {
		_, err := s.deps.API.UpdateMessageOrder(context.Background(), id, order)
		return messageMovedMsg{from: from, to: to, order: order, err: err}
	}
}

func (s *EditorScreen) enterCompose(existing *data.Message) {
	s.composeInput.Reset()
	s.composeType = 0
	s.composeChar = len(s.deps.Store.Characters.Characters)
	s.editID = 0

	if existing != nil {
		s.editID = existing.ID
		s.editOrder = existing.Order
		s.composeInput.SetValue(existing.Content())
		for i, t := range messageTypes {
			if t == existing.MessageType {
				s.composeType = i
			}
		}
		if existing.Character != nil {
			for i, c := range s.deps.Store.Characters.Characters {
				if c.ID == existing.Character.ID {
					s.composeChar = i
				}
			}
		}
	} else if len(s.deps.Store.Characters.Characters) > 0 {
		s.composeChar = 0
	}

	s.composeInput.Focus()
	s.mode = composeMode
}

func (s *EditorScreen) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.composeInput.Blur()
		s.mode = timelineMode
		return s, nil
	case "ctrl+t":
		s.composeType = (s.composeType + 1) % len(messageTypes)
		return s, nil
	case "ctrl+n":
		s.composeChar = (s.composeChar + 1) % (len(s.deps.Store.Characters.Characters) + 1)
		return s, nil
	case "enter":
		return s.submitCompose()
	}

	var cmd tea.Cmd
	s.composeInput, cmd = s.composeInput.Update(msg)
	return s, cmd
}

func (s *EditorScreen) submitCompose() (tea.Model, tea.Cmd) {
	episode := s.currentEpisode()
	if episode == nil {
		return s, nil
	}

	content := strings.TrimSpace(s.composeInput.Value())
	if content == "" {
		return s, nil
	}

	in := api.MessageInput{
		Episode: episode.ID,
		Type:    messageTypes[s.composeType],
		Order:   s.deps.Store.Messages.NextOrder(),
	}
	if s.editID != 0 {
		in.Order = s.editOrder
	}
	if s.composeChar < len(s.deps.Store.Characters.Characters) {
		id := s.deps.Store.Characters.Characters[s.composeChar].ID
		in.Character = &id
	}
	switch in.Type {
	case data.MessageStatus:
		in.Character = nil
		in.Status = content
	case data.MessageImage:
		in.ImagePath = content
	case data.MessageVideo:
		in.VideoPath = content
	case data.MessageAudio:
		in.AudioPath = content
	default:
		in.Text = content
	}

	if err := in.Validate(); err != nil {
		s.deps.Store.Messages.FailCreate(err)
		return s, nil
	}

	created := s.editID == 0
	if created {
		s.deps.Store.Messages.StartCreate()
	} else {
		s.deps.Store.Messages.StartUpdate()
	}
	s.composeInput.Blur()
	s.mode = timelineMode
	return s, s.saveMessage(s.editID, in, created)
}

func (s *EditorScreen) updateCharacters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	characters := s.deps.Store.Characters.Characters

	switch msg.String() {
	case "esc":
		s.mode = timelineMode
	case "down", "j":
		if s.characterIndex < len(characters)-1 {
			s.characterIndex++
		}
	case "up", "k":
		if s.characterIndex > 0 {
			s.characterIndex--
		}
	case "a":
		s.editCharID = 0
		s.nameInput.Reset()
		s.colorIndex = len(characters) % len(characterPalette)
		s.nameInput.Focus()
		s.mode = characterFormMode
		return s, textinput.Blink
	case "e":
		if s.characterIndex < len(characters) {
			character := characters[s.characterIndex]
			s.editCharID = character.ID
			s.nameInput.SetValue(character.Name)
			s.colorIndex = 0
			for i, color := range characterPalette {
				if color == character.Color {
					s.colorIndex = i
				}
			}
			s.nameInput.Focus()
			s.mode = characterFormMode
			return s, textinput.Blink
		}
	case "d":
		if s.characterIndex < len(characters) {
			s.deps.Store.Characters.StartDelete()
			return s, s.deleteCharacter(characters[s.characterIndex].ID)
		}
	}
	return s, nil
}

func (s *EditorScreen) updateCharacterForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.nameInput.Blur()
		s.mode = charactersMode
		return s, nil
	case "ctrl+t":
		s.colorIndex = (s.colorIndex + 1) % len(characterPalette)
		return s, nil
	case "enter":
		name := strings.TrimSpace(s.nameInput.Value())
		if name == "" {
			return s, nil
		}
		color := characterPalette[s.colorIndex]
		created := s.editCharID == 0
		if created {
			s.deps.Store.Characters.StartCreate()
		} else {
			s.deps.Store.Characters.StartUpdate()
		}
		s.nameInput.Blur()
		return s, s.saveCharacter(s.editCharID, name, color, created)
	}

	var cmd tea.Cmd
	s.nameInput, cmd = s.nameInput.Update(msg)
	return s, cmd
}

func (s *EditorScreen) updateEpisodeForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.episodeInput.Blur()
		s.mode = timelineMode
		return s, nil
	case "enter":
		title := strings.TrimSpace(s.episodeInput.Value())
		if title == "" {
			return s, nil
		}
		s.deps.Store.Episodes.StartCreate()
		s.episodeInput.Blur()
		return s, s.createEpisode(title)
	}

	var cmd tea.Cmd
	s.episodeInput, cmd = s.episodeInput.Update(msg)
	return s, cmd
}

func (s *EditorScreen) switchEpisode() tea.Cmd {
	s.deps.Store.Messages.ResetList()
	s.list.SetItems(nil)
	s.list.SelectedIndex = 0
	episode := s.currentEpisode()
	if episode == nil {
		return nil
	}
	if s.deps.Store.Messages.StartList(false) {
		return s.fetchMessages(episode.ID, false)
	}
	return nil
}

func (s *EditorScreen) View() string {
	switch s.mode {
	case composeMode:
		return s.viewCompose()
	case charactersMode, characterFormMode:
		return s.viewCharacters()
	case episodeFormMode:
		return s.viewEpisodeForm()
	}
	return s.viewTimeline()
}

func (s *EditorScreen) viewTimeline() string {
	var b strings.Builder

	episodeTitle := "no episodes"
	if episode := s.currentEpisode(); episode != nil {
		episodeTitle = fmt.Sprintf("%s (%d/%d)", episode.Title, s.episodeIndex+1, len(s.deps.Store.Episodes.Episodes))
	}
	b.WriteString(styles.TitleStyle.Render("Editor"))
	b.WriteString("  ")
	b.WriteString(styles.SubtitleStyle.Render(episodeTitle))
	b.WriteString("\n\n")

	b.WriteString(components.ErrorLine(s.deps.Store.Messages.Errors.List))
	for _, err := range s.deps.Store.Messages.Errors.Create {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}
	for _, err := range s.deps.Store.Messages.Errors.Update {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}

	if s.deps.Store.Messages.Loading.List && !s.deps.Store.Messages.FirstLoaded {
		b.WriteString(styles.LoadingStyle.Render("Loading timeline..."))
		b.WriteString("\n")
	} else {
		b.WriteString(s.list.View())
		if s.deps.Store.Messages.HasMore {
			b.WriteString(styles.MutedStyle.Render("↓ more"))
			b.WriteString("\n")
		}
	}

	b.WriteString(styles.HelpStyle.Render(
		"a: add • e: edit • d: delete • J/K: move • [/]: episode • N: new episode • C: characters • esc: back",
	))

	return b.String()
}

func (s *EditorScreen) viewCompose() string {
	var b strings.Builder

	action := "New message"
	if s.editID != 0 {
		action = "Edit message"
	}
	b.WriteString(styles.TitleStyle.Render(action))
	b.WriteString("\n\n")

	b.WriteString(styles.SubtitleStyle.Render("Type: " + messageTypes[s.composeType]))
	b.WriteString("  ")

	speaker := "none"
	if s.composeChar < len(s.deps.Store.Characters.Characters) {
		speaker = s.deps.Store.Characters.Characters[s.composeChar].Name
	}
	b.WriteString(styles.SubtitleStyle.Render("Character: " + speaker))
	b.WriteString("\n\n")

	b.WriteString(styles.FocusedInputStyle.Render(s.composeInput.View()))
	b.WriteString("\n")

	for _, err := range s.deps.Store.Messages.Errors.Create {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}

	b.WriteString(styles.HelpStyle.Render("enter: save • ctrl+t: type • ctrl+n: character • esc: cancel"))

	return b.String()
}

func (s *EditorScreen) viewCharacters() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Characters"))
	b.WriteString("\n\n")

	characters := s.deps.Store.Characters.Characters
	if len(characters) == 0 {
		b.WriteString(styles.MutedStyle.Render("No characters yet"))
		b.WriteString("\n")
	}
	for i, character := range characters {
		line := styles.CharacterStyle(character.Color).Render(character.Name)
		if i == s.characterIndex && s.mode == charactersMode {
			line = "> " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, err := range s.deps.Store.Characters.Errors.Create {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}
	if s.deps.Store.Characters.Errors.Delete != "" {
		b.WriteString(styles.ErrorStyle.Render("✗ " + s.deps.Store.Characters.Errors.Delete))
		b.WriteString("\n")
	}

	if s.mode == characterFormMode {
		b.WriteString("\n")
		b.WriteString(styles.FocusedInputStyle.Render(s.nameInput.View()))
		b.WriteString("  ")
		b.WriteString(styles.CharacterStyle(characterPalette[s.colorIndex]).Render("██"))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("enter: save • ctrl+t: color • esc: cancel"))
	} else {
		b.WriteString(styles.HelpStyle.Render("a: add • e: edit • d: delete • esc: back to timeline"))
	}

	return b.String()
}

func (s *EditorScreen) viewEpisodeForm() string {
	header := styles.TitleStyle.Render("New episode")
	field := styles.FocusedInputStyle.Render(s.episodeInput.View())
	help := styles.HelpStyle.Render("enter: create • esc: cancel")
	return fmt.Sprintf("%s\n\n%s\n\n%s", header, field, help)
}

type charactersMsg struct {
	characters []data.Character
	err        error
}

type characterSavedMsg struct {
	character data.Character
	created   bool
	err       error
}

type characterDeletedMsg struct {
	id  int
	err error
}

type messageSavedMsg struct {
	message data.Message
	created bool
	err     error
}

type messageDeletedMsg struct {
	id  int
	err error
}

type messageMovedMsg struct {
	from  int
	to    int
	order float64
	err   error
}

type episodeCreatedMsg struct {
	episode data.Episode
	err     error
}

func (s *EditorScreen) fetchEpisodes() tea.Cmd {
	return func() tea.Msg {
		episodes, err := s.deps.API.ListEpisodes(context.Background(), s.storyID)
		return episodesMsg{episodes: episodes, err: err}
	}
}

func (s *EditorScreen) fetchCharacters() tea.Cmd {
	return func() tea.Msg {
		characters, err := s.deps.API.ListCharacters(context.Background(), s.storyID)
		return charactersMsg{characters: characters, err: err}
	}
}

func (s *EditorScreen) fetchMessages(episodeID int, loadMore bool) tea.Cmd {
	nextURL := ""
	if loadMore {
		nextURL = s.deps.Store.Messages.NextLink
	}
	pageSize := s.deps.Config.Pages.Messages
	return func() tea.Msg {
		page, err := s.deps.API.ListMessages(context.Background(), episodeID, pageSize, nextURL)
		return messagesMsg{page: page, loadMore: loadMore, err: err}
	}
}

func (s *EditorScreen) saveMessage(id int, in api.MessageInput, created bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var message *data.Message
		var err error
		if created {
			message, err = s.deps.API.CreateMessage(ctx, in)
		} else {
			message, err = s.deps.API.UpdateMessage(ctx, id, in)
		}
		if err != nil {
			return messageSavedMsg{created: created, err: err}
		}
		return messageSavedMsg{message: *message, created: created}
	}
}

func (s *EditorScreen) deleteMessage(id int) tea.Cmd {
	return func() tea.Msg {
		err := s.deps.API.DeleteMessage(context.Background(), id)
		return messageDeletedMsg{id: id, err: err}
	}
}

func (s *EditorScreen) saveCharacter(id int, name, color string, created bool) tea.Cmd {
	storyID := s.storyID
	return func() tea.Msg {
		ctx := context.Background()
		var character *data.Character
		var err error
		if created {
			character, err = s.deps.API.CreateCharacter(ctx, storyID, name, color)
		} else {
			character, err = s.deps.API.UpdateCharacter(ctx, id, name, color)
		}
		if err != nil {
			return characterSavedMsg{created: created, err: err}
		}
		return characterSavedMsg{character: *character, created: created}
	}
}

func (s *EditorScreen) deleteCharacter(id int) tea.Cmd {
	return func() tea.Msg {
		err := s.deps.API.DeleteCharacter(context.Background(), id)
		return characterDeletedMsg{id: id, err: err}
	}
}

func (s *EditorScreen) createEpisode(title string) tea.Cmd {
	storyID := s.storyID
	return func() tea.Msg {
		episode, err := s.deps.API.CreateEpisode(context.Background(), storyID, title)
		if err != nil {
			return episodeCreatedMsg{err: err}
		}
		return episodeCreatedMsg{episode: *episode}
	}
}
