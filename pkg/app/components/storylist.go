package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

type StoryList struct {
	Items         []data.Story
	SelectedIndex int
	Width         int
	Height        int
	EmptyText     string
}

func NewStoryList() *StoryList {
	return &StoryList{
		Items:     []data.Story{},
		Width:     80,
		Height:    20,
		EmptyText: "No stories found",
	}
}

func (l *StoryList) SetItems(items []data.Story) {
	l.Items = items
	if l.SelectedIndex >= len(items) {
		l.SelectedIndex = 0
	}
}

func (l *StoryList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *StoryList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

// AtEnd reports whether the selection sits on the last loaded story, the
// point where the screen asks for the next page.
func (l *StoryList) AtEnd() bool {
	return len(l.Items) > 0 && l.SelectedIndex == len(l.Items)-1
}

func (l *StoryList) Selected() *data.Story {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

// truncate shortens s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func (l *StoryList) View() string {
	if len(l.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(l.EmptyText)
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, story := range l.Items {
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(story.Title)

		description := styles.TextStyle.Render(truncate(story.Description, 100))

		markers := ""
		if story.IsLiked {
			markers += " ♥"
		}
		if story.IsSaved {
			markers += " ★"
		}
		meta := styles.MutedStyle.Render(fmt.Sprintf(
			"by %s • %s • %d likes • %d comments • %d views%s",
			story.Author.Username,
			story.Category.Name,
			story.LikesCount,
			story.CommentsCount,
			story.Views,
			markers,
		))

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			description,
			meta,
		)

		card := cardStyle.Width(l.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}
