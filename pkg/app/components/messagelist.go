package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kerbaras/storyline/pkg/app/styles"
	"github.com/kerbaras/storyline/pkg/data"
)

// MessageList renders an episode timeline. In editor mode the selected
// message is highlighted so it can be moved, edited or deleted.
type MessageList struct {
	Items         []data.Message
	SelectedIndex int
	Width         int
	Editing       bool
}

func NewMessageList() *MessageList {
	return &MessageList{Width: 80}
}

func (l *MessageList) SetItems(items []data.Message) {
	l.Items = items
	if l.SelectedIndex >= len(items) {
		l.SelectedIndex = 0
	}
}

func (l *MessageList) Next() {
	if len(l.Items) == 0 {
		return
	}
	if l.SelectedIndex < len(l.Items)-1 {
		l.SelectedIndex++
	}
}

func (l *MessageList) Prev() {
	if l.SelectedIndex > 0 {
		l.SelectedIndex--
	}
}

func (l *MessageList) AtEnd() bool {
	return len(l.Items) > 0 && l.SelectedIndex == len(l.Items)-1
}

func (l *MessageList) Selected() *data.Message {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

func (l *MessageList) View() string {
	if len(l.Items) == 0 {
		return styles.MutedStyle.Render("No messages yet")
	}

	var b strings.Builder
	for i, message := range l.Items {
		line := renderMessage(message, l.Width)
		if l.Editing && i == l.SelectedIndex {
			line = styles.ActiveCardStyle.Width(l.Width - 4).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderMessage(message data.Message, width int) string {
	if message.MessageType == data.MessageStatus {
		return styles.StatusLineStyle.Width(width - 4).Render("— " + message.StatusContent + " —")
	}

	speaker := "???"
	color := ""
	if message.Character != nil {
		speaker = message.Character.Name
		color = message.Character.Color
	}
	name := styles.CharacterStyle(color).Render(speaker)

	var body string
	switch message.MessageType {
	case data.MessageImage:
		body = styles.MutedStyle.Render(fmt.Sprintf("[image] %s", message.Content()))
	case data.MessageVideo:
		body = styles.MutedStyle.Render(fmt.Sprintf("[video] %s", message.Content()))
	case data.MessageAudio:
		body = styles.MutedStyle.Render(fmt.Sprintf("[audio] %s", message.Content()))
	default:
		body = styles.TextStyle.Render(message.TextContent)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, name, styles.MutedStyle.Render(": "), body)
}
