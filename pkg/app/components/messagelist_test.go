package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/storyline/pkg/data"
)

func TestMessageListSelectedClamped(t *testing.T) {
	list := NewMessageList()

	if list.Selected() != nil {
		t.Error("Expected nil for empty list")
	}

	list.SetItems([]data.Message{
		{ID: 1, MessageType: data.MessageText, TextContent: "hello"},
		{ID: 2, MessageType: data.MessageText, TextContent: "there"},
	})
	list.SelectedIndex = 1

	list.SetItems([]data.Message{
		{ID: 1, MessageType: data.MessageText, TextContent: "hello"},
	})

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be reset to 0, got %d", list.SelectedIndex)
	}
}

func TestMessageListNextStopsAtEnd(t *testing.T) {
	list := NewMessageList()
	list.SetItems([]data.Message{{ID: 1}, {ID: 2}})

	list.Next()
	list.Next()
	list.Next()

	if list.SelectedIndex != 1 {
		t.Errorf("Expected SelectedIndex 1, got %d", list.SelectedIndex)
	}
	if !list.AtEnd() {
		t.Error("Expected AtEnd to be true on last message")
	}
}

func TestMessageListViewText(t *testing.T) {
	list := NewMessageList()
	list.SetItems([]data.Message{
		{
			ID:          1,
			MessageType: data.MessageText,
			TextContent: "who is this?",
			Character:   &data.Character{Name: "Rin", Color: "#FF0000"},
		},
	})

	view := list.View()

	if !strings.Contains(view, "Rin") {
		t.Error("Expected speaker name in view")
	}
	if !strings.Contains(view, "who is this?") {
		t.Error("Expected message text in view")
	}
}

func TestMessageListViewStatus(t *testing.T) {
	list := NewMessageList()
	list.SetItems([]data.Message{
		{ID: 1, MessageType: data.MessageStatus, StatusContent: "Rin left the chat"},
	})

	view := list.View()

	if !strings.Contains(view, "Rin left the chat") {
		t.Error("Expected status content in view")
	}
}

func TestMessageListViewMediaTags(t *testing.T) {
	list := NewMessageList()
	img, vid, aud := "cat.png", "clip.mp4", "voice.ogg"
	list.SetItems([]data.Message{
		{ID: 1, MessageType: data.MessageImage, ImageContent: &img, Character: &data.Character{Name: "Rin"}},
		{ID: 2, MessageType: data.MessageVideo, VideoContent: &vid, Character: &data.Character{Name: "Rin"}},
		{ID: 3, MessageType: data.MessageAudio, AudioContent: &aud, Character: &data.Character{Name: "Rin"}},
	})

	view := list.View()

	for _, tag := range []string{"[image]", "[video]", "[audio]"} {
		if !strings.Contains(view, tag) {
			t.Errorf("Expected %s tag in view", tag)
		}
	}
}

func TestErrorList(t *testing.T) {
	if ErrorList(nil) != "" {
		t.Error("Expected empty output for no errors")
	}

	out := ErrorList([]string{"Title: required", "Passwords do not match"})

	if !strings.Contains(out, "Title: required") {
		t.Error("Expected first error in output")
	}
	if !strings.Contains(out, "Passwords do not match") {
		t.Error("Expected second error in output")
	}
}
