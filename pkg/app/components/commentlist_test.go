package components

import (
	"strings"
	"testing"

	"github.com/kerbaras/storyline/pkg/data"
)

func TestCommentListSelected(t *testing.T) {
	list := NewCommentList()

	if list.Selected() != nil {
		t.Error("Expected nil for empty list")
	}

	list.SetItems([]data.Comment{
		{ID: 1, Text: "first"},
		{ID: 2, Text: "second"},
	})

	list.Next()
	selected := list.Selected()
	if selected == nil {
		t.Fatal("Expected selected comment")
	}
	if selected.ID != 2 {
		t.Errorf("Expected selected comment ID 2, got %d", selected.ID)
	}

	if !list.AtEnd() {
		t.Error("Expected AtEnd to be true on last comment")
	}
}

func TestCommentListSetItemsClampsSelection(t *testing.T) {
	list := NewCommentList()
	list.SetItems([]data.Comment{{ID: 1}, {ID: 2}, {ID: 3}})
	list.SelectedIndex = 2

	list.SetItems([]data.Comment{{ID: 1}})

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be reset to 0, got %d", list.SelectedIndex)
	}
}

func TestCommentListView(t *testing.T) {
	list := NewCommentList()

	view := list.View()
	if !strings.Contains(view, "No comments yet") {
		t.Error("Expected empty message in view")
	}

	list.SetItems([]data.Comment{
		{ID: 1, Author: data.User{Username: "ana"}, Text: "loved this", LikesCount: 2, IsLiked: true},
	})

	view = list.View()
	if !strings.Contains(view, "ana") {
		t.Error("Expected author in view")
	}
	if !strings.Contains(view, "loved this") {
		t.Error("Expected comment text in view")
	}
	if !strings.Contains(view, "(2♥)") {
		t.Error("Expected like count in view")
	}
}
