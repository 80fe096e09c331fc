package components

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kerbaras/storyline/pkg/data"
)

func TestNewStoryList(t *testing.T) {
	list := NewStoryList()

	if list == nil {
		t.Fatal("Expected story list to be created")
	}

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex 0, got %d", list.SelectedIndex)
	}

	if len(list.Items) != 0 {
		t.Errorf("Expected 0 items, got %d", len(list.Items))
	}
}

func TestStoryListSetItemsResetsSelection(t *testing.T) {
	list := NewStoryList()

	list.SetItems([]data.Story{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
		{ID: 3, Title: "Third"},
	})
	list.SelectedIndex = 2

	list.SetItems([]data.Story{{ID: 1, Title: "First"}})

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to be reset to 0, got %d", list.SelectedIndex)
	}
}

func TestStoryListNextWrapsAround(t *testing.T) {
	list := NewStoryList()
	list.SetItems([]data.Story{
		{ID: 1}, {ID: 2}, {ID: 3},
	})

	list.Next()
	list.Next()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex 2, got %d", list.SelectedIndex)
	}

	list.Next()
	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to wrap to 0, got %d", list.SelectedIndex)
	}
}

func TestStoryListPrevWrapsAround(t *testing.T) {
	list := NewStoryList()
	list.SetItems([]data.Story{
		{ID: 1}, {ID: 2}, {ID: 3},
	})

	list.Prev()
	if list.SelectedIndex != 2 {
		t.Errorf("Expected SelectedIndex to wrap to 2, got %d", list.SelectedIndex)
	}
}

func TestStoryListNextPrevEmpty(t *testing.T) {
	list := NewStoryList()

	// Should not panic with empty list
	list.Next()
	list.Prev()

	if list.SelectedIndex != 0 {
		t.Errorf("Expected SelectedIndex to remain 0, got %d", list.SelectedIndex)
	}
}

func TestStoryListAtEnd(t *testing.T) {
	list := NewStoryList()

	if list.AtEnd() {
		t.Error("Expected AtEnd to be false for empty list")
	}

	list.SetItems([]data.Story{{ID: 1}, {ID: 2}})

	if list.AtEnd() {
		t.Error("Expected AtEnd to be false at start")
	}

	list.Next()
	if !list.AtEnd() {
		t.Error("Expected AtEnd to be true on last item")
	}
}

func TestStoryListSelected(t *testing.T) {
	list := NewStoryList()

	if list.Selected() != nil {
		t.Error("Expected nil for empty list")
	}

	list.SetItems([]data.Story{
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	})

	selected := list.Selected()
	if selected == nil {
		t.Fatal("Expected selected story")
	}
	if selected.ID != 1 {
		t.Errorf("Expected selected story ID 1, got %d", selected.ID)
	}

	list.Next()
	if list.Selected().ID != 2 {
		t.Errorf("Expected selected story ID 2, got %d", list.Selected().ID)
	}
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	short := "café"
	if got := truncate(short, 10); got != short {
		t.Errorf("Expected %q unchanged, got %q", short, got)
	}

	// Multi-byte runes right at the cut point must survive intact.
	long := strings.Repeat("é", 20)
	got := truncate(long, 10)
	if !utf8.ValidString(got) {
		t.Errorf("Expected valid UTF-8, got %q", got)
	}
	if got != strings.Repeat("é", 7)+"..." {
		t.Errorf("Expected 7 runes plus ellipsis, got %q", got)
	}
}

func TestStoryListViewEmpty(t *testing.T) {
	list := NewStoryList()
	list.EmptyText = "No stories found"

	view := list.View()

	if !strings.Contains(view, "No stories found") {
		t.Error("Expected empty message in view")
	}
}

func TestStoryListViewWithItems(t *testing.T) {
	list := NewStoryList()

	list.SetItems([]data.Story{
		{
			ID:            1,
			Title:         "Midnight Diner",
			Description:   "A story told in messages",
			Author:        data.User{Username: "ana"},
			Category:      data.Category{Name: "Drama"},
			LikesCount:    4,
			CommentsCount: 2,
			Views:         19,
			IsLiked:       true,
			IsSaved:       true,
		},
	})

	view := list.View()

	if !strings.Contains(view, "Midnight Diner") {
		t.Error("Expected story title in view")
	}
	if !strings.Contains(view, "ana") {
		t.Error("Expected author in view")
	}
	if !strings.Contains(view, "♥") {
		t.Error("Expected liked marker in view")
	}
	if !strings.Contains(view, "★") {
		t.Error("Expected saved marker in view")
	}
}
