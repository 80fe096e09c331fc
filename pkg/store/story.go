package store

import (
	"github.com/kerbaras/storyline/pkg/data"
)

// StoryState accumulates whichever story listing is on screen (catalog,
// search, saved, liked, mine) plus the currently opened story. The list and
// the single fetch keep independent loading/error state so opening a story
// never masks the catalog behind it.
type StoryState struct {
	Pagination

	Stories []data.Story
	Story   *data.Story

	Loading struct {
		List   bool
		Single bool
	}
	Errors struct {
		List   string
		Single string
	}
}

// StartList marks a listing fetch pending. Load-more calls are sequential:
// a second one while the first is in flight, or one past the last page, is
// refused.
func (s *StoryState) StartList(loadMore bool) bool {
	if loadMore && (s.Loading.List || !s.HasMore) {
		return false
	}
	s.Loading.List = true
	s.Errors.List = ""
	return true
}

func (s *StoryState) FinishList(page *data.Page[data.Story], loadMore bool) {
	if loadMore {
		s.Stories = mergePage(s.Stories, page.Results, func(st data.Story) int { return st.ID })
	} else {
		s.Stories = page.Results
	}
	s.applyLinks(page.Links, page.Total, page.Page)
	s.Loading.List = false
}

// FailList resets the list; stale results are not kept around.
func (s *StoryState) FailList(err error) {
	s.Loading.List = false
	s.Stories = nil
	s.Errors.List = errText(err)
}

// ResetList prepares the state for a fresh query (new search, new filter).
func (s *StoryState) ResetList() {
	s.Stories = nil
	s.Pagination.reset()
}

func (s *StoryState) StartSingle() {
	s.Loading.Single = true
	s.Errors.Single = ""
}

func (s *StoryState) FinishSingle(story *data.Story) {
	s.Story = story
	s.Loading.Single = false
}

func (s *StoryState) FailSingle(err error) {
	s.Loading.Single = false
	s.Story = nil
	s.Errors.Single = errText(err)
}

// ApplyLikeToggle applies the authoritative liked value from the toggle
// response to the open story and to any list entry with the same id.
func (s *StoryState) ApplyLikeToggle(storyID int, liked bool) {
	adjust := func(st *data.Story) {
		if st.IsLiked == liked {
			return
		}
		st.IsLiked = liked
		if liked {
			st.LikesCount++
		} else {
			st.LikesCount--
		}
	}
	if s.Story != nil && s.Story.ID == storyID {
		adjust(s.Story)
	}
	for i := range s.Stories {
		if s.Stories[i].ID == storyID {
			adjust(&s.Stories[i])
		}
	}
}

// ApplySaved flips the saved flag without touching any counter.
func (s *StoryState) ApplySaved(storyID int, saved bool) {
	if s.Story != nil && s.Story.ID == storyID {
		s.Story.IsSaved = saved
	}
	for i := range s.Stories {
		if s.Stories[i].ID == storyID {
			s.Stories[i].IsSaved = saved
		}
	}
}

// ApplyCommentCount keeps the open story's counter in sync with comment
// create/delete.
func (s *StoryState) ApplyCommentCount(storyID, delta int) {
	if s.Story != nil && s.Story.ID == storyID {
		s.Story.CommentsCount += delta
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// CategoryState is read-only reference data for the catalog filter.
type CategoryState struct {
	Categories []data.Category
	Loading    bool
	Error      string
}

func (s *CategoryState) StartList() {
	s.Loading = true
	s.Error = ""
}

func (s *CategoryState) FinishList(categories []data.Category) {
	s.Categories = categories
	s.Loading = false
}

func (s *CategoryState) FailList(err error) {
	s.Loading = false
	s.Categories = nil
	s.Error = errText(err)
}
