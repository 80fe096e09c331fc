package store

import (
	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/data"
)

// CommentState accumulates the open story's comment thread.
type CommentState struct {
	Pagination

	Comments []data.Comment

	Loading struct {
		List   bool
		Create bool
		Delete bool
	}
	Errors struct {
		List   string
		Create []string
	}
}

func (s *CommentState) StartList(loadMore bool) bool {
	if loadMore && (s.Loading.List || !s.HasMore) {
		return false
	}
	s.Loading.List = true
	s.Errors.List = ""
	return true
}

func (s *CommentState) FinishList(page *data.Page[data.Comment], loadMore bool) {
	if loadMore {
		s.Comments = mergePage(s.Comments, page.Results, func(c data.Comment) int { return c.ID })
	} else {
		s.Comments = page.Results
	}
	s.applyLinks(page.Links, page.Total, page.Page)
	s.Loading.List = false
}

func (s *CommentState) FailList(err error) {
	s.Loading.List = false
	s.Comments = nil
	s.Errors.List = errText(err)
}

func (s *CommentState) ResetList() {
	s.Comments = nil
	s.Pagination.reset()
}

func (s *CommentState) StartCreate() {
	s.Loading.Create = true
	s.Errors.Create = nil
}

// FinishCreate prepends; the thread lists newest first.
func (s *CommentState) FinishCreate(comment data.Comment) {
	s.Comments = append([]data.Comment{comment}, s.Comments...)
	s.Total++
	s.Loading.Create = false
}

func (s *CommentState) FailCreate(err error) {
	s.Loading.Create = false
	s.Errors.Create = api.ErrorMessages(err)
}

func (s *CommentState) StartDelete() {
	s.Loading.Delete = true
}

func (s *CommentState) FinishDelete(id int) {
	out := s.Comments[:0]
	for _, c := range s.Comments {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.Comments = out
	if s.Total > 0 {
		s.Total--
	}
	s.Loading.Delete = false
}

func (s *CommentState) FailDelete(err error) {
	s.Loading.Delete = false
	s.Errors.List = errText(err)
}

// ApplyLikeToggle applies the authoritative liked value from the response.
func (s *CommentState) ApplyLikeToggle(commentID int, liked bool) {
	for i := range s.Comments {
		if s.Comments[i].ID != commentID {
			continue
		}
		if s.Comments[i].IsLiked == liked {
			return
		}
		s.Comments[i].IsLiked = liked
		if liked {
			s.Comments[i].LikesCount++
		} else {
			s.Comments[i].LikesCount--
		}
		return
	}
}
