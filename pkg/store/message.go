package store

import (
	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/data"
)

// MessageState holds one episode's timeline. List, create, update and delete
// keep independent loading/error state so the editor can disable only the
// control that is busy.
type MessageState struct {
	Pagination

	Messages []data.Message

	Loading struct {
		List   bool
		Create bool
		Update bool
		Delete bool
	}
	Errors struct {
		List   string
		Create []string
		Update []string
	}
}

func (s *MessageState) StartList(loadMore bool) bool {
	if loadMore && (s.Loading.List || !s.HasMore) {
		return false
	}
	s.Loading.List = true
	s.Errors.List = ""
	return true
}

func (s *MessageState) FinishList(page *data.Page[data.Message], loadMore bool) {
	if loadMore {
		s.Messages = mergePage(s.Messages, page.Results, func(m data.Message) int { return m.ID })
	} else {
		s.Messages = page.Results
	}
	s.applyLinks(page.Links, page.Total, page.Page)
	s.Loading.List = false
}

func (s *MessageState) FailList(err error) {
	s.Loading.List = false
	s.Messages = nil
	s.Errors.List = errText(err)
}

func (s *MessageState) ResetList() {
	s.Messages = nil
	s.Pagination.reset()
}

func (s *MessageState) StartCreate() {
	s.Loading.Create = true
	s.Errors.Create = nil
}

// FinishCreate inserts the new message at the position its order dictates:
// before the first sibling with a greater order, at the end when there is
// none.
func (s *MessageState) FinishCreate(msg data.Message) {
	index := len(s.Messages)
	for i, existing := range s.Messages {
		if existing.Order > msg.Order {
			index = i
			break
		}
	}
	s.Messages = append(s.Messages[:index], append([]data.Message{msg}, s.Messages[index:]...)...)
	s.Loading.Create = false
}

func (s *MessageState) FailCreate(err error) {
	s.Loading.Create = false
	s.Errors.Create = api.ErrorMessages(err)
}

// NextOrder returns the order value for a message appended after the current
// tail.
func (s *MessageState) NextOrder() float64 {
	if len(s.Messages) == 0 {
		return 1
	}
	last := s.Messages[len(s.Messages)-1].Order
	return last + last/2
}

// PlanMove computes the fractional order a message would take if moved from
// index from to index to: the midpoint of its new neighbors, or the
// single-sided value at a boundary. The move itself is not applied; commit
// it with CommitMove once the backend confirms. While a reorder is in
// flight the plan is refused, since its indices would be relative to a list
// the pending commit is about to re-splice.
func (s *MessageState) PlanMove(from, to int) (float64, bool) {
	if s.Loading.Update {
		return 0, false
	}
	n := len(s.Messages)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return 0, false
	}

	moved := spliceMove(s.Messages, from, to)

	var prev, next *data.Message
	if to > 0 {
		prev = &moved[to-1]
	}
	if to < n-1 {
		next = &moved[to+1]
	}

	switch {
	case prev == nil && next != nil:
		return next.Order / 2, true
	case next == nil && prev != nil:
		return prev.Order + prev.Order/2, true
	case prev != nil && next != nil:
		return (prev.Order + next.Order) / 2, true
	default:
		return 0, false
	}
}

// CommitMove splices the message into its new position with its confirmed
// order value.
func (s *MessageState) CommitMove(from, to int, order float64) {
	n := len(s.Messages)
	if from < 0 || from >= n || to < 0 || to >= n {
		return
	}
	s.Messages = spliceMove(s.Messages, from, to)
	s.Messages[to].Order = order
	s.Loading.Update = false
}

func (s *MessageState) StartReorder() {
	s.Loading.Update = true
	s.Errors.Update = nil
}

func (s *MessageState) FailReorder(err error) {
	s.Loading.Update = false
	s.Errors.Update = api.ErrorMessages(err)
}

func (s *MessageState) StartUpdate() {
	s.Loading.Update = true
	s.Errors.Update = nil
}

func (s *MessageState) FinishUpdate(msg data.Message) {
	for i := range s.Messages {
		if s.Messages[i].ID == msg.ID {
			s.Messages[i] = msg
			break
		}
	}
	s.Loading.Update = false
}

func (s *MessageState) FailUpdate(err error) {
	s.Loading.Update = false
	s.Errors.Update = api.ErrorMessages(err)
}

func (s *MessageState) StartDelete() {
	s.Loading.Delete = true
}

func (s *MessageState) FinishDelete(id int) {
	out := s.Messages[:0]
	for _, m := range s.Messages {
		if m.ID != id {
			out = append(out, m)
		}
	}
	s.Messages = out
	s.Loading.Delete = false
}

func (s *MessageState) FailDelete(err error) {
	s.Loading.Delete = false
	s.Errors.Update = api.ErrorMessages(err)
}

func spliceMove(messages []data.Message, from, to int) []data.Message {
	out := make([]data.Message, 0, len(messages))
	out = append(out, messages[:from]...)
	out = append(out, messages[from+1:]...)
	out = append(out[:to], append([]data.Message{messages[from]}, out[to:]...)...)
	return out
}
