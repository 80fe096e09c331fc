package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/storyline/pkg/data"
)

func timeline(orders ...float64) MessageState {
	var s MessageState
	s.ResetList()
	for i, order := range orders {
		s.Messages = append(s.Messages, data.Message{ID: i + 1, Order: order})
	}
	return s
}

func messageOrders(messages []data.Message) []float64 {
	out := make([]float64, len(messages))
	for i, m := range messages {
		out[i] = m.Order
	}
	return out
}

func TestPlanMoveMidpointBetweenNeighbors(t *testing.T) {
	s := timeline(1, 2, 3, 4)

	// Move the last message between the first and second.
	order, ok := s.PlanMove(3, 1)
	require.True(t, ok)
	assert.Equal(t, 1.5, order)
	assert.Greater(t, order, 1.0)
	assert.Less(t, order, 2.0)
}

func TestPlanMoveToHead(t *testing.T) {
	s := timeline(1, 2, 3)

	// No predecessor: half the successor's order.
	order, ok := s.PlanMove(2, 0)
	require.True(t, ok)
	assert.Equal(t, 0.5, order)
}

func TestPlanMoveToTail(t *testing.T) {
	s := timeline(1, 2, 3)

	// No successor: predecessor plus half of it.
	order, ok := s.PlanMove(0, 2)
	require.True(t, ok)
	assert.Equal(t, 4.5, order)
}

func TestPlanMoveRejectsNoopAndOutOfRange(t *testing.T) {
	s := timeline(1, 2)

	_, ok := s.PlanMove(0, 0)
	assert.False(t, ok)
	_, ok = s.PlanMove(-1, 1)
	assert.False(t, ok)
	_, ok = s.PlanMove(0, 5)
	assert.False(t, ok)
}

func TestPlanMoveRefusedWhileReorderInFlight(t *testing.T) {
	s := timeline(1, 2, 3)

	order, ok := s.PlanMove(0, 1)
	require.True(t, ok)
	s.StartReorder()

	// A second plan before the first commit would splice against stale
	// indices, so it is refused until the pending move settles.
	_, ok = s.PlanMove(0, 1)
	assert.False(t, ok)

	s.CommitMove(0, 1, order)
	assert.Equal(t, []float64{2, 2.5, 3}, messageOrders(s.Messages))

	_, ok = s.PlanMove(0, 1)
	assert.True(t, ok)
}

func TestCommitMoveSplicesAndKeepsSortOrder(t *testing.T) {
	s := timeline(1, 2, 3, 4)

	order, ok := s.PlanMove(3, 1)
	require.True(t, ok)

	s.StartReorder()
	s.CommitMove(3, 1, order)

	assert.Equal(t, []float64{1, 1.5, 2, 3}, messageOrders(s.Messages))
	assert.Equal(t, 4, s.Messages[1].ID)
	assert.False(t, s.Loading.Update)

	// A fetch sorted by order reproduces the on-screen sequence.
	for i := 1; i < len(s.Messages); i++ {
		assert.Less(t, s.Messages[i-1].Order, s.Messages[i].Order)
	}
}

func TestReorderFailureLeavesListUntouched(t *testing.T) {
	s := timeline(1, 2, 3)
	before := messageOrders(s.Messages)

	_, ok := s.PlanMove(0, 2)
	require.True(t, ok)

	s.StartReorder()
	s.FailReorder(assert.AnError)

	// Only splice once the backend confirms; a rejected PATCH changes nothing.
	assert.Equal(t, before, messageOrders(s.Messages))
	assert.NotEmpty(t, s.Errors.Update)
}

func TestFinishCreateInsertsByOrder(t *testing.T) {
	s := timeline(1, 2, 4)

	s.StartCreate()
	s.FinishCreate(data.Message{ID: 99, Order: 3})

	assert.Equal(t, []float64{1, 2, 3, 4}, messageOrders(s.Messages))
	assert.Equal(t, 99, s.Messages[2].ID)
}

func TestFinishCreateAppendsWhenOrderIsLargest(t *testing.T) {
	s := timeline(1, 2)

	s.StartCreate()
	s.FinishCreate(data.Message{ID: 99, Order: 7})

	assert.Equal(t, 99, s.Messages[len(s.Messages)-1].ID)
}

func TestFinishCreateIntoEmptyTimeline(t *testing.T) {
	s := timeline()

	s.FinishCreate(data.Message{ID: 1, Order: 1})
	require.Len(t, s.Messages, 1)
}

func TestNextOrder(t *testing.T) {
	s := timeline()
	assert.Equal(t, 1.0, s.NextOrder())

	s = timeline(1, 2, 4)
	assert.Equal(t, 6.0, s.NextOrder())
}

func TestFinishDeleteRemovesByID(t *testing.T) {
	s := timeline(1, 2, 3)

	s.StartDelete()
	s.FinishDelete(2)

	assert.Equal(t, []float64{1, 3}, messageOrders(s.Messages))
	assert.False(t, s.Loading.Delete)
}
