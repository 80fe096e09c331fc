package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/storyline/pkg/data"
)

func TestToggleLikeIsIdempotentOverTwoCalls(t *testing.T) {
	var s StoryState
	s.FinishSingle(&data.Story{ID: 7, LikesCount: 10, IsLiked: false})

	// Each toggle applies the authoritative value from the response.
	s.ApplyLikeToggle(7, true)
	assert.True(t, s.Story.IsLiked)
	assert.Equal(t, 11, s.Story.LikesCount)

	s.ApplyLikeToggle(7, false)
	assert.False(t, s.Story.IsLiked)
	assert.Equal(t, 10, s.Story.LikesCount)
}

func TestToggleLikeReplayedResponseDoesNotDoubleCount(t *testing.T) {
	var s StoryState
	s.FinishSingle(&data.Story{ID: 7, LikesCount: 10, IsLiked: true})

	s.ApplyLikeToggle(7, true)
	assert.Equal(t, 10, s.Story.LikesCount)
}

func TestToggleLikeUpdatesListEntryToo(t *testing.T) {
	var s StoryState
	s.ResetList()
	s.FinishList(storyPage([]int{7, 8}, 2, 1, ""), false)
	s.FinishSingle(&data.Story{ID: 7, LikesCount: 3})

	s.ApplyLikeToggle(7, true)

	assert.True(t, s.Stories[0].IsLiked)
	assert.Equal(t, 1, s.Stories[0].LikesCount)
	assert.Equal(t, 4, s.Story.LikesCount)
	assert.False(t, s.Stories[1].IsLiked, "other stories untouched")
}

func TestSingleFetchStateIndependentOfList(t *testing.T) {
	var s StoryState
	s.ResetList()
	s.FinishList(storyPage([]int{7, 8}, 2, 1, ""), false)

	// Opening a story must not mask or reset the listing behind it.
	s.StartSingle()
	assert.True(t, s.Loading.Single)
	assert.False(t, s.Loading.List)
	assert.Len(t, s.Stories, 2)

	s.FailSingle(assert.AnError)
	assert.NotEmpty(t, s.Errors.Single)
	assert.Empty(t, s.Errors.List)
	assert.Len(t, s.Stories, 2)

	// And a pending list fetch keeps the open story readable.
	s.FinishSingle(&data.Story{ID: 7})
	require.True(t, s.StartList(false))
	assert.False(t, s.Loading.Single)
	assert.NotNil(t, s.Story)
}

func TestApplySavedFlipsFlagWithoutCounts(t *testing.T) {
	var s StoryState
	s.FinishSingle(&data.Story{ID: 7, LikesCount: 5, IsSaved: false})

	s.ApplySaved(7, true)
	assert.True(t, s.Story.IsSaved)
	assert.Equal(t, 5, s.Story.LikesCount)

	s.ApplySaved(7, false)
	assert.False(t, s.Story.IsSaved)
}

func TestApplyCommentCount(t *testing.T) {
	var s StoryState
	s.FinishSingle(&data.Story{ID: 7, CommentsCount: 2})

	s.ApplyCommentCount(7, 1)
	assert.Equal(t, 3, s.Story.CommentsCount)

	s.ApplyCommentCount(7, -1)
	assert.Equal(t, 2, s.Story.CommentsCount)

	s.ApplyCommentCount(99, 1)
	assert.Equal(t, 2, s.Story.CommentsCount, "other story ids are ignored")
}

func TestCommentToggleLike(t *testing.T) {
	var s CommentState
	s.ResetList()
	s.FinishList(&data.Page[data.Comment]{
		Results: []data.Comment{{ID: 1, LikesCount: 2}},
		Total:   1,
	}, false)

	s.ApplyLikeToggle(1, true)
	assert.True(t, s.Comments[0].IsLiked)
	assert.Equal(t, 3, s.Comments[0].LikesCount)

	s.ApplyLikeToggle(1, false)
	assert.False(t, s.Comments[0].IsLiked)
	assert.Equal(t, 2, s.Comments[0].LikesCount)
}

func TestCommentCreateAndDeleteAdjustTotal(t *testing.T) {
	var s CommentState
	s.ResetList()
	s.FinishList(&data.Page[data.Comment]{
		Results: []data.Comment{{ID: 1, Text: "older"}},
		Total:   1,
	}, false)

	s.StartCreate()
	s.FinishCreate(data.Comment{ID: 2, Text: "newest"})

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, "newest", s.Comments[0].Text, "new comments prepend")

	s.StartDelete()
	s.FinishDelete(2)
	assert.Equal(t, 1, s.Total)
	assert.Len(t, s.Comments, 1)
}
