package api

import (
	"context"
	"fmt"

	"github.com/kerbaras/storyline/pkg/data"
)

// ListComments fetches one page of a story's comments, or follows nextURL.
func (c *Client) ListComments(ctx context.Context, storyID int, nextURL string) (*data.Page[data.Comment], error) {
	var page data.Page[data.Comment]
	path := nextURL
	if path == "" {
		path = fmt.Sprintf("/api/stories/%d/comments/", storyID)
	}
	if err := c.get(ctx, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateComment(ctx context.Context, storyID int, text string) (*data.Comment, error) {
	var comment data.Comment
	payload := map[string]any{"story": storyID, "text": text}
	if err := c.postJSON(ctx, "/api/comments/", payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/comments/%d/", id))
}

func (c *Client) ToggleCommentLike(ctx context.Context, id int) (liked bool, err error) {
	var result struct {
		Liked bool `json:"liked"`
	}
	path := fmt.Sprintf("/api/comments/%d/toggle-like/", id)
	if err := c.postJSON(ctx, path, nil, &result); err != nil {
		return false, err
	}
	return result.Liked, nil
}
