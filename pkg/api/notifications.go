package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kerbaras/storyline/pkg/data"
)

// ListNotifications fetches one page of the notification feed, or follows
// nextURL.
func (c *Client) ListNotifications(ctx context.Context, pageSize int, nextURL string) (*data.Page[data.Notification], error) {
	var page data.Page[data.Notification]
	if nextURL != "" {
		if err := c.get(ctx, nextURL, nil, &page); err != nil {
			return nil, err
		}
		return &page, nil
	}

	params := url.Values{}
	params.Set("page", "1")
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	if err := c.get(ctx, "/api/users/notifications/", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CountUnreadNotifications(ctx context.Context) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/api/users/notifications/count-unread/", nil, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}

// UpdateProgress records the last-read message for a story and episode.
func (c *Client) UpdateProgress(ctx context.Context, p data.Progress) error {
	return c.postJSON(ctx, "/api/update-status/", p, nil)
}

// GetProgress retrieves the last-read position for a story.
func (c *Client) GetProgress(ctx context.Context, storyID int) (*data.Progress, error) {
	params := url.Values{}
	params.Set("story", strconv.Itoa(storyID))
	var p data.Progress
	if err := c.get(ctx, "/api/update-status/", params, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
