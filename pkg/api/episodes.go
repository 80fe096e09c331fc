package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kerbaras/storyline/pkg/data"
)

func (c *Client) ListEpisodes(ctx context.Context, storyID int) ([]data.Episode, error) {
	var episodes []data.Episode
	path := fmt.Sprintf("/api/stories/%d/episodes/", storyID)
	if err := c.get(ctx, path, nil, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

func (c *Client) GetEpisode(ctx context.Context, id int) (*data.Episode, error) {
	var episode data.Episode
	if err := c.get(ctx, fmt.Sprintf("/api/episodes/%d", id), nil, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

func (c *Client) CreateEpisode(ctx context.Context, storyID int, title string) (*data.Episode, error) {
	var episode data.Episode
	payload := map[string]any{"story": storyID, "title": title}
	if err := c.postJSON(ctx, "/api/episodes/", payload, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// ListMessages fetches one page of an episode's timeline, either the first
// page sized by pageSize or the absolute nextURL of a previous response.
func (c *Client) ListMessages(ctx context.Context, episodeID, pageSize int, nextURL string) (*data.Page[data.Message], error) {
	var page data.Page[data.Message]
	if nextURL != "" {
		if err := c.get(ctx, nextURL, nil, &page); err != nil {
			return nil, err
		}
		return &page, nil
	}

	params := url.Values{}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	path := fmt.Sprintf("/api/episodes/%d/messages/", episodeID)
	if err := c.get(ctx, path, params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
