package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kerbaras/storyline/pkg/data"
)

// StoriesQuery filters a fresh story listing. NextURL, when set, wins over
// everything else: it is the absolute next-page link from a previous
// response.
type StoriesQuery struct {
	Category string
	Search   string
	Ordering string
	PageSize int
	NextURL  string
}

func (q StoriesQuery) values() url.Values {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Ordering != "" {
		params.Set("ordering", q.Ordering)
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return params
}

type StoryInput struct {
	Title       string
	Description string
	Category    int
	ImagePath   string
}

func (in StoryInput) fields() map[string]string {
	return map[string]string{
		"title":       in.Title,
		"description": in.Description,
		"category":    strconv.Itoa(in.Category),
	}
}

func (in StoryInput) files() map[string]string {
	if in.ImagePath == "" {
		return nil
	}
	return map[string]string{"image": in.ImagePath}
}

func (c *Client) ListCategories(ctx context.Context) ([]data.Category, error) {
	var categories []data.Category
	if err := c.get(ctx, "/api/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) ListStories(ctx context.Context, q StoriesQuery) (*data.Page[data.Story], error) {
	return c.storyPage(ctx, "/api/stories/", q)
}

func (c *Client) MyStories(ctx context.Context, q StoriesQuery) (*data.Page[data.Story], error) {
	return c.storyPage(ctx, "/api/stories/my/", q)
}

func (c *Client) LikedStories(ctx context.Context, q StoriesQuery) (*data.Page[data.Story], error) {
	return c.storyPage(ctx, "/api/stories/liked/", q)
}

func (c *Client) SavedStories(ctx context.Context, q StoriesQuery) (*data.Page[data.Story], error) {
	return c.storyPage(ctx, "/api/saved-stories/", q)
}

func (c *Client) storyPage(ctx context.Context, path string, q StoriesQuery) (*data.Page[data.Story], error) {
	var page data.Page[data.Story]
	if q.NextURL != "" {
		if err := c.get(ctx, q.NextURL, nil, &page); err != nil {
			return nil, err
		}
		return &page, nil
	}
	if err := c.get(ctx, path, q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetStory(ctx context.Context, id int) (*data.Story, error) {
	var story data.Story
	if err := c.get(ctx, fmt.Sprintf("/api/stories/%d/", id), nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

func (c *Client) RandomStory(ctx context.Context) (*data.Story, error) {
	var story data.Story
	if err := c.get(ctx, "/api/stories/random", nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

func (c *Client) CreateStory(ctx context.Context, in StoryInput) (*data.Story, error) {
	var story data.Story
	if err := c.sendForm(ctx, "POST", "/api/stories/", in.fields(), in.files(), &story); err != nil {
		return nil, err
	}
	return &story, nil
}

func (c *Client) UpdateStory(ctx context.Context, id int, in StoryInput) (*data.Story, error) {
	var story data.Story
	path := fmt.Sprintf("/api/stories/%d/", id)
	if err := c.sendForm(ctx, "PUT", path, in.fields(), in.files(), &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// ToggleStoryLike flips the caller's like; the response carries the
// authoritative new state.
func (c *Client) ToggleStoryLike(ctx context.Context, id int) (liked bool, err error) {
	var result struct {
		Liked bool `json:"liked"`
	}
	path := fmt.Sprintf("/api/stories/%d/toggle-like/", id)
	if err := c.postJSON(ctx, path, nil, &result); err != nil {
		return false, err
	}
	return result.Liked, nil
}

// SaveStory creates the saved-story join resource and returns its id, needed
// later for unsaving.
func (c *Client) SaveStory(ctx context.Context, storyID int) (int, error) {
	var saved struct {
		ID int `json:"id"`
	}
	payload := map[string]int{"story": storyID}
	if err := c.postJSON(ctx, "/api/saved-stories/", payload, &saved); err != nil {
		return 0, err
	}
	return saved.ID, nil
}

func (c *Client) UnsaveStory(ctx context.Context, savedID int) error {
	return c.delete(ctx, fmt.Sprintf("/api/saved-stories/%d/", savedID))
}

// UnsaveByStory removes the caller's saved-story record by story id, for
// views that never learned the join resource id.
func (c *Client) UnsaveByStory(ctx context.Context, storyID int) error {
	payload := map[string]int{"story": storyID}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/api/saved-stories/delete/", bytes.NewReader(body), "application/json", nil)
}
