package api

import (
	"context"
	"fmt"

	"github.com/kerbaras/storyline/pkg/data"
)

func (c *Client) ListCharacters(ctx context.Context, storyID int) ([]data.Character, error) {
	var characters []data.Character
	path := fmt.Sprintf("/api/stories/%d/characters/", storyID)
	if err := c.get(ctx, path, nil, &characters); err != nil {
		return nil, err
	}
	return characters, nil
}

func (c *Client) CreateCharacter(ctx context.Context, storyID int, name, color string) (*data.Character, error) {
	var character data.Character
	payload := map[string]any{"story": storyID, "name": name, "color": color}
	if err := c.postJSON(ctx, fmt.Sprintf("/api/stories/%d/characters/", storyID), payload, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (c *Client) UpdateCharacter(ctx context.Context, id int, name, color string) (*data.Character, error) {
	var character data.Character
	payload := map[string]string{"name": name, "color": color}
	if err := c.patchJSON(ctx, fmt.Sprintf("/api/characters/%d/", id), payload, &character); err != nil {
		return nil, err
	}
	return &character, nil
}

func (c *Client) DeleteCharacter(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/characters/%d/", id))
}
