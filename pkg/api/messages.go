package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kerbaras/storyline/pkg/data"
)

var ErrCharacterRequired = errors.New("a character must be selected for this message type")

// MessageInput describes a message to create or update. Exactly the content
// field matching Type is sent; Character must be nil for status messages and
// set for every other type.
type MessageInput struct {
	Episode   int
	Type      string
	Character *int
	Order     float64

	Text      string
	Status    string
	ImagePath string
	VideoPath string
	AudioPath string
}

// Validate runs the pre-submission checks the editor applies before any
// network call is made.
func (in MessageInput) Validate() error {
	if in.Type != data.MessageStatus && in.Character == nil {
		return ErrCharacterRequired
	}
	return nil
}

func (in MessageInput) form() (fields map[string]string, files map[string]string) {
	fields = map[string]string{
		"episode":      strconv.Itoa(in.Episode),
		"message_type": in.Type,
		"order":        strconv.FormatFloat(in.Order, 'f', -1, 64),
	}
	// Status messages carry no character; every other type requires one.
	if in.Character != nil {
		fields["character"] = strconv.Itoa(*in.Character)
	}

	files = map[string]string{}
	switch in.Type {
	case data.MessageText:
		fields["text_content"] = in.Text
	case data.MessageStatus:
		fields["status_content"] = in.Status
	case data.MessageImage:
		if in.ImagePath != "" {
			files["image_content"] = in.ImagePath
		}
	case data.MessageVideo:
		if in.VideoPath != "" {
			files["video_content"] = in.VideoPath
		}
	case data.MessageAudio:
		if in.AudioPath != "" {
			files["audio_content"] = in.AudioPath
		}
	}
	return fields, files
}

func (c *Client) CreateMessage(ctx context.Context, in MessageInput) (*data.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var message data.Message
	fields, files := in.form()
	if err := c.sendForm(ctx, "POST", "/api/messages/", fields, files, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) UpdateMessage(ctx context.Context, id int, in MessageInput) (*data.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var message data.Message
	fields, files := in.form()
	path := fmt.Sprintf("/api/messages/%d/", id)
	if err := c.sendForm(ctx, "PUT", path, fields, files, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// UpdateMessageOrder persists a fractional reorder.
func (c *Client) UpdateMessageOrder(ctx context.Context, id int, order float64) (*data.Message, error) {
	var message data.Message
	payload := map[string]float64{"order": order}
	path := fmt.Sprintf("/api/messages/%d/order/", id)
	if err := c.patchJSON(ctx, path, payload, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/messages/%d/", id))
}
