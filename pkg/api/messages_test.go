package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/storyline/pkg/data"
)

func TestCreateMessage_StatusOmitsCharacter(t *testing.T) {
	var form map[string][]string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		writeJSON(w, http.StatusCreated, data.Message{ID: 1, MessageType: data.MessageStatus, Order: 1})
	}))

	msg, err := client.CreateMessage(context.Background(), MessageInput{
		Episode: 3,
		Type:    data.MessageStatus,
		Order:   1,
		Status:  "Two weeks later",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, msg.ID)

	_, hasCharacter := form["character"]
	assert.False(t, hasCharacter, "status messages must not send a character field")
	assert.Equal(t, []string{"Two weeks later"}, form["status_content"])
	assert.Equal(t, []string{"status"}, form["message_type"])

	_, hasText := form["text_content"]
	assert.False(t, hasText, "only the content field for the type is sent")
}

func TestCreateMessage_TextRequiresCharacter(t *testing.T) {
	requests := 0
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		writeJSON(w, http.StatusCreated, data.Message{})
	}))

	_, err := client.CreateMessage(context.Background(), MessageInput{
		Episode: 3,
		Type:    data.MessageText,
		Order:   1,
		Text:    "hello",
	})
	assert.ErrorIs(t, err, ErrCharacterRequired)
	assert.Zero(t, requests, "validation must reject before any network call")
}

func TestCreateMessage_TextSendsCharacterAndContent(t *testing.T) {
	var form map[string][]string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		form = r.MultipartForm.Value
		writeJSON(w, http.StatusCreated, data.Message{ID: 2})
	}))

	characterID := 9
	_, err := client.CreateMessage(context.Background(), MessageInput{
		Episode:   3,
		Type:      data.MessageText,
		Character: &characterID,
		Order:     2.5,
		Text:      "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, form["character"])
	assert.Equal(t, []string{"hello"}, form["text_content"])
	assert.Equal(t, []string{"2.5"}, form["order"])
}

func TestUpdateMessageOrder(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/messages/5/order/", r.URL.Path)
		writeJSON(w, http.StatusOK, data.Message{ID: 5, Order: 1.5})
	}))

	msg, err := client.UpdateMessageOrder(context.Background(), 5, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1.5, msg.Order)
}
