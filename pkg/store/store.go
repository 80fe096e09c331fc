// Package store holds the client-side state of the application, one feature
// state per functional area. Every server-backed operation runs through a
// pending/fulfilled/rejected triple of handlers on its feature state.
//
// The store is single-writer: all mutating methods are called from the
// Bubble Tea update loop, which never runs two handlers at once. Nothing
// else may mutate feature state directly.
package store

import (
	"github.com/kerbaras/storyline/pkg/data"
)

type Store struct {
	Auth          AuthState
	Categories    CategoryState
	Stories       StoryState
	Comments      CommentState
	Episodes      EpisodeState
	Characters    CharacterState
	Messages      MessageState
	Notifications NotificationState
}

// New seeds the store from the local session repository, the analog of the
// web client reading tokens out of browser storage on startup.
func New(session *data.Repository) *Store {
	return &Store{
		Auth: NewAuthState(session),
	}
}
