// Package screens contains the Bubble Tea views of the client. Every screen
// follows the same shape: key handling feeds commands that call the API,
// command results come back as typed messages, and each message is applied
// to the store before the screen re-renders from it.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/config"
	"github.com/kerbaras/storyline/pkg/data"
	"github.com/kerbaras/storyline/pkg/store"
)

// Deps bundles the shared dependencies handed to every screen.
type Deps struct {
	Config  *config.Config
	Log     zerolog.Logger
	API     *api.Client
	Store   *store.Store
	Session *data.Repository
}

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// SessionStartedMsg is emitted after a successful login so the root screen
// can bring up the notification listener.
type SessionStartedMsg struct{}

func switchTo(screen string, payload interface{}) tea.Cmd {
	return func() tea.Msg {
		return SwitchScreenMsg{Screen: screen, Data: payload}
	}
}
