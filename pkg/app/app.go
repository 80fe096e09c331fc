// Package app assembles the client: configuration, logging, the local
// session store, the API client and the Bubble Tea program.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kerbaras/storyline/pkg/api"
	"github.com/kerbaras/storyline/pkg/app/screens"
	"github.com/kerbaras/storyline/pkg/config"
	"github.com/kerbaras/storyline/pkg/data"
	"github.com/kerbaras/storyline/pkg/logger"
	"github.com/kerbaras/storyline/pkg/store"
)

type App struct {
	Deps    *screens.Deps
	session *data.Repository
}

// New builds the dependency graph shared by the TUI and the CLI commands.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	log := logger.New(cfg)

	session, err := data.NewRepository(filepath.Join(cfg.Data.Dir, "session.db"))
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	// the token provider reads the session store on every request, so a
	// login taking effect mid-session is picked up without restarting
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, func() string {
		return session.Get(data.KeyAccess)
	}, log)

	return &App{
		Deps: &screens.Deps{
			Config:  cfg,
			Log:     log,
			API:     client,
			Store:   store.New(session),
			Session: session,
		},
		session: session,
	}, nil
}

func (a *App) Close() error {
	return a.session.Close()
}

// Run starts the interactive client and blocks until it exits.
func (a *App) Run() error {
	root := screens.NewRootScreen(a.Deps)
	program := tea.NewProgram(root, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
