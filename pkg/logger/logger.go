package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/kerbaras/storyline/pkg/config"
)

// New returns a file-backed logger. The TUI owns the terminal, so nothing
// is ever written to stdout; if the log file cannot be opened the logger
// silently discards everything.
func New(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		if mkErr := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); mkErr == nil {
			if f, openErr := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); openErr == nil {
				out = f
			}
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
