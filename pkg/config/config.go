package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API struct {
		BaseURL string        `env:"STORYLINE_API_URL" env-default:"http://localhost:8000"`
		Timeout time.Duration `env:"STORYLINE_API_TIMEOUT" env-default:"15s"`
	}
	WS struct {
		URL string `env:"STORYLINE_WS_URL" env-default:"ws://localhost:8000"`
	}
	Pages struct {
		Stories       int `env:"STORYLINE_STORIES_PAGE_SIZE" env-default:"10"`
		Comments      int `env:"STORYLINE_COMMENTS_PAGE_SIZE" env-default:"10"`
		Messages      int `env:"STORYLINE_MESSAGES_PAGE_SIZE" env-default:"5"`
		Notifications int `env:"STORYLINE_NOTIFICATIONS_PAGE_SIZE" env-default:"15"`
	}
	Data struct {
		Dir string `env:"STORYLINE_DATA_DIR"`
	}
	Log struct {
		File  string `env:"STORYLINE_LOG_FILE"`
		Level string `env:"STORYLINE_LOG_LEVEL" env-default:"info"`
	}
}

// Load reads configuration from .env when present, otherwise from the
// process environment. Data and log paths default to ~/.storyline.
func Load() (*Config, error) {
	cfg := &Config{}

	var err error
	if _, statErr := os.Stat(".env"); statErr == nil {
		err = cleanenv.ReadConfig(".env", cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Data.Dir == "" {
		homeDir, _ := os.UserHomeDir()
		cfg.Data.Dir = filepath.Join(homeDir, ".storyline")
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Data.Dir, "storyline.log")
	}

	return cfg, nil
}
