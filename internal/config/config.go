// Package config provides configuration loading from a .env file and the
// environment.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the application. Command-line flags
// override values loaded here.
type Config struct {
	// Remote persistence service
	ServerURL string `env:"SOUNDECK_SERVER_URL, default=http://localhost:8787"`

	// Session credential: either a token directly or a file holding one
	Token     string `env:"SOUNDECK_TOKEN"`
	TokenFile string `env:"SOUNDECK_TOKEN_FILE"`

	// Local storage
	DataDir string `env:"SOUNDECK_DATA_DIR, default=soundeck-data"`

	// Cross-instance notification: first free port in [SyncPort, SyncPort+SyncPortSpan)
	SyncPort     int `env:"SOUNDECK_SYNC_PORT, default=57220"`
	SyncPortSpan int `env:"SOUNDECK_SYNC_PORT_SPAN, default=8"`

	// UI language for the built-in clip titles
	Language string `env:"SOUNDECK_LANG, default=en"`

	// Logging
	LogPath string `env:"SOUNDECK_LOG"`
	Debug   bool   `env:"SOUNDECK_DEBUG, default=false"`
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: loading .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
