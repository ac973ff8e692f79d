package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the client's environment. Everything is overridable via
// SMARTCART_* variables; a .env in the working directory is picked up
// when present.
type Config struct {
	APIURL          string        `envconfig:"API_URL" default:"http://localhost:5000/api"`
	StatePath       string        `envconfig:"STATE_PATH"`
	StoreName       string        `envconfig:"STORE_NAME" default:"SmartCart AI"`
	ThemeColor      string        `envconfig:"THEME_COLOR" default:"#2563eb"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"30s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"warning"`
}

func Load() (*Config, error) {
	// Missing .env is fine; only explicit settings matter.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("smartcart", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.StatePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		cfg.StatePath = filepath.Join(dir, "smartcart", "state.db")
	}
	return &cfg, nil
}
