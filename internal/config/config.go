package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/crowdhq/crowd-client-go/internal/api"
	"github.com/crowdhq/crowd-client-go/internal/utils"
)

type Config struct {
	APIBaseURL       string
	StorageDir       string
	HTTPTimeout      time.Duration
	GoogleMapsAPIKey string
}

// Load reads configuration from the environment, with .env support for
// local development. Only the API base URL is required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	baseURL := os.Getenv("CROWD_API_URL")
	if baseURL == "" {
		return nil, errors.New("CROWD_API_URL env var is missing")
	}

	storageDir := os.Getenv("CROWD_STORAGE_DIR")
	if storageDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.New("CROWD_STORAGE_DIR env var is missing and no home directory is available")
		}
		storageDir = filepath.Join(home, ".crowd")
	}

	timeout := api.DefaultTimeout
	if raw := os.Getenv("CROWD_HTTP_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			utils.Logger.Warnf("Invalid CROWD_HTTP_TIMEOUT %q, using default", raw)
		} else {
			timeout = parsed
		}
	}

	return &Config{
		APIBaseURL:       baseURL,
		StorageDir:       storageDir,
		HTTPTimeout:      timeout,
		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
	}, nil
}
