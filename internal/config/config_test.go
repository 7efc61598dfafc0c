package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crowdhq/crowd-client-go/internal/api"
)

func TestLoad(t *testing.T) {
	t.Run("base URL is required", func(t *testing.T) {
		t.Setenv("CROWD_API_URL", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CROWD_API_URL", "https://api.example.com")
		t.Setenv("CROWD_STORAGE_DIR", t.TempDir())
		t.Setenv("CROWD_HTTP_TIMEOUT", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		require.Equal(t, api.DefaultTimeout, cfg.HTTPTimeout)
	})

	t.Run("timeout override", func(t *testing.T) {
		t.Setenv("CROWD_API_URL", "https://api.example.com")
		t.Setenv("CROWD_STORAGE_DIR", t.TempDir())
		t.Setenv("CROWD_HTTP_TIMEOUT", "30s")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	})

	t.Run("invalid timeout falls back", func(t *testing.T) {
		t.Setenv("CROWD_API_URL", "https://api.example.com")
		t.Setenv("CROWD_STORAGE_DIR", t.TempDir())
		t.Setenv("CROWD_HTTP_TIMEOUT", "soon")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, api.DefaultTimeout, cfg.HTTPTimeout)
	})
}
