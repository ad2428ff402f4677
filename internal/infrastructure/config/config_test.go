package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.VerifyTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.DurableBackend)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "127.0.0.1:7420", cfg.Portal.GetAddr())
	assert.Same(t, cfg, Get())
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	content := `
api:
  base_url: https://ttdash.example.edu/api
  verify_timeout: 3
storage:
  durable_backend: redis
  redis:
    host: cache.example.edu
    port: 6380
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://ttdash.example.edu/api", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.VerifyTimeout)
	assert.Equal(t, "redis", cfg.Storage.DurableBackend)
	assert.Equal(t, "cache.example.edu:6380", cfg.Storage.Redis.GetAddr())
	assert.Equal(t, "debug", cfg.Logger.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, 30, cfg.API.RequestTimeout)
}
