package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alejandrodnm/ahbot/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv neutraliza las variables de entorno que Load lee, para que los
// tests no dependan del entorno del host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BNET_CLIENT_ID", "BNET_CLIENT_SECRET", "BNET_REGION", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
watcher:
  interval_seconds: 120
api:
  region: us
  token_url: http://localhost:1/token
  data_url: http://localhost:1/data
storage:
  dsn: test.db
log:
  level: debug
  format: json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.WatchInterval())
	assert.Equal(t, "us", cfg.API.Region)
	assert.Equal(t, "http://localhost:1/token", cfg.API.TokenURL)
	assert.Equal(t, "http://localhost:1/data", cfg.API.DataURL)
	assert.Equal(t, "test.db", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BNET_CLIENT_ID", "id-from-env")
	t.Setenv("BNET_CLIENT_SECRET", "secret-from-env")
	t.Setenv("BNET_REGION", "kr")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	path := writeConfig(t, `
api:
  region: eu
log:
  level: info
  format: text
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	// Las credenciales solo llegan por entorno, nunca por YAML
	assert.Equal(t, "id-from-env", cfg.API.ClientID)
	assert.Equal(t, "secret-from-env", cfg.API.ClientSecret)
	// El entorno gana sobre el YAML
	assert.Equal(t, "kr", cfg.API.Region)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_CredentialsIgnoredInYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  client_id: leaked-id
  client_secret: leaked-secret
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.API.ClientID)
	assert.Empty(t, cfg.API.ClientSecret)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `{}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Watcher.IntervalSeconds)
	assert.Equal(t, 5*time.Minute, cfg.WatchInterval())
	assert.Equal(t, "eu", cfg.API.Region)
	assert.Equal(t, "ahbot.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_NegativeIntervalFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
watcher:
  interval_seconds: -5
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Watcher.IntervalSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "watcher: [not: a: mapping")

	_, err := config.Load(path)
	assert.Error(t, err)
}
