package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so a developer's local rankgate.yaml cannot
	// leak into the test.
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8002, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "libsql", cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.Path)

	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)

	assert.Equal(t, 10*time.Second, cfg.Analyzer.FetchTimeout)
	assert.Equal(t, 15*time.Second, cfg.Analyzer.AuditTimeout)
	assert.True(t, cfg.Analyzer.RDAPEnabled)

	assert.Empty(t, cfg.Billing.WebhookSecret)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9090, cfg.Metrics.Port)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rankgate.yaml")
	content := `
server:
  port: 9100
cache:
  ttl: 1h
billing:
  webhook_secret: whsec_test
store:
  path: ` + filepath.Join(dir, "rankgate.db") + `
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "whsec_test", cfg.Billing.WebhookSecret)
	assert.Equal(t, filepath.Join(dir, "rankgate.db"), cfg.Store.Path)

	// Unset keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Analyzer.AuditTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	t.Setenv("HOME", t.TempDir())

	t.Setenv("RANKGATE_SERVER_PORT", "9200")
	t.Setenv("RANKGATE_LOGGING_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rankgate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(viper.New(), path)
	require.Error(t, err)
}
