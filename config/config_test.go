package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "toolcatalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 1, cfg.Remote.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Remote.RetryDelay)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.ListenAddress)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "it_tools", cfg.Store.Mongo.Database)
	assert.Equal(t, "tools", cfg.Store.Mongo.Collection)
	assert.Equal(t, 5*time.Second, cfg.Store.Mongo.QueryTimeout)
	assert.Equal(t, DriverMemory, cfg.Favorites.Driver)
	assert.Equal(t, 3.0, cfg.Search.NameBoost)
	assert.Equal(t, 2.0, cfg.Search.CategoryBoost)
	assert.Equal(t, "toolcatalog", cfg.MCP.Name)
	assert.False(t, cfg.MCP.AllowPremium)
	assert.True(t, cfg.Observability.Metrics)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
remote:
  baseURL: https://tools.example.com/
  tokenEnv: TOOLS_TOKEN
  timeoutSeconds: 3
  maxAttempts: 4
  retryDelayMillis: 50
server:
  listenAddress: ":9000"
  adminToken: s3cret
  premiumToken: pro
store:
  driver: BOLT
  path: /var/lib/toolcatalog/tools.db
  seed: seed.yaml
favorites:
  driver: bolt
  path: /var/lib/toolcatalog/favorites.db
search:
  nameBoost: 5
mcp:
  allowPremium: true
log:
  level: DEBUG
  development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tools.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "TOOLS_TOKEN", cfg.Remote.TokenEnv)
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 4, cfg.Remote.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Remote.RetryDelay)
	assert.Equal(t, ":9000", cfg.Server.ListenAddress)
	assert.Equal(t, "s3cret", cfg.Server.AdminToken)
	assert.Equal(t, "pro", cfg.Server.PremiumToken)
	assert.Equal(t, DriverBolt, cfg.Store.Driver)
	assert.Equal(t, "/var/lib/toolcatalog/tools.db", cfg.Store.Path)
	assert.Equal(t, "seed.yaml", cfg.Store.Seed)
	assert.Equal(t, DriverBolt, cfg.Favorites.Driver)
	assert.Equal(t, 5.0, cfg.Search.NameBoost)
	assert.Equal(t, 2.0, cfg.Search.CategoryBoost)
	assert.True(t, cfg.MCP.AllowPremium)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOOLCATALOG_REMOTE_BASEURL", "http://localhost:3000")
	t.Setenv("TOOLCATALOG_SERVER_ADMINTOKEN", "from-env")
	t.Setenv("TOOLCATALOG_STORE_DRIVER", "mongo")

	path := writeConfig(t, `
server:
  adminToken: from-file
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Remote.BaseURL)
	assert.Equal(t, "from-env", cfg.Server.AdminToken)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
}

func TestLoad_CollectsErrors(t *testing.T) {
	path := writeConfig(t, `
remote:
  baseURL: ftp://nope
  maxAttempts: 0
store:
  driver: bolt
favorites:
  driver: redis
log:
  level: loud
`)

	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "remote.baseURL must be an http(s) URL")
	assert.Contains(t, msg, "remote.maxAttempts must be >= 1")
	assert.Contains(t, msg, "store.path is required for the bolt driver")
	assert.Contains(t, msg, `favorites.driver "redis"`)
	assert.Contains(t, msg, `log.level "loud"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "remote: [unterminated\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestRemoteToken(t *testing.T) {
	t.Setenv("TOOLCATALOG_TEST_TOKEN", "env-token")

	assert.Equal(t, "", RemoteConfig{}.RemoteToken())
	assert.Equal(t, "env-token", RemoteConfig{TokenEnv: "TOOLCATALOG_TEST_TOKEN"}.RemoteToken())
	assert.Equal(t, "literal", RemoteConfig{Token: "literal", TokenEnv: "TOOLCATALOG_TEST_TOKEN"}.RemoteToken())
}

func TestDefault(t *testing.T) {
	assert.NotPanics(t, func() { _ = Default() })
}
