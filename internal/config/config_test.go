package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFolder(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o644))
	return dir
}

func TestMustLoad(t *testing.T) {
	dir := writeConfigFolder(t, `
jwt_ttl: 24h
thread_window: 20
max_message_len: 500
log_level: debug
`, `
jwt_key: test-key
pg:
  host: localhost
  port: 5432
  user: u
  password: p
  dbname: ritim
`)

	cfg := MustLoad(dir)

	assert.Equal(t, 24*time.Hour, cfg.JwtTTL())
	assert.Equal(t, "test-key", cfg.JwtKey())
	assert.Equal(t, 20, cfg.Public.ThreadWindow)
	assert.Equal(t, 500, cfg.Public.MaxMessageLen)
	assert.Equal(t, "debug", cfg.Public.LogLevel)
	assert.Equal(t, "localhost", cfg.Private.Pg.Host)
	assert.Equal(t, 5432, cfg.Private.Pg.Port)
}

func TestMustLoadDefaults(t *testing.T) {
	dir := writeConfigFolder(t, "{}", "jwt_key: k")

	cfg := MustLoad(dir)

	assert.Equal(t, 7*24*time.Hour, cfg.JwtTTL())
	assert.Equal(t, 50, cfg.Public.ThreadWindow)
	assert.Equal(t, 50, cfg.Public.NotificationWindow)
	assert.Equal(t, 2000, cfg.Public.MaxMessageLen)
	assert.Equal(t, 10, cfg.Public.FeedPageSize)
	assert.Equal(t, "info", cfg.Public.LogLevel)
}

func TestMustLoadMissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}
