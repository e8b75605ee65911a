package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.APIListenAddr)
	assert.Equal(t, ":8888", cfg.WSListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./public", cfg.StaticDir)
	assert.Equal(t, 6, cfg.RoomIDLength)
	assert.Equal(t, int64(9000), cfg.ReadLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RELAY_LOG_LEVEL", "info")
	t.Setenv("RELAY_WS_LISTEN_ADDR", ":9999")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":9999", cfg.WSListenAddr)
	assert.Equal(t, ":8080", cfg.APIListenAddr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_listen_addr: :7070\nroom_id_length: 8\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.APIListenAddr)
	assert.Equal(t, 8, cfg.RoomIDLength)
	assert.Equal(t, ":8888", cfg.WSListenAddr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
