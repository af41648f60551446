package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SHOPFRONT_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.Offline())
	assert.Equal(t, 300*time.Millisecond, c.UI.SettleDelay)
	assert.Equal(t, 10*time.Second, c.API.Timeout)
	assert.True(t, c.UI.Mouse)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "shop.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "http://shop.local"
timeout = "3s"

[ui]
settle_delay = "500ms"
mouse = false
`), 0o644))
	t.Setenv("SHOPFRONT_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)
	assert.False(t, c.Offline())
	assert.Equal(t, "http://shop.local", c.API.BaseURL)
	assert.Equal(t, 3*time.Second, c.API.Timeout)
	assert.Equal(t, 500*time.Millisecond, c.UI.SettleDelay)
	assert.False(t, c.UI.Mouse)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
