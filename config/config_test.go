package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env returns a getenv backed by m.
func env(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestDefaults(t *testing.T) {
	cfg := Defaults(env(map[string]string{"HOME": "/home/user"}))
	assert.Equal(t, "/home/user/.local/share/nummi/db", cfg.DBDir)
	assert.Equal(t, "/home/user/.cache/nummi", cfg.CacheDir)
	assert.Equal(t, 24*time.Hour, cfg.MaxAge)
	assert.Equal(t, "ecb", cfg.Source)

	cfg = Defaults(env(map[string]string{
		"HOME":           "/home/user",
		"XDG_DATA_HOME":  "/data",
		"XDG_CACHE_HOME": "/cache",
	}))
	assert.Equal(t, "/data/nummi/db", cfg.DBDir)
	assert.Equal(t, "/cache/nummi", cfg.CacheDir)
	assert.Equal(t, "/cache/nummi/currencies", cfg.CachePath())
}

func TestLoadWithoutFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := Load("", env(map[string]string{"HOME": home}))
	require.NoError(t, err)
	assert.Equal(t, Defaults(env(map[string]string{"HOME": home})), cfg)
}

func TestLoadFile(t *testing.T) {
	configHome := t.TempDir()
	dir := filepath.Join(configHome, Name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	content := `db-dir = "/srv/ledger"
max-age = "1h"
source = "frankfurter"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	getenv := env(map[string]string{"HOME": "/home/user", "XDG_CONFIG_HOME": configHome})
	cfg, err := Load("", getenv)
	require.NoError(t, err)
	assert.Equal(t, "/srv/ledger", cfg.DBDir)
	assert.Equal(t, "/home/user/.cache/nummi", cfg.CacheDir)
	assert.Equal(t, time.Hour, cfg.MaxAge)
	assert.Equal(t, "frankfurter", cfg.Source)

	// environment wins over the file.
	getenv = env(map[string]string{
		"HOME":            "/home/user",
		"XDG_CONFIG_HOME": configHome,
		"NUMMI_DB_DIR":    "/elsewhere",
		"NUMMI_MAX_AGE":   "2h",
	})
	cfg, err = Load("", getenv)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", cfg.DBDir)
	assert.Equal(t, 2*time.Hour, cfg.MaxAge)
}

func TestLoadExplicitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nummi.yaml")
	require.NoError(t, os.WriteFile(file, []byte("cache-dir: /tmp/rates\n"), 0o644))

	cfg, err := Load(file, env(map[string]string{"HOME": "/home/user"}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rates", cfg.CacheDir)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"), env(map[string]string{"HOME": "/home/user"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults(env(map[string]string{"HOME": "/home/user"}))
	assert.NoError(t, cfg.Validate())

	cfg.Source = "bank"
	cfg.MaxAge = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rate source")
	assert.Contains(t, err.Error(), "invalid max age")
}
