// Package config resolves where nummi keeps its ledger and its cache.
//
// Defaults follow the XDG base directory conventions. They can be overridden
// by an optional configuration file, then by NUMMI_* environment variables.
// The environment is always passed explicitly, so that nothing deeper in the
// program reads it.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/etnz/nummi/cache"
	"github.com/spf13/viper"
)

// Name namespaces every directory used by the program.
const Name = "nummi"

// Sources are the supported rate sources.
var Sources = []string{"ecb", "frankfurter"}

// keys of the configuration file, and suffixes of the NUMMI_* variables.
const (
	keyDBDir    = "db-dir"
	keyCacheDir = "cache-dir"
	keyMaxAge   = "max-age"
	keySource   = "source"
)

// Config holds the resolved settings.
type Config struct {
	DBDir    string        // root of the ledger files
	CacheDir string        // directory of the rate cache
	MaxAge   time.Duration // age after which cached rates are refreshed
	Source   string        // rate source, one of Sources
}

func homeDir(getenv func(string) string, xdg string, fallback ...string) string {
	if dir := getenv(xdg); dir != "" {
		return dir
	}
	return filepath.Join(append([]string{getenv("HOME")}, fallback...)...)
}

// Defaults returns the configuration when nothing is overridden.
func Defaults(getenv func(string) string) Config {
	return Config{
		DBDir:    filepath.Join(homeDir(getenv, "XDG_DATA_HOME", ".local", "share"), Name, "db"),
		CacheDir: filepath.Join(homeDir(getenv, "XDG_CACHE_HOME", ".cache"), Name),
		MaxAge:   cache.DefaultMaxAge,
		Source:   Sources[0],
	}
}

// Dir returns the directory searched for the "config" file.
func Dir(getenv func(string) string) string {
	return filepath.Join(homeDir(getenv, "XDG_CONFIG_HOME", ".config"), Name)
}

// Load returns the configuration.
//
// If file is empty, a "config" file (toml, yaml or json) is looked up in Dir
// and is optional. Otherwise file must exist.
func Load(file string, getenv func(string) string) (Config, error) {
	def := Defaults(getenv)
	v := viper.New()
	v.SetDefault(keyDBDir, def.DBDir)
	v.SetDefault(keyCacheDir, def.CacheDir)
	v.SetDefault(keyMaxAge, def.MaxAge)
	v.SetDefault(keySource, def.Source)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(Dir(getenv))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("cannot read configuration: %w", err)
		}
	}

	env := strings.NewReplacer("-", "_")
	for _, key := range []string{keyDBDir, keyCacheDir, keyMaxAge, keySource} {
		if val := getenv("NUMMI_" + strings.ToUpper(env.Replace(key))); val != "" {
			v.Set(key, val)
		}
	}

	cfg := Config{
		DBDir:    v.GetString(keyDBDir),
		CacheDir: v.GetString(keyCacheDir),
		MaxAge:   v.GetDuration(keyMaxAge),
		Source:   v.GetString(keySource),
	}
	return cfg, cfg.Validate()
}

// Validate validates the configuration and returns an error if invalid
func (c Config) Validate() error {
	var errs []string
	if c.DBDir == "" {
		errs = append(errs, "empty ledger directory")
	}
	if c.CacheDir == "" {
		errs = append(errs, "empty cache directory")
	}
	if c.MaxAge <= 0 {
		errs = append(errs, fmt.Sprintf("invalid max age %v: must be positive", c.MaxAge))
	}
	if !slices.Contains(Sources, c.Source) {
		errs = append(errs, fmt.Sprintf("invalid rate source %q: must be one of %s", c.Source, strings.Join(Sources, ", ")))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// CachePath returns the rate cache file.
func (c Config) CachePath() string { return filepath.Join(c.CacheDir, cache.FileName) }
