package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig points at the shop backend. An empty BaseURL runs offline
// against the catalog file.
type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
}

type UIConfig struct {
	// SettleDelay is the pad before a modal closes after a submit.
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	MinSpinner  time.Duration `mapstructure:"min_spinner"`
	Mouse       bool          `mapstructure:"mouse"`
	AltScreen   bool          `mapstructure:"alt_screen"`
}

type CatalogConfig struct {
	Path    string        `mapstructure:"path"`
	Latency time.Duration `mapstructure:"latency"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "shopfront")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "shopfront")
}

// Load reads configuration from file and env. Env var overrides use prefix
// SHOPFRONT_. An explicit path (argument or SHOPFRONT_CONFIG) must exist; the
// default location is optional.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.rate_per_second", 5.0)
	v.SetDefault("ui.settle_delay", 300*time.Millisecond)
	v.SetDefault("ui.min_spinner", 400*time.Millisecond)
	v.SetDefault("ui.mouse", true)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.latency", 250*time.Millisecond)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("SHOPFRONT_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SHOPFRONT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Offline reports whether the app should use the in-memory backend.
func (c Config) Offline() bool { return c.API.BaseURL == "" }
