package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/marcus/dialogs/pkg/dialog"
)

const (
	envPrefix  = "DIALOGS"
	envConfig  = "DIALOGS_CONFIG"
	configName = "config.yaml"
)

// Config holds application configuration.
type Config struct {
	Dialog DialogConfig `mapstructure:"dialog"`
	Log    LogConfig    `mapstructure:"log"`
}

// DialogConfig is the install-time configuration of the dialog registry.
type DialogConfig struct {
	CloseDelay time.Duration  `mapstructure:"close_delay"`
	Props      map[string]any `mapstructure:"props"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultPath returns the config file used when neither a flag nor
// DIALOGS_CONFIG names one.
func DefaultPath() string {
	if path := os.Getenv(envConfig); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "dialogs", configName)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("dialog.close_delay", dialog.DefaultCloseDelay)
	v.SetDefault("dialog.props", map[string]any{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config at path. A missing file yields the defaults; env
// vars prefixed DIALOGS_ override both.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Dialog.Props == nil {
		cfg.Dialog.Props = map[string]any{}
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.Set("dialog.close_delay", cfg.Dialog.CloseDelay.String())
	v.Set("dialog.props", cfg.Dialog.Props)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Registry returns the dialog registry configuration.
func (c *Config) Registry() dialog.Config {
	return dialog.Config{
		CloseDelay: c.Dialog.CloseDelay,
		Props:      c.Dialog.Props,
	}
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
