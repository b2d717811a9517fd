// Package config loads settings from an optional config file, a .env file
// and MINDMORPH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath string      `mapstructure:"db_path"`
	Log    LogConfig   `mapstructure:"log"`
	Focus  FocusConfig `mapstructure:"focus"`
	Timer  TimerConfig `mapstructure:"timer"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type FocusConfig struct {
	ScoreInterval    time.Duration `mapstructure:"score_interval"`
	ClockInterval    time.Duration `mapstructure:"clock_interval"`
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
	Spread           float64       `mapstructure:"spread"`
	// Seed fixes the focus score trajectory; 0 seeds from the clock.
	Seed uint64 `mapstructure:"seed"`
}

type TimerConfig struct {
	DefaultMinutes int `mapstructure:"default_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("focus.score_interval", "2s")
	v.SetDefault("focus.clock_interval", "1s")
	v.SetDefault("focus.autosave_interval", "30s")
	v.SetDefault("focus.spread", 10.0)
	v.SetDefault("focus.seed", 0)
	v.SetDefault("timer.default_minutes", 25)
}

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in $XDG_CONFIG_HOME/mindmorph and the working
// directory, and a missing file is not an error. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MINDMORPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// MINDMORPH_DB predates the config file and still wins over it.
	if err := v.BindEnv("db_path", "MINDMORPH_DB", "MINDMORPH_DB_PATH"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Focus: FocusConfig{
			ScoreInterval:    2 * time.Second,
			ClockInterval:    time.Second,
			AutosaveInterval: 30 * time.Second,
			Spread:           10,
		},
		Timer: TimerConfig{DefaultMinutes: 25},
	}
}

// Validate rejects settings the tickers cannot run with.
func (c *Config) Validate() error {
	if c.Focus.ScoreInterval <= 0 || c.Focus.ClockInterval <= 0 || c.Focus.AutosaveInterval <= 0 {
		return fmt.Errorf("focus intervals must be positive")
	}
	if c.Focus.Spread <= 0 {
		return fmt.Errorf("focus.spread must be positive, got %v", c.Focus.Spread)
	}
	return nil
}

// LogFile returns the configured log file, defaulting to mindmorph.log
// next to the database.
func (c *Config) LogFile(dbPath string) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(filepath.Dir(dbPath), "mindmorph.log")
}

func configDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "mindmorph")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mindmorph")
}
