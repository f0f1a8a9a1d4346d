// Package config loads the emotecat YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "emotecat.yaml"

// Config holds all emotecat settings.
type Config struct {
	// Output is the catalog path written by refresh and parse.
	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`

	Fetch  FetchConfig  `yaml:"fetch"`
	Parser ParserConfig `yaml:"parser"`
	Notify NotifyConfig `yaml:"notify"`
}

type FetchConfig struct {
	// ReadTimeout bounds the download. Zero waits for the server to close.
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

type ParserConfig struct {
	// SkipInvalid logs and drops rows with bad codepoints instead of failing.
	SkipInvalid bool `yaml:"skip_invalid"`
}

// NotifyConfig enables a Telegram message after each refresh.
type NotifyConfig struct {
	TelegramToken string `yaml:"telegram_token"`
	ChatID        int64  `yaml:"chat_id"`
}

// Enabled reports whether notifications are configured.
func (n NotifyConfig) Enabled() bool {
	return n.TelegramToken != "" && n.ChatID != 0
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Output:   "emotes.json",
		LogLevel: "info",
	}
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("EMOTECAT_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("EMOTECAT_TELEGRAM_TOKEN"); v != "" {
		c.Notify.TelegramToken = v
	}
	if v := os.Getenv("EMOTECAT_TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid EMOTECAT_TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		c.Notify.ChatID = id
	}
	return nil
}

// Validate checks the config for values the commands cannot use.
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.Fetch.ReadTimeout < 0 {
		return fmt.Errorf("fetch.read_timeout must not be negative, got %s", c.Fetch.ReadTimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Notify.TelegramToken != "" && c.Notify.ChatID == 0 {
		return errors.New("notify.chat_id is required when notify.telegram_token is set")
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
