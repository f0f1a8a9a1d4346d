package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EMOTECAT_OUTPUT", "")
	t.Setenv("EMOTECAT_TELEGRAM_TOKEN", "")
	t.Setenv("EMOTECAT_TELEGRAM_CHAT_ID", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "emotes.json", cfg.Output)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
	assert.Zero(t, cfg.Fetch.ReadTimeout)
	assert.False(t, cfg.Parser.SkipInvalid)
	assert.False(t, cfg.Notify.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), DefaultFile)
	content := `
output: /tmp/emotes.json
log_level: debug
fetch:
  read_timeout: 30s
parser:
  skip_invalid: true
notify:
  telegram_token: "123:abc"
  chat_id: -10042
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/emotes.json", cfg.Output)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
	assert.Equal(t, 30*time.Second, cfg.Fetch.ReadTimeout)
	assert.True(t, cfg.Parser.SkipInvalid)
	assert.True(t, cfg.Notify.Enabled())
	assert.Equal(t, int64(-10042), cfg.Notify.ChatID)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), DefaultFile)
	cfg := DefaultConfig()
	cfg.Output = "catalog.json"
	cfg.Fetch.ReadTimeout = 2 * time.Minute

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EMOTECAT_OUTPUT", "env.json")
	t.Setenv("EMOTECAT_TELEGRAM_TOKEN", "env-token")
	t.Setenv("EMOTECAT_TELEGRAM_CHAT_ID", "77")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env.json", cfg.Output)
	assert.Equal(t, "env-token", cfg.Notify.TelegramToken)
	assert.Equal(t, int64(77), cfg.Notify.ChatID)
}

func TestLoad_BadChatIDEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMOTECAT_TELEGRAM_CHAT_ID", "not-a-number")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty output", func(c *Config) { c.Output = "" }, true},
		{"negative timeout", func(c *Config) { c.Fetch.ReadTimeout = -time.Second }, true},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"token without chat", func(c *Config) { c.Notify.TelegramToken = "t" }, true},
		{"token with chat", func(c *Config) { c.Notify.TelegramToken = "t"; c.Notify.ChatID = 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
