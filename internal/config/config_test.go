package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the variables Load cannot do without
func setRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test_token")
	t.Setenv("BOT_PASSWORD", "test_password")
	t.Setenv("DB_PASSWORD", "test_db_password")
}

// clearOptional makes every optional variable fall back to its default
func clearOptional(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "TTS_VOICE",
		"GAME_PAIRS", "GAME_FLASH_DELAY", "GAME_SETTLE_DELAY", "GENERATE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable empty",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name          string
		envValue      string
		expected      time.Duration
		expectedError bool
	}{
		{name: "default", envValue: "", expected: time.Second},
		{name: "milliseconds", envValue: "250ms", expected: 250 * time.Millisecond},
		{name: "garbage", envValue: "soon", expectedError: true},
		{name: "negative", envValue: "-1s", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.envValue)

			d, err := getEnvDuration("TEST_DURATION", time.Second)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "TEST_DURATION")
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_WithDefaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "test_password", cfg.BotPassword)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "wordmatch", cfg.Database.Name)
	assert.Equal(t, "wordmatch", cfg.Database.User)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "alloy", cfg.OpenAI.Voice)
	assert.Equal(t, 7, cfg.Game.Pairs)
	assert.Equal(t, 800*time.Millisecond, cfg.Game.FlashDelay)
	assert.Equal(t, time.Second, cfg.Game.SettleDelay)
	assert.Equal(t, 30*time.Second, cfg.Game.GenerateTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("GAME_PAIRS", "5")
	t.Setenv("GAME_FLASH_DELAY", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 5, cfg.Game.Pairs)
	assert.Equal(t, time.Second, cfg.Game.FlashDelay)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		contains string
	}{
		{
			name:     "missing bot token",
			env:      map[string]string{"BOT_TOKEN": ""},
			contains: "BOT_TOKEN",
		},
		{
			name:     "missing bot password",
			env:      map[string]string{"BOT_PASSWORD": ""},
			contains: "BOT_PASSWORD",
		},
		{
			name:     "missing db password",
			env:      map[string]string{"DB_PASSWORD": ""},
			contains: "DB_PASSWORD",
		},
		{
			name:     "pairs not a number",
			env:      map[string]string{"GAME_PAIRS": "seven"},
			contains: "GAME_PAIRS",
		},
		{
			name:     "zero pairs",
			env:      map[string]string{"GAME_PAIRS": "0"},
			contains: "GAME_PAIRS",
		},
		{
			name:     "bad settle delay",
			env:      map[string]string{"GAME_SETTLE_DELAY": "later"},
			contains: "GAME_SETTLE_DELAY",
		},
		{
			name:     "bad generate timeout",
			env:      map[string]string{"GENERATE_TIMEOUT": "-5s"},
			contains: "GENERATE_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			clearOptional(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
