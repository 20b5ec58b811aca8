package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	BotPassword string
	Database    DatabaseConfig
	OpenAI      OpenAIConfig
	Game        GameConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// OpenAIConfig holds word generation and speech settings.
// An empty APIKey switches the bot to the built-in word list without speech.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Voice   string
}

// GameConfig holds board and timing settings
type GameConfig struct {
	Pairs           int
	FlashDelay      time.Duration
	SettleDelay     time.Duration
	GenerateTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordmatch"),
			User:     getEnv("DB_USER", "wordmatch"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Voice:   getEnv("TTS_VOICE", "alloy"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.BotPassword == "" {
		return nil, fmt.Errorf("BOT_PASSWORD is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	var err error
	if cfg.Game.Pairs, err = getEnvInt("GAME_PAIRS", 7); err != nil {
		return nil, err
	}
	if cfg.Game.Pairs < 1 {
		return nil, fmt.Errorf("GAME_PAIRS must be positive, got %d", cfg.Game.Pairs)
	}
	if cfg.Game.FlashDelay, err = getEnvDuration("GAME_FLASH_DELAY", 800*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Game.SettleDelay, err = getEnvDuration("GAME_SETTLE_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.Game.GenerateTimeout, err = getEnvDuration("GENERATE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
