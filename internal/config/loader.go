package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", 5000)
	v.SetDefault("TEMP_DIR", os.TempDir())
	v.SetDefault("CLEANUP_INTERVAL_HOURS", 1)
	v.SetDefault("CLEANUP_MAX_AGE_HOURS", 1)
	v.SetDefault("USERS_FILE", "users.json")
	v.SetDefault("GROQ_API_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("GROQ_MODEL", "llama3-8b-8192")

	// Define environment variables
	v.BindEnv("TG_TOKEN")
	v.BindEnv("TG_BOT_USERNAME")
	v.BindEnv("MASTER_ID")
	v.BindEnv("MASTER_PASSWORD")
	v.BindEnv("GROQ_API_KEY")
	v.BindEnv("GROQ_API_URL")
	v.BindEnv("GROQ_MODEL")
	v.BindEnv("TEMP_DIR")
	v.BindEnv("HTTP_PORT")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("CLEANUP_INTERVAL_HOURS")
	v.BindEnv("CLEANUP_MAX_AGE_HOURS")
	v.BindEnv("USERS_FILE")

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:    strings.TrimSpace(v.GetString("TG_TOKEN")),
			Username: strings.TrimSpace(v.GetString("TG_BOT_USERNAME")),
		},
		Master: MasterConfig{
			ID:       v.GetInt64("MASTER_ID"),
			Password: v.GetString("MASTER_PASSWORD"),
		},
		AI: AIConfig{
			APIKey:  strings.TrimSpace(v.GetString("GROQ_API_KEY")),
			BaseURL: strings.TrimSpace(v.GetString("GROQ_API_URL")),
			Model:   strings.TrimSpace(v.GetString("GROQ_MODEL")),
		},
		Cleanup: CleanupConfig{
			IntervalHours: v.GetInt("CLEANUP_INTERVAL_HOURS"),
			MaxAgeHours:   v.GetInt("CLEANUP_MAX_AGE_HOURS"),
			UsersFile:     v.GetString("USERS_FILE"),
		},
		HTTPPort: v.GetInt("HTTP_PORT"),
		TempDir:  v.GetString("TEMP_DIR"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return errors.New("TG_TOKEN is required")
	}

	if cfg.Master.ID != 0 && cfg.Master.Password == "" {
		return errors.New("MASTER_PASSWORD is required when MASTER_ID is set")
	}

	if cfg.Cleanup.IntervalHours < 1 {
		return fmt.Errorf("CLEANUP_INTERVAL_HOURS must be positive, got %d", cfg.Cleanup.IntervalHours)
	}

	if info, err := os.Stat(cfg.TempDir); err != nil || !info.IsDir() {
		return fmt.Errorf("TEMP_DIR is not a directory: %s", cfg.TempDir)
	}

	return nil
}
