package config

// Config represents the application configuration
type Config struct {
	Telegram TelegramConfig
	Master   MasterConfig
	AI       AIConfig
	Cleanup  CleanupConfig
	HTTPPort int
	TempDir  string
	LogLevel string
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	Token    string
	Username string
}

// MasterConfig holds the admin identity and shared secret
type MasterConfig struct {
	ID       int64
	Password string
}

// AIConfig holds the Groq (OpenAI-compatible) endpoint configuration.
// AI features are optional; an empty APIKey disables them.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// CleanupConfig holds the temp-file janitor configuration
type CleanupConfig struct {
	IntervalHours int
	MaxAgeHours   int
	UsersFile     string
}
