package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("TG_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TG_TOKEN")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.Cleanup.IntervalHours)
	assert.Equal(t, "users.json", cfg.Cleanup.UsersFile)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AI.BaseURL)
	assert.Equal(t, "llama3-8b-8192", cfg.AI.Model)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoadMasterRequiresPassword(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")
	t.Setenv("MASTER_ID", "99")
	t.Setenv("MASTER_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MASTER_PASSWORD")
}

func TestLoadFullConfiguration(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")
	t.Setenv("TG_BOT_USERNAME", "pdf_bot")
	t.Setenv("MASTER_ID", "99")
	t.Setenv("MASTER_PASSWORD", "hunter22")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pdf_bot", cfg.Telegram.Username)
	assert.Equal(t, int64(99), cfg.Master.ID)
	assert.Equal(t, "hunter22", cfg.Master.Password)
	assert.Equal(t, "gsk_test", cfg.AI.APIKey)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMissingTempDir(t *testing.T) {
	t.Setenv("TG_TOKEN", "123:abc")
	t.Setenv("TEMP_DIR", "/definitely/not/a/real/dir")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEMP_DIR")
}
