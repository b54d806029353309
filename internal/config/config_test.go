package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.AIBackend)
	assert.NotEmpty(t, cfg.CompanyName)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/fahs.sqlite")
	t.Setenv("AI_BACKEND", "claude")
	t.Setenv("CLAUDE_API_KEY", "sk-test123")
	t.Setenv("ARABIC_FONT", "NotoNaskhArabic-Regular.ttf")
	t.Setenv("LOG_FORMAT", "text")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/fahs.sqlite", cfg.DBPath)
	assert.Equal(t, "claude", cfg.AIBackend)
	assert.Equal(t, "sk-test123", cfg.ClaudeAPIKey)
	assert.Equal(t, "NotoNaskhArabic-Regular.ttf", cfg.ArabicFont)
	assert.Equal(t, "text", cfg.LogFormat)
}
