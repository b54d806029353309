package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr    string
	DBPath        string
	AIBackend     string
	OllamaHost    string
	OllamaModel   string
	ClaudeAPIKey  string
	ClaudeModel   string
	FontDir       string
	LatinFont     string
	ArabicFont    string
	CompanyName   string
	WatermarkText string
	LogLevel      string
	LogFormat     string
	LogFile       string
}

func Load() *Config {
	// A missing .env is fine; real env vars always win.
	_ = godotenv.Load()

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "/data/fahs.db"),
		AIBackend:     getEnv("AI_BACKEND", "ollama"),
		OllamaHost:    getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:   getEnv("OLLAMA_MODEL", "llama3.2-vision"),
		ClaudeAPIKey:  getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:   getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		FontDir:       getEnv("FONT_DIR", ""),
		LatinFont:     getEnv("LATIN_FONT", ""),
		ArabicFont:    getEnv("ARABIC_FONT", ""),
		CompanyName:   getEnv("COMPANY_NAME", "Fahs Property Inspections"),
		WatermarkText: getEnv("WATERMARK_TEXT", "FAHS"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
