package platform

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port         string
	DBPath       string
	AccessSecret string
	LLMBaseURL   string
	LLMAPIKey    string
	LLMModel     string
	LogPath      string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads the .env file if present and builds the config from the
// environment. ACCESS_SECRET has no safe default and is required.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		DBPath:       getenv("DB_PATH", "chatbot.db"),
		AccessSecret: os.Getenv("ACCESS_SECRET"),
		LLMBaseURL:   os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:    os.Getenv("LLM_API_KEY"),
		LLMModel:     getenv("LLM_MODEL", "gpt-4.1-mini"),
		LogPath:      getenv("LOG_PATH", "./log"),
	}

	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("ACCESS_SECRET is not set")
	}
	return cfg, nil
}
