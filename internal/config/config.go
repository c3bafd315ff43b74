package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port      string
	Env       string
	LogLevel  string
	StaticDir string

	// OpenAI relay
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	UpstreamTimeout time.Duration

	// Weather widget
	WeatherBaseURL string
	WeatherTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists. godotenv never overrides variables
	// already present in the environment, so explicit env wins.
	godotenv.Load()

	cfg := &Config{
		Port:      getEnvOrDefault("PORT", "3000"),
		Env:       getEnvOrDefault("ENV", "development"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		StaticDir: getEnvOrDefault("STATIC_DIR", "./web"),

		// The API key is deliberately not required at startup: a missing
		// key fails individual chat requests, not the process.
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		UpstreamTimeout: time.Duration(getEnvAsIntOrDefault("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,

		WeatherBaseURL: getEnvOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		WeatherTimeout: time.Duration(getEnvAsIntOrDefault("WEATHER_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
