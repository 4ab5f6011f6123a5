package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLDatabase string

	LLMProvider  string
	OpenAIAPIKey string
	ModelName    string

	JWTKey string
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		RedisURL: getEnv("REDIS_URL", "localhost:6379"),
		DataDir:  getEnv("DATA_DIR", "./data"),

		MySQLUser:     getEnv("MYSQL_USER", "user"),
		MySQLPassword: getEnv("MYSQL_PASSWORD", "password"),
		MySQLHost:     getEnv("MYSQL_HOST", "tcp(127.0.0.1:3306)"),
		MySQLDatabase: getEnv("MYSQL_DATABASE", "haggle"),

		LLMProvider:  getEnv("LLM_PROVIDER", "openai"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ModelName:    getEnv("MODEL_NAME", "gpt-4o-mini"),

		JWTKey: os.Getenv("JWT_KEY"),
	}

	return cfg, nil
}

// MySQLDSN builds the driver connection string for the user store.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=UTC",
		c.MySQLUser, c.MySQLPassword, c.MySQLHost, c.MySQLDatabase)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
