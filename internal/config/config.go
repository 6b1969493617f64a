package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	DBPath         string
	LogLevel       string
	GamedayAPIURL  string
	GamedayAPIKey  string
	GamedayTimeout time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:         getEnv("DB_PATH", "league.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		GamedayAPIURL:  getEnv("GAMEDAY_API_URL", "http://localhost:9090"),
		GamedayAPIKey:  getEnv("GAMEDAY_API_KEY", ""),
		GamedayTimeout: 10 * time.Second,
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("log_level", cfg.LogLevel).
		Str("gameday_api_url", cfg.GamedayAPIURL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
