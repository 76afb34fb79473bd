package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	Env      string
	DB       DBConfig
	BotAPI   BotAPIConfig
	Jobs     JobsConfig
}

type DBConfig struct {
	Path string
}

type BotAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JobsConfig struct {
	// MaintenanceTime is the HH:MM at which the daily overdue sweep and
	// cancelled-record purge run.
	MaintenanceTime string
	RetentionDays   int
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		DB: DBConfig{
			Path: getEnv("DB_PATH", "payment_reminders.db"),
		},
		BotAPI: BotAPIConfig{
			BaseURL: getEnv("BOT_API_BASE_URL", "http://localhost:3000"),
			Timeout: getEnvDuration("BOT_API_TIMEOUT", 30*time.Second),
		},
		Jobs: JobsConfig{
			MaintenanceTime: getEnv("MAINTENANCE_TIME", "00:05"),
			RetentionDays:   getEnvInt("CANCELLED_RETENTION_DAYS", 90),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
