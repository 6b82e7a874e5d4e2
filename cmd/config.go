package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read when no other is given.
const DefaultEnvFile = ".env"

// Config is the process configuration read from the environment.
type Config struct {
	HTTPPort            string
	ParamsFile          string
	LogLevel            slog.Level
	ClientOrderSchedule string
	StatsReportSchedule string
}

// LoadConfig loads envFile into the environment and reads the process
// configuration. A missing default env file is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || envFile != DefaultEnvFile {
			return Config{}, fmt.Errorf("error loading %s file: %w", envFile, err)
		}
	}

	level, err := parseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		ParamsFile:          envOrDefault("PARAMS_FILE", "config.json"),
		LogLevel:            level,
		ClientOrderSchedule: os.Getenv("CLIENT_ORDER_SCHEDULE"),
		StatsReportSchedule: envOrDefault("STATS_REPORT_SCHEDULE", "@every 10s"),
	}, nil
}

func envOrDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
