package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIBaseURL  string
	IDPBaseURL  string
	IDPClientID string
	AccessToken string
	SummitID    int64
	HTTPAddr    string
	RedisAddr   string
	PostgresURL string
	LogLevel    logrus.Level
}

// Load reads the environment, filling it first from a .env file in the
// working directory when one exists. Variables already set win over the
// file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := Config{
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		IDPBaseURL:  os.Getenv("IDP_BASE_URL"),
		IDPClientID: os.Getenv("IDP_CLIENT_ID"),
		AccessToken: os.Getenv("ACCESS_TOKEN"),
		HTTPAddr:    getEnvOrDefault("HTTP_ADDR", ":8080"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		LogLevel:    logrus.InfoLevel,
	}

	if cfg.APIBaseURL == "" {
		return Config{}, errors.New("API_BASE_URL is required")
	}

	if v := os.Getenv("SUMMIT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parsing SUMMIT_ID: %w", err)
		}
		cfg.SummitID = id
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
