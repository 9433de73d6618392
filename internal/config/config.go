package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration
	MongoMaxPoolSize    uint64
	MongoMinPoolSize    uint64

	ResendAPIKey string
	EmailFrom    string
	BaseURL      string

	RequestTimeout  time.Duration
	SubmitTimeout   time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, optionally seeded
// from a .env file. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGO_DATABASE", "audiophile"),
		MongoConnectTimeout: 10 * time.Second,
		MongoMaxPoolSize:    getEnvUint("MONGO_MAX_POOL_SIZE", 100),
		MongoMinPoolSize:    getEnvUint("MONGO_MIN_POOL_SIZE", 10),
		ResendAPIKey:        os.Getenv("RESEND_API_KEY"),
		EmailFrom:           getEnv("EMAIL_FROM", "Audiophile <onboarding@resend.dev>"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),
		RequestTimeout:      30 * time.Second,
		SubmitTimeout:       10 * time.Second,
		ShutdownTimeout:     10 * time.Second,
	}

	if cfg.ResendAPIKey == "" {
		return nil, errors.New("RESEND_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
