package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the score worker service.
type Config struct {
	DBURL         string
	RedisURL      string
	RedisQueue    string
	WorkerCount   int
	JobBufferSize int

	// Reference data
	ReferencePath string
	WeightsPath   string // empty means the built-in weights

	LogLevel string
}

// Load builds a Config from environment variables. A .env file in the working
// directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBURL:         os.Getenv("DB_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisQueue:    envStr("REDIS_QUEUE", "score_matches"),
		WorkerCount:   envInt("WORKER_COUNT", 1),
		JobBufferSize: envInt("JOB_BUFFER_SIZE", 16),
		ReferencePath: envStr("REFERENCE_PATH", "reference.yaml"),
		WeightsPath:   envStr("WEIGHTS_PATH", ""),
		LogLevel:      envStr("LOG_LEVEL", "info"),
	}

	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.JobBufferSize < 0 {
		cfg.JobBufferSize = 0
	}

	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
