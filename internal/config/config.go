package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel string

	NATSURL     string
	NATSSubject string

	GeminiModel string

	CategoriesPath string

	PageDelayMs            int
	PageTimeoutSeconds     int
	ValidateTimeoutSeconds int
	FinalizeTimeoutSeconds int

	RowTolerance    float64
	ColumnTolerance float64

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "statements.extract"),

		GeminiModel: mustEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		CategoriesPath: mustEnv("CATEGORIES_PATH", ""),

		PageDelayMs:            mustEnvInt("PAGE_DELAY_MS", 250),
		PageTimeoutSeconds:     mustEnvInt("PAGE_TIMEOUT_SECONDS", 90),
		ValidateTimeoutSeconds: mustEnvInt("VALIDATE_TIMEOUT_SECONDS", 30),
		FinalizeTimeoutSeconds: mustEnvInt("FINALIZE_TIMEOUT_SECONDS", 60),

		RowTolerance:    mustEnvFloat("ROW_TOLERANCE", 5),
		ColumnTolerance: mustEnvFloat("COLUMN_TOLERANCE", 15),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

func (c Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.PageTimeoutSeconds) * time.Second
}

func (c Config) ValidateTimeout() time.Duration {
	return time.Duration(c.ValidateTimeoutSeconds) * time.Second
}

func (c Config) FinalizeTimeout() time.Duration {
	return time.Duration(c.FinalizeTimeoutSeconds) * time.Second
}

// categoriesFile is the on-disk category vocabulary.
type categoriesFile struct {
	Categories []string `yaml:"categories"`
}

// LoadCategories reads the category vocabulary from a YAML file. An empty
// path returns no categories; extraction then runs without a vocabulary
// and transactions keep their model-assigned categories.
func LoadCategories(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	var parsed categoriesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}

	out := make([]string, 0, len(parsed.Categories))
	seen := make(map[string]struct{}, len(parsed.Categories))
	for _, c := range parsed.Categories {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
