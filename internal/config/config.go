package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/statsboard/internal/db"
	"github.com/vytor/statsboard/internal/stattype"
)

type Config struct {
	Addr                string
	DBDriver            string
	DBDSN               string
	LogLevel            string
	RankingStat         string
	RequestTimeout      time.Duration
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	LeaderboardCacheTTL time.Duration
	IngestWorkerCount   int
	IngestQueueSize     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBDriver:            envOr("DB_DRIVER", "sqlite3"),
		DBDSN:               envOr("DB_DSN", "file:statsboard.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		RankingStat:         envOr("RANKING_STAT", "kills"),
		RequestTimeout:      envDurationOr("REQUEST_TIMEOUT", 10*time.Second),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             envIntOr("REDIS_DB", 0),
		LeaderboardCacheTTL: envDurationOr("LEADERBOARD_CACHE_TTL", 30*time.Second),
		IngestWorkerCount:   envIntOr("INGEST_WORKER_COUNT", 2),
		IngestQueueSize:     envIntOr("INGEST_QUEUE_SIZE", 64),
	}
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, "ADDR cannot be empty")
	}
	if _, err := db.DialectFor(c.DBDriver); err != nil {
		errs = append(errs, fmt.Sprintf("DB_DRIVER must be sqlite3 or pgx, got %q", c.DBDriver))
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		errs = append(errs, "DB_DSN cannot be empty")
	}
	switch strings.ToUpper(strings.TrimSpace(c.LogLevel)) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	if _, err := stattype.Resolve(c.RankingStat); err != nil {
		errs = append(errs, fmt.Sprintf("RANKING_STAT is not a known stat: %q", c.RankingStat))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT must be positive")
	}
	if c.RedisDB < 0 {
		errs = append(errs, "REDIS_DB cannot be negative")
	}
	if c.RedisAddr != "" && c.LeaderboardCacheTTL <= 0 {
		errs = append(errs, "LEADERBOARD_CACHE_TTL must be positive when REDIS_ADDR is set")
	}
	if c.IngestWorkerCount < 1 {
		errs = append(errs, fmt.Sprintf("INGEST_WORKER_COUNT must be at least 1, got %d", c.IngestWorkerCount))
	}
	if c.IngestQueueSize < 1 {
		errs = append(errs, fmt.Sprintf("INGEST_QUEUE_SIZE must be at least 1, got %d", c.IngestQueueSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Ranking resolves RankingStat. Call after Validate.
func (c Config) Ranking() stattype.Kind {
	kind, _ := stattype.Resolve(c.RankingStat)
	return kind
}

// CacheEnabled reports whether a redis leaderboard cache is configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
