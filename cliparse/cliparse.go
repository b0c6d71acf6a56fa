package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Store types
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port          int    `validate:"min=1,max=65535"`
	StoreType     string `validate:"oneof=memory redis postgres sqlite"`
	DatabaseURL   string `validate:"required_if=StoreType postgres,required_if=StoreType sqlite"`
	RedisAddr     string `validate:"required_if=StoreType redis"`
	RedisPassword string
	RedisDB       int `validate:"min=0"`
	RedisPrefix   string
	TieBreak      string `validate:"oneof=declared alphabetical"`
	ResetOnStart  bool
}

var validate = validator.New()

// ParseFlags parses flags, falls back to environment variables and
// validates the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("rank-poll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "s", "", "Vote store (memory, redis, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres or sqlite store)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "", "Redis address (redis store)")
	fs.IntVar(&cfg.RedisDB, "redis-db", -1, "Redis database number")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", "", "Redis key prefix")
	fs.StringVar(&cfg.TieBreak, "tie-break", "", "Tie-break rule (declared or alphabetical)")
	fs.BoolVar(&cfg.ResetOnStart, "reset", false, "Clear a shared store on startup")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = envOr("STORE_TYPE", StoreMemory)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = envOr("REDIS_ADDR", "localhost:6379")
	}
	if cfg.RedisDB < 0 {
		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			n, err := strconv.Atoi(dbStr)
			if err != nil {
				return Config{}, errors.New("invalid REDIS_DB env variable")
			}
			cfg.RedisDB = n
		} else {
			cfg.RedisDB = 0
		}
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = envOr("REDIS_PREFIX", "rankpoll")
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = envOr("TIE_BREAK", "declared")
	}
	if !cfg.ResetOnStart {
		if v := os.Getenv("RESET_POLL"); v != "" {
			reset, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid RESET_POLL env variable")
			}
			cfg.ResetOnStart = reset
		}
	}

	// Secrets - env only
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
