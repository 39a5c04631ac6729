// Package config reads the service configuration from LOANCALC_* environment
// variables. Command-line flags override what is loaded here.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	// RedisAddr selects redis for sessions and the result cache. Empty keeps
	// both in memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL time.Duration
	CacheTTL   time.Duration

	RateLimit  int
	RateWindow time.Duration

	HistoryLimit int

	LogLevel  string
	LogFormat string // "text" or "json"
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		SessionTTL:   30 * time.Minute,
		CacheTTL:     24 * time.Hour,
		RateLimit:    120,
		RateWindow:   time.Minute,
		HistoryLimit: 1000,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load starts from Default and applies any variables set in the environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("LOANCALC_ADDR", &cfg.Addr)
	str("LOANCALC_REDIS_ADDR", &cfg.RedisAddr)
	str("LOANCALC_REDIS_PASSWORD", &cfg.RedisPassword)
	str("LOANCALC_LOG_LEVEL", &cfg.LogLevel)
	str("LOANCALC_LOG_FORMAT", &cfg.LogFormat)

	for _, err := range []error{
		num("LOANCALC_REDIS_DB", &cfg.RedisDB),
		num("LOANCALC_RATE_LIMIT", &cfg.RateLimit),
		num("LOANCALC_HISTORY_LIMIT", &cfg.HistoryLimit),
		dur("LOANCALC_SESSION_TTL", &cfg.SessionTTL),
		dur("LOANCALC_CACHE_TTL", &cfg.CacheTTL),
		dur("LOANCALC_RATE_WINDOW", &cfg.RateWindow),
	} {
		if err != nil {
			return Config{}, err
		}
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("rate window must be positive")
	}
	if c.SessionTTL < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("ttl must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// NewLogger builds the slog logger described by the config.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
