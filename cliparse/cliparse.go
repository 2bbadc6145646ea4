// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/event-planner/logging"
)

const (
	DefaultPort       = 5555
	DefaultDatabase   = "file:event_planner.db"
	DefaultSessionTTL = 30 * time.Minute
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	EnvFile      string

	// Sessions. An empty RedisAddr keeps sessions in memory.
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration
	CookieSecure  bool

	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	// Seed loads the sample planner and exits instead of serving
	Seed bool
}

// ParseFlags builds the config. Precedence: flags, then environment,
// then the .env file, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins, secure string

	fset := flag.NewFlagSet("event-planner", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fset.IntVar(&cfg.Port, "p", 0, "Server port")
	fset.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fset.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fset.StringVar(&cfg.EnvFile, "env", ".env", "Path to a .env file (optional)")

	fset.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for sessions (empty = in-memory)")
	fset.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle session lifetime")
	fset.StringVar(&secure, "cookie-secure", "", "Mark the session cookie Secure (true/false)")
	fset.StringVar(&origins, "origins", "", "Comma separated CORS origins")

	fset.StringVar(&cfg.LogLevel, "log-level", "", "debug, info, warn or error")
	fset.StringVar(&cfg.LogFormat, "log-format", "", "text or json")

	fset.BoolVar(&cfg.Seed, "seed", false, "Load sample data into the database and exit")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	// godotenv never overrides variables already in the environment
	if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
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
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultDatabase
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = DefaultSessionTTL
		}
	}

	if secure == "" {
		secure = os.Getenv("COOKIE_SECURE")
	}
	if secure != "" {
		b, err := strconv.ParseBool(secure)
		if err != nil {
			return Config{}, errors.New("invalid COOKIE_SECURE value")
		}
		cfg.CookieSecure = b
	}

	if origins == "" {
		origins = os.Getenv("ALLOWED_ORIGINS")
	}
	cfg.AllowedOrigins = splitList(origins)

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
		if cfg.LogFormat == "" {
			cfg.LogFormat = logging.FormatText
		}
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
