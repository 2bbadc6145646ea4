// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5555)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: DSN; defaults to a local SQLite file, required for postgres
  - RedisAddr: Redis server for sessions; empty keeps sessions in memory
  - SessionTTL: idle session lifetime (default: 30m)
  - CookieSecure: set the Secure attribute on the session cookie
  - AllowedOrigins: CORS allow list
  - LogLevel, LogFormat: see package logging

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-env           .env file (default: .env, ignored if missing)
	-redis         Redis address
	-session-ttl   Session lifetime (Go duration)
	-cookie-secure true/false
	-origins       Comma separated CORS origins
	-log-level     debug, info, warn, error
	-log-format    text, json

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	REDIS_ADDR      → -redis
	REDIS_PASSWORD  (env only)
	SESSION_TTL     → -session-ttl
	COOKIE_SECURE   → -cookie-secure
	ALLOWED_ORIGINS → -origins
	LOG_LEVEL       → -log-level
	LOG_FORMAT      → -log-format

CLI flags take precedence over environment variables. The .env file is
loaded with godotenv and never overrides variables already set.
*/
package cliparse
