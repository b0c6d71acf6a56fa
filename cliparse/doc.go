// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p               Server port (default: 3000)
	-s               Store: memory, redis, postgres, sqlite (default: memory)
	-d               Database URL (postgres and sqlite stores)
	-redis-addr      Redis address (default: localhost:6379)
	-redis-db        Redis database number
	-redis-prefix    Key prefix (default: rankpoll)
	-tie-break       declared or alphabetical (default: declared)
	-reset           Clear the shared store on startup

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	STORE_TYPE     → -s
	DATABASE_URL   → -d
	REDIS_ADDR     → -redis-addr
	REDIS_DB       → -redis-db
	REDIS_PASSWORD (env only)
	REDIS_PREFIX   → -redis-prefix
	TIE_BREAK      → -tie-break
	RESET_POLL     → -reset

CLI flags take precedence over environment variables.

# Validation

The parsed Config is checked with go-playground/validator:

  - STORE_TYPE must be one of the four stores
  - DATABASE_URL is required for postgres and sqlite
  - REDIS_ADDR is required for redis
  - TIE_BREAK must be declared or alphabetical
*/
package cliparse
