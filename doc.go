// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Rank Poll API server.

Rank Poll runs a single poll over four fixed project ideas. Voters rank
the projects 1-4, the server turns ranks into weighted scores, and the
winner is revealed once the poll is ended.

# Starting the Server

With defaults (in-memory poll on port 3000):

	go run .

Or with flags:

	go run . -p 8080 -s redis -redis-addr localhost:6379

A .env file in the working directory is loaded first if present.

# Configuration

  - PORT (-p): Server port (default: 3000)
  - STORE_TYPE (-s): memory, redis, postgres or sqlite (default: memory)
  - DATABASE_URL (-d): required for postgres and sqlite
  - REDIS_ADDR (--redis-addr), REDIS_DB (--redis-db), REDIS_PASSWORD,
    REDIS_PREFIX (--redis-prefix): redis store settings
  - TIE_BREAK (--tie-break): declared or alphabetical (default: declared)
  - RESET_POLL (--reset): clear a shared store on startup

# Stores

The memory store keeps the poll in process: restarting resets it, and
every instance behind a load balancer runs its own poll. Use the redis,
postgres or sqlite store to share one poll between instances.

# Architecture

  - poll: aggregation, lifecycle, tie-break, memory store
  - handlers: GET/POST /api/vote
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - metrics: Prometheus collectors
  - models: request/response types
  - db, redisstore: shared stores
  - docs: OpenAPI spec for /swagger/
  - cliparse: configuration parsing
*/
package main
