// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Rank Poll API.

# Route Registration

	mux := router.NewRouter(agg)

# Endpoints

	GET  /health      - Liveness check
	GET  /api/vote    - Current results
	POST /api/vote    - Submit a vote, or end the poll with {"action": "end_poll"}
	GET  /metrics     - Prometheus metrics
	GET  /swagger/    - API docs
	GET  /            - Version banner

The vote routes are wrapped with middleware.WithLogging. CORS is applied
to the whole mux in main.
*/
package router
