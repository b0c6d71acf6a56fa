// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/danielhkuo/rank-poll/docs" // Registers the swagger spec
	"github.com/danielhkuo/rank-poll/handlers"
	"github.com/danielhkuo/rank-poll/middleware"
	"github.com/danielhkuo/rank-poll/poll"
)

func NewRouter(agg *poll.Aggregator) *http.ServeMux {
	mux := http.NewServeMux()

	voteHandler := handlers.NewVoteHandler(agg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll
	mux.HandleFunc("GET /api/vote", middleware.WithLogging(voteHandler.GetResults))
	mux.HandleFunc("POST /api/vote", middleware.WithLogging(voteHandler.PostVote))

	// Observability and API docs
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rank-poll API v1"))
	})

	return mux
}
