package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/rank-poll/cliparse"
	"github.com/danielhkuo/rank-poll/db"
	"github.com/danielhkuo/rank-poll/metrics"
	"github.com/danielhkuo/rank-poll/middleware"
	"github.com/danielhkuo/rank-poll/poll"
	"github.com/danielhkuo/rank-poll/redisstore"
	"github.com/danielhkuo/rank-poll/router"
)

// resettable stores can be cleared on startup
type resettable interface {
	Reset(ctx context.Context) error
}

//	@title			Rank Poll API
//	@version		1.0
//	@description	Single ranked poll over four project ideas.
//	@BasePath		/
func main() {
	var err error

	// Load .env if present; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Build the vote store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("store setup failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if r, ok := store.(resettable); ok && cfg.ResetOnStart {
		if err := r.Reset(ctx); err != nil {
			slog.Error("store reset failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Poll reset")
	}
	slog.Info("Vote store ready", "store", cfg.StoreType)

	tieBreak, err := poll.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		slog.Error("invalid tie-break", "error", err)
		os.Exit(1)
	}
	agg := poll.NewAggregator(store, poll.WithTieBreak(tieBreak))

	if res, err := agg.Results(ctx); err == nil {
		metrics.SetPollActive(res.IsPollActive)
	}

	// Create router
	mux := router.NewRouter(agg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured store and a func that releases it
func openStore(ctx context.Context, cfg cliparse.Config) (poll.Store, func(), error) {
	switch cfg.StoreType {
	case cliparse.StoreRedis:
		rdb, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.New(rdb, cfg.RedisPrefix), func() { rdb.Close() }, nil

	case cliparse.StorePostgres, cliparse.StoreSQLite:
		conn, err := db.Open(ctx, cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db.NewStore(conn), func() { conn.Close() }, nil

	default:
		// Process-local poll; each instance has its own
		return poll.NewMemoryStore(), func() {}, nil
	}
}
