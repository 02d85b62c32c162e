// Package main runs the trading journal HTTP service: daily schedules,
// hourly sessions with penalty tracking, on-demand statistics, and the
// decorative market-cap feed for the dashboard background.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"trading-journal/internal/api"
	"trading-journal/internal/journal"
	"trading-journal/internal/marketcap"
	"trading-journal/internal/observability"
	"trading-journal/internal/stats"
	"trading-journal/internal/storage"
	"trading-journal/internal/storage/memory"
	"trading-journal/internal/storage/migrations"
	"trading-journal/internal/storage/postgres"
)

func main() {
	// Load .env file if exists; system env vars win.
	_ = godotenv.Load()

	// Parse flags (env vars as defaults)
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	addr := flag.String("addr", envOr("HTTP_ADDR", ":8080"), "HTTP listen address")
	timezone := flag.String("timezone", envOr("JOURNAL_TIMEZONE", "UTC"), "IANA timezone used to derive today's date for statistics")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		logger.Fatalf("Invalid timezone %q: %v", *timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create stores
	schedules, sessions, cleanup, err := createStores(ctx, *postgresDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer, "")
	service := journal.NewService(schedules, sessions)
	aggregator := stats.NewAggregator(sessions)
	markets := marketcap.NewClient(logger)

	server := api.NewServer(service, aggregator, markets, metrics, logger, loc)

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		<-ctx.Done()
		logger.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("Listening on %s (timezone %s)", *addr, loc)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the schedule and session stores, applying embedded
// migrations when backed by PostgreSQL.
func createStores(ctx context.Context, dsn string, useMemory bool) (storage.ScheduleStore, storage.SessionStore, func(), error) {
	if useMemory {
		return memory.NewScheduleStore(), memory.NewSessionStore(), func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	return postgres.NewScheduleStore(pool), postgres.NewSessionStore(pool), pool.Close, nil
}

// envOr returns the env var value or the fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
