/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the facility reservation engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags, load YAML config
  2. Initialize SQLite store
  3. Build booking engine, stats service and notification pool
  4. Configure HTTP router, start the completion sweep
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML configuration file (optional; defaults apply without it)
  -port    HTTP server port (overrides config)
  -db      SQLite database path (overrides config)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the completion sweep and notification workers
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/facility.db"

  # Run with a config file
  ./server -config=./facility.yaml

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - config/config.go: YAML configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/warp/facility-engine/api"
	"github.com/warp/facility-engine/booking"
	"github.com/warp/facility-engine/config"
	"github.com/warp/facility-engine/notify"
	"github.com/warp/facility-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	// Initialize store
	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notification pool. Without VAPID keys events are drained and dropped.
	var options *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		options = &webpush.Options{
			Subscriber:      cfg.Push.Subject,
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			TTL:             cfg.Push.TTL,
		}
	}
	pool := notify.NewWorkerPool(cfg.WorkerPool.Size, store, options)
	pool.Start(ctx)

	// Booking engine with the deployment policy
	policy := booking.Policy{
		MinDuration:      cfg.Booking.MinDuration(),
		MaxDuration:      cfg.Booking.MaxDuration(),
		MaxDaysInAdvance: cfg.Booking.MaxDaysInAdvance,
	}
	engine := booking.NewEngine(store, policy, pool)
	stats := booking.NewStatsService(store)

	// Completion sweep
	scheduler := api.NewCompletionScheduler(engine, time.Duration(cfg.Booking.SweepIntervalMinutes)*time.Minute)
	go scheduler.Start(ctx)

	// Router
	handler := api.NewHandler(engine, stats, store, store)
	router := api.NewRouter(handler, api.RouterConfig{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Server.Port)
		log.Printf("API available at http://localhost:%d/api", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
