/*
main.go - Application entry point

PURPOSE:
  Starts the payroll HTTP server. Handles configuration, dependency
  injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and environment configuration, apply flag overrides
  2. Configure logging
  3. Initialize SQLite store and rate schedule
  4. Create processor, handler and router
  5. Start the pay-day scheduler if enabled
  6. Serve until SIGINT/SIGTERM

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides APP_ADDR)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for in-memory database
  -env     .env file to load (default: .env, skipped if missing)

ENVIRONMENT:
  See config/config.go for the full list (APP_ADDR, DB_PATH, LOG_LEVEL,
  COMPANY_NAME, RATE_SCHEDULE_FILE, SCHEDULER_ENABLED, PAY_DAY, ...).

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/waymongoh96-sys/Way-Pay-Database-1/api"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/config"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/logger"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/payroll"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/statutory"
	"github.com/waymongoh96-sys/Way-Pay-Database-1/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	port := flag.Int("port", 0, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path")
	envFile := flag.String("env", ".env", "Environment file")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		return err
	}
	cfg := config.Load()
	if *port != 0 {
		cfg.Addr = fmt.Sprintf(":%d", *port)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	closer, err := logger.Setup(cfg.LogConfig())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	schedule, err := cfg.Schedule()
	if err != nil {
		return fmt.Errorf("failed to load rate schedule: %w", err)
	}

	processor := payroll.NewProcessor(store, statutory.NewCalculator(schedule))
	processor.Company = cfg.Company()
	processor.Workers = cfg.RunWorkers
	processor.Logger = logger.WithComponent("payroll")

	handler := api.NewHandler(processor)
	handler.Logger = logger.WithComponent("http")
	router := api.NewRouter(handler, cfg.CORSOrigins)

	var scheduler *api.RunScheduler
	if cfg.SchedulerEnabled {
		scheduler = api.NewRunScheduler(processor)
		scheduler.CheckInterval = cfg.SchedulerInterval
		scheduler.PayDay = cfg.PayDay
		scheduler.Logger = logger.WithComponent("scheduler")
		scheduler.Start()
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("db", cfg.DBPath).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
