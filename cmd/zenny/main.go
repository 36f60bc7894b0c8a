package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"zenny/internal/config"
	"zenny/internal/events"
	apphttp "zenny/internal/http"
	"zenny/internal/kv"
	"zenny/internal/kv/memory"
	"zenny/internal/kv/sqlite"
	"zenny/internal/log"
	"zenny/internal/services"
	"zenny/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting zenny", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	// Choose the persistence backend
	var adapter kv.Adapter
	switch cfg.DataBackend {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer db.Close()
		adapter = db
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		adapter = memory.New()
		logger.Info("Initialized memory backend")
	}

	storeLogger := logger.WithComponent(log.ComponentStore)
	transactions := store.NewTransactions(adapter, storeLogger)
	goals := store.NewGoals(adapter, storeLogger)
	reminders := store.NewReminders(adapter, storeLogger)
	profile := store.NewProfile(adapter, storeLogger)

	// Hydrate all four stores before serving; each reads its own record
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error { transactions.Load(gctx); return nil })
	g.Go(func() error { goals.Load(gctx); return nil })
	g.Go(func() error { reminders.Load(gctx); return nil })
	g.Go(func() error { profile.Load(gctx); return nil })
	_ = g.Wait()
	loadCancel()

	// AMQP is optional; without it transactions simply do not sync out
	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPSyncQueue, cfg.AMQPReminderQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", log.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange)
		}
	} else {
		logger.Info("AMQP disabled - transactions will not sync to Google Sheets")
	}

	ledger := services.NewLedger(transactions, publisher, logger.WithComponent(log.ComponentApp))

	srv := apphttp.NewServer(":"+cfg.Port, ledger, transactions, goals, reminders, profile, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}

		// Drain pending snapshots before the process exits
		transactions.Flush()
		goals.Flush()
		reminders.Flush()
		profile.Flush()

		cancel()
	}()

	logger.Info("Starting zenny server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
