package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zenny/internal/config"
	"zenny/internal/core"
	"zenny/internal/events"
	"zenny/internal/kv"
	"zenny/internal/kv/sqlite"
	"zenny/internal/log"
	"zenny/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting reminder-worker", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	adapter, err := sqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer adapter.Close()

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPSyncQueue, cfg.AMQPReminderQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &kvReminderSource{adapter: adapter, logger: logger}
	scanner := services.NewReminderScanner(source, client, logger)

	logger.Info("Reminder scanner configured",
		"interval", cfg.ReminderScanInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ticker := time.NewTicker(cfg.ReminderScanInterval)
	defer ticker.Stop()

	// Run an initial scan on startup
	scanner.Scan(ctx, time.Now())

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				scanner.Scan(ctx, now)
			}
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("reminder-worker stopped", log.FieldOperation, log.OpShutdown)
}

// kvReminderSource re-reads the persisted reminder record on every scan,
// so reminders added by the app show up without a restart.
type kvReminderSource struct {
	adapter kv.Adapter
	logger  *log.Logger
}

func (s *kvReminderSource) List() []core.Reminder {
	raw, ok, err := s.adapter.Get(context.Background(), kv.KeyReminders)
	if err != nil {
		s.logger.Warn("Failed to read reminder record", log.FieldError, err)
		return nil
	}
	if !ok {
		return nil
	}

	var reminders []core.Reminder
	if err := json.Unmarshal([]byte(raw), &reminders); err != nil {
		s.logger.Warn("Corrupted reminder record, skipping scan", log.FieldError, err)
		return nil
	}
	return reminders
}
