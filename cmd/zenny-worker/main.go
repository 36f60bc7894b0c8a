package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"zenny/internal/config"
	"zenny/internal/core"
	"zenny/internal/events"
	"zenny/internal/export/sheets"
	"zenny/internal/kv"
	"zenny/internal/kv/sqlite"
	"zenny/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting zenny-worker", log.FieldOperation, log.OpStartup)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	// The worker reads the shared SQLite record to resolve transaction ids
	adapter, err := sqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer adapter.Close()

	var exporter *sheets.Client
	if cfg.GoogleSpreadsheetID != "" {
		exporter, err = sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
		os.Exit(0)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPSyncQueue, cfg.AMQPReminderQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := &syncHandler{adapter: adapter, exporter: exporter, logger: logger}

	go func() {
		if err := client.ConsumeTransactionSync(ctx, handler.handle); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", log.FieldError, err)
			}
			cancel()
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

	logger.Info("zenny-worker stopped", log.FieldOperation, log.OpShutdown)
}

// syncHandler applies one sync message to the spreadsheet. Additions
// resolve the full record from the shared ledger; deletions only need
// the id.
type syncHandler struct {
	adapter  kv.Adapter
	exporter *sheets.Client
	logger   *log.Logger
}

func (h *syncHandler) handle(msg *events.TransactionSyncMessage) error {
	ctx := context.Background()

	switch msg.Action {
	case events.ActionAdded:
		t, err := h.lookup(ctx, msg.ID)
		if err != nil {
			return err
		}
		return h.exporter.AppendTransaction(ctx, t)
	case events.ActionDeleted:
		return h.exporter.RemoveTransaction(ctx, msg.ID)
	default:
		h.logger.Warn("Unknown sync action, dropping message",
			log.FieldRecordID, msg.ID, "action", msg.Action)
		return nil
	}
}

// lookup finds a transaction by id in the persisted ledger record.
func (h *syncHandler) lookup(ctx context.Context, id string) (core.Transaction, error) {
	raw, ok, err := h.adapter.Get(ctx, kv.KeyTransactions)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read ledger record: %w", err)
	}
	if !ok {
		return core.Transaction{}, fmt.Errorf("ledger record missing, transaction %s not found", id)
	}

	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		return core.Transaction{}, fmt.Errorf("decode ledger record: %w", err)
	}
	for _, t := range txs {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s not found in ledger", id)
}
