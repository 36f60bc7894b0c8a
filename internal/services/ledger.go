// Package services provides orchestration above the stores: the ledger
// service fans transaction changes out to the export queue, and the
// reminder scanner decides when reminders are due.
package services

import (
	"context"

	"zenny/internal/core"
	"zenny/internal/events"
	"zenny/internal/log"
	"zenny/internal/store"
)

// SyncPublisher is the slice of the events client the ledger needs.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id, action string) error
}

// Ledger couples the transaction store with the export queue. The store
// stays authoritative: a publish failure never fails the mutation.
type Ledger struct {
	transactions *store.Transactions
	publisher    SyncPublisher
	logger       *log.Logger
}

func NewLedger(transactions *store.Transactions, publisher SyncPublisher, logger *log.Logger) *Ledger {
	return &Ledger{
		transactions: transactions,
		publisher:    publisher,
		logger:       logger,
	}
}

// Add records a transaction and announces it to the export worker.
func (l *Ledger) Add(ctx context.Context, t core.Transaction) core.Transaction {
	added := l.transactions.Add(t)

	l.logger.InfoContext(ctx, "Transaction recorded",
		log.FieldOperation, log.OpAdd,
		log.FieldRecordID, added.ID,
		log.FieldAmount, added.Amount,
		log.FieldCategory, added.Category)

	l.announce(ctx, added.ID, events.ActionAdded)
	return added
}

// Delete removes a transaction by id. Returns false when it does not
// exist; nothing is announced in that case.
func (l *Ledger) Delete(ctx context.Context, id string) bool {
	if !l.transactions.Delete(id) {
		return false
	}

	l.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldRecordID, id)

	l.announce(ctx, id, events.ActionDeleted)
	return true
}

func (l *Ledger) announce(ctx context.Context, id, action string) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.PublishTransactionSync(ctx, id, action); err != nil {
		l.logger.WarnContext(ctx, "Failed to publish sync message",
			log.FieldOperation, log.OpPublish,
			log.FieldRecordID, id,
			log.FieldError, err)
	}
}
