package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"zenny/internal/core"
	"zenny/internal/kv"
	"zenny/internal/log"
)

// Transactions holds the income/expense ledger, newest first.
type Transactions struct {
	p *persister

	mu     sync.RWMutex
	items  []core.Transaction
	loaded bool
	rev    int64
}

func NewTransactions(adapter kv.Adapter, logger *log.Logger) *Transactions {
	return &Transactions{p: newPersister(adapter, kv.KeyTransactions, logger)}
}

// Load performs the one-time initial read. It never fails: a missing,
// unreadable or undecodable record yields an empty ledger. Mutations made
// before Load completes are kept in memory but not persisted, so a slow
// load can never be overwritten by an empty snapshot.
func (s *Transactions) Load(ctx context.Context) {
	var items []core.Transaction
	if raw, ok := s.p.load(ctx); ok {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.p.logger.WarnContext(ctx, "Discarding undecodable record",
				log.FieldOperation, log.OpLoad,
				log.FieldError, err)
			items = nil
		}
	}

	s.mu.Lock()
	// Mutations that raced the load win over the stored record.
	if len(s.items) == 0 {
		s.items = items
	}
	s.loaded = true
	s.rev++
	s.mu.Unlock()
}

// Add prepends a transaction and returns it with its assigned ID.
func (s *Transactions) Add(t core.Transaction) core.Transaction {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	s.mu.Lock()
	items := make([]core.Transaction, 0, len(s.items)+1)
	items = append(items, t)
	items = append(items, s.items...)
	s.items = items
	s.rev++
	s.persistLocked()
	s.mu.Unlock()

	return t
}

// Delete removes the transaction with the given id. Returns false when no
// such transaction exists; nothing is persisted in that case.
func (s *Transactions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]core.Transaction, 0, len(s.items))
	found := false
	for _, t := range s.items {
		if t.ID == id {
			found = true
			continue
		}
		items = append(items, t)
	}
	if !found {
		return false
	}

	s.items = items
	s.rev++
	s.persistLocked()
	return true
}

// List returns a snapshot of the ledger, newest first. The returned slice
// is the caller's to keep; later mutations never touch it.
func (s *Transactions) List() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

// Revision increases on every state change. Used as a cache-busting key
// by the API layer.
func (s *Transactions) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// Flush waits for in-flight writes. Call at shutdown.
func (s *Transactions) Flush() {
	s.p.wait()
}

func (s *Transactions) persistLocked() {
	if !s.loaded {
		return
	}
	snapshot := make([]core.Transaction, len(s.items))
	copy(snapshot, s.items)
	s.p.flush(snapshot)
}
