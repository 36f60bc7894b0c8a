package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"zenny/internal/core"
	"zenny/internal/kv"
	"zenny/internal/log"
)

// Reminders holds the bill and subscription reminders, newest first.
type Reminders struct {
	p *persister

	mu     sync.RWMutex
	items  []core.Reminder
	loaded bool
}

func NewReminders(adapter kv.Adapter, logger *log.Logger) *Reminders {
	return &Reminders{p: newPersister(adapter, kv.KeyReminders, logger)}
}

// Load performs the one-time initial read; see Transactions.Load for the
// failure policy.
func (s *Reminders) Load(ctx context.Context) {
	var items []core.Reminder
	if raw, ok := s.p.load(ctx); ok {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.p.logger.WarnContext(ctx, "Discarding undecodable record",
				log.FieldOperation, log.OpLoad,
				log.FieldError, err)
			items = nil
		}
	}

	s.mu.Lock()
	if len(s.items) == 0 {
		s.items = items
	}
	s.loaded = true
	s.mu.Unlock()
}

// Add prepends a reminder. New reminders are always unpaid; ID and
// CreatedAt are filled in when missing.
func (s *Reminders) Add(r core.Reminder) core.Reminder {
	r.Paid = false
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	s.mu.Lock()
	items := make([]core.Reminder, 0, len(s.items)+1)
	items = append(items, r)
	items = append(items, s.items...)
	s.items = items
	s.persistLocked()
	s.mu.Unlock()

	return r
}

// Delete removes the reminder with the given id.
func (s *Reminders) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]core.Reminder, 0, len(s.items))
	found := false
	for _, r := range s.items {
		if r.ID == id {
			found = true
			continue
		}
		items = append(items, r)
	}
	if !found {
		return false
	}

	s.items = items
	s.persistLocked()
	return true
}

// MarkPaid sets a reminder's paid flag. The transition is one-way and
// idempotent: marking an already-paid reminder succeeds and leaves it paid.
func (s *Reminders) MarkPaid(id string) (core.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.items {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Reminder{}, core.ErrNotFound
	}

	items := make([]core.Reminder, len(s.items))
	copy(items, s.items)
	items[idx].Paid = true

	s.items = items
	s.persistLocked()
	return items[idx], nil
}

// List returns a snapshot of the reminders, newest first.
func (s *Reminders) List() []core.Reminder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Reminder, len(s.items))
	copy(out, s.items)
	return out
}

// Flush waits for in-flight writes. Call at shutdown.
func (s *Reminders) Flush() {
	s.p.wait()
}

func (s *Reminders) persistLocked() {
	if !s.loaded {
		return
	}
	snapshot := make([]core.Reminder, len(s.items))
	copy(snapshot, s.items)
	s.p.flush(snapshot)
}
