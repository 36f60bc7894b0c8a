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

// Goals holds the savings goals, newest first.
type Goals struct {
	p *persister

	mu     sync.RWMutex
	items  []core.Goal
	loaded bool
}

func NewGoals(adapter kv.Adapter, logger *log.Logger) *Goals {
	return &Goals{p: newPersister(adapter, kv.KeyGoals, logger)}
}

// Load performs the one-time initial read; see Transactions.Load for the
// failure policy.
func (s *Goals) Load(ctx context.Context) {
	var items []core.Goal
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

// Add prepends a goal. The saved amount always starts at zero regardless
// of what the caller sent; ID, CreatedAt and Icon are filled in when
// missing.
func (s *Goals) Add(g core.Goal) core.Goal {
	g.CurrentAmount = 0
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	if g.Icon == "" {
		g.Icon = core.GoalIcon(g.Category)
	}

	s.mu.Lock()
	items := make([]core.Goal, 0, len(s.items)+1)
	items = append(items, g)
	items = append(items, s.items...)
	s.items = items
	s.persistLocked()
	s.mu.Unlock()

	return g
}

// Delete removes the goal with the given id.
func (s *Goals) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]core.Goal, 0, len(s.items))
	found := false
	for _, g := range s.items {
		if g.ID == id {
			found = true
			continue
		}
		items = append(items, g)
	}
	if !found {
		return false
	}

	s.items = items
	s.persistLocked()
	return true
}

// AddSavings deposits amount into a goal. The saved amount is clamped to
// the target; overshooting deposits fill the goal exactly. Negative
// amounts are rejected so the 0 <= current <= target invariant holds for
// every call sequence.
func (s *Goals) AddSavings(id string, amount int64) (core.Goal, error) {
	if amount < 0 {
		return core.Goal{}, core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, g := range s.items {
		if g.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Goal{}, core.ErrNotFound
	}

	items := make([]core.Goal, len(s.items))
	copy(items, s.items)
	g := items[idx]
	g.CurrentAmount = min(g.CurrentAmount+amount, g.TargetAmount)
	items[idx] = g

	s.items = items
	s.persistLocked()
	return g, nil
}

// List returns a snapshot of the goals, newest first.
func (s *Goals) List() []core.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Goal, len(s.items))
	copy(out, s.items)
	return out
}

// Flush waits for in-flight writes. Call at shutdown.
func (s *Goals) Flush() {
	s.p.wait()
}

func (s *Goals) persistLocked() {
	if !s.loaded {
		return
	}
	snapshot := make([]core.Goal, len(s.items))
	copy(snapshot, s.items)
	s.p.flush(snapshot)
}
