// Package store implements the four persisted state stores: transactions,
// goals, reminders and the user profile. Each store owns one key in the
// kv adapter, loads it once at startup and persists a full JSON snapshot
// after every mutation.
//
// Persistence is write-behind: mutations return immediately and the
// snapshot is written in the background. A failed or unreadable record
// degrades to empty/default state; a failed write is logged and dropped,
// the in-memory state stays authoritative for the session.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"zenny/internal/kv"
	"zenny/internal/log"
)

// persister owns one kv key and flushes snapshots behind the caller.
// Pending snapshots coalesce: if mutations outrun the adapter, only the
// newest snapshot is written, which is safe because every snapshot holds
// the complete collection.
type persister struct {
	adapter kv.Adapter
	key     string
	logger  *log.Logger

	mu       sync.Mutex
	pending  *string
	flushing bool
	wg       sync.WaitGroup
}

func newPersister(adapter kv.Adapter, key string, logger *log.Logger) *persister {
	return &persister{
		adapter: adapter,
		key:     key,
		logger:  logger.With(log.FieldStoreKey, key),
	}
}

// load reads the raw record. A missing key and a read failure look the
// same to callers; the stores fall back to their default state either way.
func (p *persister) load(ctx context.Context) (string, bool) {
	value, ok, err := p.adapter.Get(ctx, p.key)
	if err != nil {
		p.logger.WarnContext(ctx, "Read failed, starting from default state",
			log.FieldOperation, log.OpLoad,
			log.FieldError, err)
		return "", false
	}
	return value, ok
}

// flush marshals v and schedules it for writing. Never blocks on the
// adapter and never reports an error to the caller.
func (p *persister) flush(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		// Unreachable for the domain types; kept so a future type change
		// cannot silently corrupt the record.
		p.logger.Error("Snapshot marshal failed, write dropped",
			log.FieldOperation, log.OpPersist,
			log.FieldError, err)
		return
	}

	s := string(payload)
	p.mu.Lock()
	p.pending = &s
	if !p.flushing {
		p.flushing = true
		p.wg.Add(1)
		go p.run()
	}
	p.mu.Unlock()
}

func (p *persister) run() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		if p.pending == nil {
			p.flushing = false
			p.mu.Unlock()
			return
		}
		payload := *p.pending
		p.pending = nil
		p.mu.Unlock()

		if err := p.adapter.Set(context.Background(), p.key, payload); err != nil {
			p.logger.Warn("Write failed, keeping in-memory state",
				log.FieldOperation, log.OpPersist,
				log.FieldError, err)
		}
	}
}

// wait blocks until all scheduled writes have settled.
func (p *persister) wait() {
	p.wg.Wait()
}
