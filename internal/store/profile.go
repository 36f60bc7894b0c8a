package store

import (
	"context"
	"encoding/json"
	"sync"

	"zenny/internal/core"
	"zenny/internal/kv"
	"zenny/internal/log"
)

// Profile holds the singleton user profile record.
type Profile struct {
	p *persister

	mu      sync.RWMutex
	current core.UserProfile
	loaded  bool
	saved   bool // a save happened before Load finished
}

func NewProfile(adapter kv.Adapter, logger *log.Logger) *Profile {
	return &Profile{
		p:       newPersister(adapter, kv.KeyUser, logger),
		current: core.DefaultProfile(),
	}
}

// Load performs the one-time initial read. A missing or undecodable
// record leaves the hardcoded default profile in place.
func (s *Profile) Load(ctx context.Context) {
	profile := core.DefaultProfile()
	if raw, found := s.p.load(ctx); found {
		var stored core.UserProfile
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			s.p.logger.WarnContext(ctx, "Discarding undecodable record",
				log.FieldOperation, log.OpLoad,
				log.FieldError, err)
		} else {
			profile = stored
		}
	}

	s.mu.Lock()
	if !s.saved {
		s.current = profile
	}
	s.loaded = true
	s.mu.Unlock()
}

// Get returns the current profile.
func (s *Profile) Get() core.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save replaces the profile wholesale.
func (s *Profile) Save(profile core.UserProfile) {
	s.mu.Lock()
	s.current = profile
	s.saved = true
	if s.loaded {
		s.p.flush(profile)
	}
	s.mu.Unlock()
}

// Flush waits for in-flight writes. Call at shutdown.
func (s *Profile) Flush() {
	s.p.wait()
}
