// Package memory provides an in-memory kv.Adapter for development and
// tests. Data is lost on restart.
package memory

import (
	"context"
	"sync"
)

type Adapter struct {
	mu   sync.Mutex
	data map[string]string
}

func New() *Adapter {
	return &Adapter{data: make(map[string]string)}
}

// Seed pre-populates a key, bypassing Set. Useful for tests that need a
// record to exist before a store loads.
func (a *Adapter) Seed(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[key] = value
}

func (a *Adapter) Get(_ context.Context, key string) (string, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.data[key]
	return v, ok, nil
}

func (a *Adapter) Set(_ context.Context, key, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data[key] = value
	return nil
}
