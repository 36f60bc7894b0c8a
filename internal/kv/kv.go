// Package kv defines the key-value persistence port the stores write
// through. Implementations live in subpackages; callers treat a missing
// key and a failed read the same way.
package kv

import "context"

// Adapter is the outbound port for durable key-value storage. Both
// operations may fail; the stores degrade to in-memory state when they do.
type Adapter interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key, value string) error
}

// The four persisted records. Each key is owned exclusively by one store.
const (
	KeyTransactions = "zenny_transactions"
	KeyGoals        = "zenny_goals"
	KeyReminders    = "zenny_reminders"
	KeyUser         = "zenny_user"
)
