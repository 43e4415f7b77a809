// Package ports defines the interfaces (driven and driving ports)
// for the calm application. Adapters implement them; services and the
// engines depend only on these contracts.
package ports

import (
	"context"

	"github.com/xvierd/calm-cli/internal/domain"
)

// Storage keys of the two persisted lists.
const (
	KeyJournalEntries = "journalEntries"
	KeyMoodEntries    = "moodEntries"
)

// KeyValueStore is the raw local store holding one JSON document per key.
// This is a driven port (implemented by adapters).
type KeyValueStore interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put replaces the value stored under key.
	Put(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// JournalAppender accepts completed journal entries.
// The flow engine writes through this port.
type JournalAppender interface {
	Append(ctx context.Context, entry *domain.JournalEntry) error
}

// JournalRepository persists the journalEntries list.
type JournalRepository interface {
	JournalAppender

	// Load returns every entry in stored (append) order.
	Load(ctx context.Context) ([]*domain.JournalEntry, error)

	// Delete removes the single entry whose Ref matches.
	Delete(ctx context.Context, ref string) error
}

// MoodRepository persists the moodEntries list.
type MoodRepository interface {
	// Load returns every entry, most recently logged first.
	Load(ctx context.Context) ([]*domain.MoodEntry, error)

	// Upsert replaces any entry for the same date and prepends the new one.
	Upsert(ctx context.Context, entry *domain.MoodEntry) error
}

// Storage is the combined repository interface.
type Storage interface {
	Journal() JournalRepository
	Moods() MoodRepository
	Close() error
}

// Notifier sends desktop notifications.
type Notifier interface {
	Notify(title, message string) error
}
