package storage

import (
	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/ports"
)

// localStorage implements the ports.Storage interface on a key-value store.
type localStorage struct {
	kv      ports.KeyValueStore
	journal *journalRepository
	moods   *moodRepository
}

// Ensure localStorage implements ports.Storage.
var _ ports.Storage = (*localStorage)(nil)

// NewStorage wraps kv in the journal and mood repositories.
func NewStorage(kv ports.KeyValueStore, logger *zap.Logger) ports.Storage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &localStorage{
		kv:      kv,
		journal: newJournalRepository(kv, logger),
		moods:   newMoodRepository(kv, logger),
	}
}

// Journal returns the journal repository.
func (s *localStorage) Journal() ports.JournalRepository { return s.journal }

// Moods returns the mood repository.
func (s *localStorage) Moods() ports.MoodRepository { return s.moods }

// Close closes the underlying store.
func (s *localStorage) Close() error { return s.kv.Close() }
