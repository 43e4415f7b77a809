package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// moodRepository implements ports.MoodRepository over the moodEntries list.
type moodRepository struct {
	list *listGateway[*domain.MoodEntry]
}

var _ ports.MoodRepository = (*moodRepository)(nil)

func newMoodRepository(kv ports.KeyValueStore, logger *zap.Logger) *moodRepository {
	return &moodRepository{list: newListGateway[*domain.MoodEntry](kv, ports.KeyMoodEntries, logger)}
}

// Load returns every mood entry, most recently logged first.
func (r *moodRepository) Load(ctx context.Context) ([]*domain.MoodEntry, error) {
	entries, err := r.list.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load moods: %w", err)
	}
	kept := entries[:0]
	for _, e := range entries {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// Upsert drops any entry for the same date and prepends the new one.
func (r *moodRepository) Upsert(ctx context.Context, entry *domain.MoodEntry) error {
	if err := domain.ValidateMood(entry.Mood); err != nil {
		return err
	}
	if _, err := domain.ParseDay(entry.Date); err != nil {
		return err
	}

	err := r.list.update(ctx, func(entries []*domain.MoodEntry) ([]*domain.MoodEntry, error) {
		c := *entry
		out := make([]*domain.MoodEntry, 0, len(entries)+1)
		out = append(out, &c)
		for _, e := range entries {
			if e != nil && e.Date != entry.Date {
				out = append(out, e)
			}
		}
		return out, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}
