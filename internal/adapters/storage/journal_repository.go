package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// journalRepository implements ports.JournalRepository over the
// journalEntries list.
type journalRepository struct {
	list *listGateway[*domain.JournalEntry]
}

var _ ports.JournalRepository = (*journalRepository)(nil)

func newJournalRepository(kv ports.KeyValueStore, logger *zap.Logger) *journalRepository {
	return &journalRepository{list: newListGateway[*domain.JournalEntry](kv, ports.KeyJournalEntries, logger)}
}

// Append adds an entry to the end of the list.
func (r *journalRepository) Append(ctx context.Context, entry *domain.JournalEntry) error {
	err := r.list.update(ctx, func(entries []*domain.JournalEntry) ([]*domain.JournalEntry, error) {
		return append(entries, entry.Clone()), nil
	})
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// Load returns every entry in append order.
func (r *journalRepository) Load(ctx context.Context) ([]*domain.JournalEntry, error) {
	entries, err := r.list.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal: %w", err)
	}
	kept := entries[:0]
	for _, e := range entries {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// Delete removes the first entry whose Ref matches, keeping the others in
// order.
func (r *journalRepository) Delete(ctx context.Context, ref string) error {
	return r.list.update(ctx, func(entries []*domain.JournalEntry) ([]*domain.JournalEntry, error) {
		for i, e := range entries {
			if e != nil && e.Ref() == ref {
				return append(entries[:i], entries[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, ref)
	})
}
