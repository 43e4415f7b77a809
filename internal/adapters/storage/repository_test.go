package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/ports"
)

// engines returns a fresh storage per engine so every repository test runs
// against both backends.
func engines(t *testing.T) map[string]ports.Storage {
	t.Helper()
	out := make(map[string]ports.Storage)
	for _, engine := range []string{EngineSQLite, EngineJSON} {
		s, err := Open(engine, t.TempDir(), zap.NewNop())
		if err != nil {
			t.Fatalf("Open(%s) error = %v", engine, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		out[engine] = s
	}
	return out
}

func entry(id, emotion, response string, minute int) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:        id,
		Emotion:   emotion,
		Response:  response,
		Timestamp: time.Date(2024, 3, 1, 10, minute, 0, 0, time.UTC),
	}
}

func TestJournalRepository_AppendLoadDelete(t *testing.T) {
	for name, s := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := s.Journal()

			empty, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(empty) != 0 {
				t.Fatalf("Load() on a fresh store = %v, want empty", empty)
			}

			want := []*domain.JournalEntry{
				entry("a", "Anger", "first", 0),
				entry("b", "", "second", 1),
				entry("c", "Shyness - Social Scripts", "third", 2),
			}
			for _, e := range want {
				if err := repo.Append(ctx, e); err != nil {
					t.Fatalf("Append() error = %v", err)
				}
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}

			if err := repo.Delete(ctx, "b"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			got, _ = repo.Load(ctx)
			if diff := cmp.Diff([]*domain.JournalEntry{want[0], want[2]}, got); diff != "" {
				t.Errorf("after Delete() mismatch (-want +got):\n%s", diff)
			}

			if err := repo.Delete(ctx, "b"); !errors.Is(err, domain.ErrEntryNotFound) {
				t.Errorf("Delete() twice error = %v, want ErrEntryNotFound", err)
			}
		})
	}
}

func TestJournalRepository_DeleteByTimestampRef(t *testing.T) {
	s := NewStorage(mustMemory(t), nil)
	ctx := context.Background()

	legacy := entry("", "Anger", "no id", 5)
	_ = s.Journal().Append(ctx, legacy)
	_ = s.Journal().Append(ctx, entry("x", "Anger", "with id", 6))

	if err := s.Journal().Delete(ctx, legacy.Ref()); err != nil {
		t.Fatalf("Delete(%s) error = %v", legacy.Ref(), err)
	}
	got, _ := s.Journal().Load(ctx)
	if len(got) != 1 || got[0].ID != "x" {
		t.Errorf("Load() = %+v, want only entry x", got)
	}
}

func TestJournalRepository_MalformedValueIsEmpty(t *testing.T) {
	kv := mustMemory(t)
	ctx := context.Background()
	if err := kv.Put(ctx, ports.KeyJournalEntries, "{oops"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	core, logs := observer.New(zap.WarnLevel)
	s := NewStorage(kv, zap.New(core))

	got, err := s.Journal().Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d warnings, want 1", logs.Len())
	}

	// Appending replaces the malformed value with a valid list.
	if err := s.Journal().Append(ctx, entry("a", "", "fresh", 0)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	got, _ = s.Journal().Load(ctx)
	if len(got) != 1 {
		t.Errorf("Load() after Append() = %d entries, want 1", len(got))
	}
}

func TestMoodRepository_Upsert(t *testing.T) {
	for name, s := range engines(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := s.Moods()

			steps := []*domain.MoodEntry{
				{Date: "2024-03-01", Mood: 1},
				{Date: "2024-03-02", Mood: 3, Note: "walk"},
				{Date: "2024-03-01", Mood: 4},
			}
			for _, m := range steps {
				if err := repo.Upsert(ctx, m); err != nil {
					t.Fatalf("Upsert() error = %v", err)
				}
			}

			got, err := repo.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			want := []*domain.MoodEntry{
				{Date: "2024-03-01", Mood: 4},
				{Date: "2024-03-02", Mood: 3, Note: "walk"},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoodRepository_UpsertValidates(t *testing.T) {
	s := NewStorage(mustMemory(t), nil)
	ctx := context.Background()

	if err := s.Moods().Upsert(ctx, &domain.MoodEntry{Date: "2024-03-01", Mood: 7}); !errors.Is(err, domain.ErrInvalidMood) {
		t.Errorf("Upsert(mood 7) error = %v, want ErrInvalidMood", err)
	}
	if err := s.Moods().Upsert(ctx, &domain.MoodEntry{Date: "March 1", Mood: 2}); !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("Upsert(bad date) error = %v, want ErrInvalidDate", err)
	}
}

func TestListsAreIndependent(t *testing.T) {
	s := NewStorage(mustMemory(t), nil)
	ctx := context.Background()

	_ = s.Moods().Upsert(ctx, &domain.MoodEntry{Date: "2024-03-01", Mood: 2})
	journal, _ := s.Journal().Load(ctx)
	if len(journal) != 0 {
		t.Errorf("journal = %v, want empty after a mood write", journal)
	}
}

func mustMemory(t *testing.T) *SQLiteStore {
	t.Helper()
	kv, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}
