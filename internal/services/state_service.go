package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xvierd/calm-cli/internal/chat"
	"github.com/xvierd/calm-cli/internal/domain"
	"github.com/xvierd/calm-cli/internal/emotions"
	"github.com/xvierd/calm-cli/internal/ports"
)

// StateService implements the MCPStateProvider interface.
type StateService struct {
	journal *JournalService
	moods   *MoodService
}

// NewStateService creates a new state service.
func NewStateService(journal *JournalService, moods *MoodService) *StateService {
	return &StateService{journal: journal, moods: moods}
}

// GetCurrentState implements ports.MCPStateProvider.
func (s *StateService) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	entries, err := s.journal.List(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.moods.Summary(ctx)
	if err != nil {
		return nil, err
	}

	state := &domain.CurrentState{
		TodayMood:    summary.Today,
		JournalCount: len(entries),
		WeekAverage:  summary.Average,
		MoodEntries:  summary.Entries,
	}
	if len(entries) > 0 {
		state.LatestEntry = entries[0]
	}
	return state, nil
}

// ListEmotions implements ports.MCPStateProvider.
func (s *StateService) ListEmotions(_ context.Context) ([]*domain.Emotion, error) {
	return emotions.All(), nil
}

// GetEmotion implements ports.MCPStateProvider.
func (s *StateService) GetEmotion(_ context.Context, id string) (*domain.Emotion, error) {
	e, err := emotions.Find(strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		if hints := emotions.Suggest(id); len(hints) > 0 {
			return nil, fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hints, ", "))
		}
		return nil, err
	}
	return e, nil
}

// ListJournalEntries implements ports.MCPStateProvider.
func (s *StateService) ListJournalEntries(ctx context.Context, limit int) ([]*domain.JournalEntry, error) {
	return s.journal.Latest(ctx, limit)
}

// AddJournalEntry implements ports.MCPStateProvider.
func (s *StateService) AddJournalEntry(ctx context.Context, emotion, text string) (*domain.JournalEntry, error) {
	return s.journal.Add(ctx, emotion, text)
}

// DeleteJournalEntry implements ports.MCPStateProvider.
func (s *StateService) DeleteJournalEntry(ctx context.Context, ref string) error {
	return s.journal.Delete(ctx, ref)
}

// LogMood implements ports.MCPStateProvider.
func (s *StateService) LogMood(ctx context.Context, mood int, note string) (*domain.MoodEntry, error) {
	return s.moods.Log(ctx, mood, note)
}

// GetMoodSummary implements ports.MCPStateProvider.
func (s *StateService) GetMoodSummary(ctx context.Context) (*domain.MoodSummary, error) {
	return s.moods.Summary(ctx)
}

// Chat implements ports.MCPStateProvider.
func (s *StateService) Chat(_ context.Context, message string) string {
	return chat.Reply(message)
}

// Ensure StateService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)
