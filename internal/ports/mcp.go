package ports

import (
	"context"

	"github.com/xvierd/calm-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider provides state and actions to the MCP server.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	// GetCurrentState returns today's mood and journal totals.
	GetCurrentState(ctx context.Context) (*domain.CurrentState, error)

	// ListEmotions returns the emotion catalog.
	ListEmotions(ctx context.Context) ([]*domain.Emotion, error)

	// GetEmotion returns one emotion by id.
	GetEmotion(ctx context.Context, id string) (*domain.Emotion, error)

	// ListJournalEntries returns up to limit entries, newest first.
	ListJournalEntries(ctx context.Context, limit int) ([]*domain.JournalEntry, error)

	// AddJournalEntry stores a free-form entry.
	AddJournalEntry(ctx context.Context, emotion, text string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes one entry by id.
	DeleteJournalEntry(ctx context.Context, ref string) error

	// LogMood records today's mood.
	LogMood(ctx context.Context, mood int, note string) (*domain.MoodEntry, error)

	// GetMoodSummary returns the weekly mood summary.
	GetMoodSummary(ctx context.Context) (*domain.MoodSummary, error)

	// Chat returns the supportive reply for a message.
	Chat(ctx context.Context, message string) string
}
