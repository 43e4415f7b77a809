// Package domain contains the core entities for calm.
// These entities describe what survives between sessions (journal and mood
// entries) and the static emotion data, and are independent of any storage
// or presentation concerns.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmotionNotFound  = errors.New("emotion not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrEntryNotFound    = errors.New("journal entry not found")
	ErrEmptyEntry       = errors.New("journal entry cannot be empty")
	ErrInvalidMood      = errors.New("mood must be between 0 and 4")
	ErrInvalidDate      = errors.New("invalid calendar date")
	ErrTimerRunning     = errors.New("timer is running")
)

// JournalEntry is a timestamped reflection persisted to the local journal.
// Entries are never edited after creation; they are only appended or deleted.
type JournalEntry struct {
	ID        string    `json:"id" yaml:"id"`
	Emotion   string    `json:"emotion,omitempty" yaml:"emotion,omitempty"`
	Response  string    `json:"response" yaml:"response"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewJournalEntry creates a journal entry stamped with the current time.
func NewJournalEntry(emotion, response string) (*JournalEntry, error) {
	if strings.TrimSpace(response) == "" {
		return nil, ErrEmptyEntry
	}
	return &JournalEntry{
		ID:        generateID(),
		Emotion:   emotion,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Ref returns the identifier used to address the entry. Entries written
// without an id fall back to a reference derived from their timestamp.
func (e *JournalEntry) Ref() string {
	if e.ID != "" {
		return e.ID
	}
	return fmt.Sprintf("ts-%d", e.Timestamp.UnixMilli())
}

// Title returns the emotion label, or "Personal Entry" for manual entries.
func (e *JournalEntry) Title() string {
	if e.Emotion == "" {
		return "Personal Entry"
	}
	return e.Emotion
}

// Clone returns a copy of the entry.
func (e *JournalEntry) Clone() *JournalEntry {
	c := *e
	return &c
}
