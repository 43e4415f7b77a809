package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/ports"
)

// JSONStore implements ports.KeyValueStore as a single JSON document
// mapping each key to its raw value.
type JSONStore struct {
	filePath string
	logger   *zap.Logger
	mu       sync.RWMutex
	state    map[string]json.RawMessage
}

var _ ports.KeyValueStore = (*JSONStore)(nil)

// NewJSON opens the JSON document at filePath. A missing file starts empty;
// an unreadable one is moved aside to <file>.corrupt.
func NewJSON(filePath string, logger *zap.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &JSONStore{
		filePath: filePath,
		logger:   logger,
		state:    make(map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", s.filePath, err)
	}

	var state map[string]json.RawMessage
	if err := json.Unmarshal(data, &state); err != nil {
		aside := s.filePath + ".corrupt"
		s.logger.Warn("store document is corrupt, starting empty",
			zap.String("path", s.filePath),
			zap.String("moved_to", aside),
			zap.Error(err))
		if err := os.Rename(s.filePath, aside); err != nil {
			return fmt.Errorf("failed to move corrupt store aside: %w", err)
		}
		return nil
	}
	if state != nil {
		s.state = state
	}
	return nil
}

// Get returns the raw value stored under key.
func (s *JSONStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.state[key]
	if !ok {
		return "", false, nil
	}
	return string(raw), true, nil
}

// Put replaces the value stored under key and rewrites the document.
// A value that is not valid JSON is stored as a JSON string.
func (s *JSONStore) Put(_ context.Context, key, value string) error {
	raw := json.RawMessage(value)
	if !json.Valid(raw) {
		quoted, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		raw = quoted
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.state[key]
	s.state[key] = raw
	if err := s.persistLocked(); err != nil {
		if had {
			s.state[key] = prev
		} else {
			delete(s.state, key)
		}
		return err
	}
	return nil
}

// Close is a no-op; every Put is already on disk.
func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
