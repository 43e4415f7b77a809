package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/ports"
)

// Supported storage engines.
const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
)

// File names inside the data directory.
const (
	SQLiteFile = "calm.db"
	JSONFile   = "calm.json"
)

// NewByEngine opens the key-value store for engine inside dataDir.
func NewByEngine(engine, dataDir string, logger *zap.Logger) (ports.KeyValueStore, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return NewSQLite(filepath.Join(dataDir, SQLiteFile))
	case EngineJSON:
		return NewJSON(filepath.Join(dataDir, JSONFile), logger)
	default:
		return nil, fmt.Errorf("unsupported storage engine: %s", engine)
	}
}

// Open opens the store for engine and wraps it in the list repositories.
func Open(engine, dataDir string, logger *zap.Logger) (ports.Storage, error) {
	kv, err := NewByEngine(engine, dataDir, logger)
	if err != nil {
		return nil, err
	}
	return NewStorage(kv, logger), nil
}
