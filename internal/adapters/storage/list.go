package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/xvierd/calm-cli/internal/ports"
)

// listGateway reads and rewrites one JSON array stored under a key. Every
// read decodes the whole list and every write replaces it.
type listGateway[T any] struct {
	kv     ports.KeyValueStore
	key    string
	logger *zap.Logger
	mu     sync.Mutex
}

func newListGateway[T any](kv ports.KeyValueStore, key string, logger *zap.Logger) *listGateway[T] {
	return &listGateway[T]{kv: kv, key: key, logger: logger}
}

// load returns the stored list. An absent or malformed value is an empty
// list; only a failing store is an error.
func (g *listGateway[T]) load(ctx context.Context) ([]T, error) {
	raw, ok, err := g.kv.Get(ctx, g.key)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		g.logger.Warn("stored list is malformed, treating as empty",
			zap.String("key", g.key),
			zap.Error(err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (g *listGateway[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", g.key, err)
	}
	return g.kv.Put(ctx, g.key, string(data))
}

// update runs fn on the current list under the gateway lock and stores the
// result.
func (g *listGateway[T]) update(ctx context.Context, fn func([]T) ([]T, error)) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	items, err := g.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return g.save(ctx, items)
}

// snapshot returns the current list under the gateway lock.
func (g *listGateway[T]) snapshot(ctx context.Context) ([]T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.load(ctx)
}
