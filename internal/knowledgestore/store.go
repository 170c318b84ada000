// Package knowledgestore reads the raw knowledge base files that feed
// ingestion. Workout and diet data live under the "workouts" and
// "diets" directories of whichever backend is configured.
package knowledgestore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/avverma/fitrag/internal/config"
)

type Store interface {
	// List returns the keys of all files directly under dir, sorted by
	// name. A missing directory returns an empty list, not an error.
	List(ctx context.Context, dir string) ([]string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type Factory func(args interface{}) (Store, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, factory Factory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registryMu.Lock()
	registry[key] = factory
	registryMu.Unlock()
}

func New(cfg config.StoreConfig) (Store, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("knowledge.store.type is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported knowledge store type: %s", cfg.Type)
	}
	return factory(cfg.Args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("knowledge store config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode knowledge store config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode knowledge store config: %w", err)
	}
	return nil
}
