// Package vectorstore abstracts the vector index that backs knowledge
// retrieval. Backends register themselves by type name and are picked
// through configuration, the same way file stores and AI providers are.
package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/avverma/fitrag/internal/config"
	"github.com/avverma/fitrag/internal/model"
)

// maxMetadataTextLen caps the copy of the chunk text stored alongside
// each vector, matching the metadata size limits of hosted indexes.
const maxMetadataTextLen = 1000

// Record is one chunk ready for indexing. Text is stored with the
// vector (truncated) so query matches can return content directly.
type Record struct {
	ID       string
	Values   []float32
	Text     string
	Metadata map[string]string
}

type Index interface {
	Upsert(ctx context.Context, namespace string, records []Record) error
	// Query returns at most topK matches ordered by score descending.
	// Every filter entry must match the stored metadata exactly.
	Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]string) ([]model.RetrievedDocument, error)
	DeleteNamespace(ctx context.Context, namespace string) error
	Stats(ctx context.Context) (map[string]int64, error)
	// IsAvailable reports whether the backend is configured and
	// reachable enough to serve queries.
	IsAvailable() bool
}

// Deps carries runtime handles that config args cannot express.
type Deps struct {
	DB *sql.DB
}

type Factory func(args interface{}, deps Deps) (Index, error)

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

func New(cfg config.VectorConfig, deps Deps) (Index, error) {
	key := strings.ToLower(strings.TrimSpace(cfg.Type))
	if key == "" {
		return nil, fmt.Errorf("vector.type is required")
	}
	registryMu.RLock()
	factory := registry[key]
	registryMu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("unsupported vector index type: %s", cfg.Type)
	}
	return factory(cfg.Args, deps)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("vector index config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode vector index config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode vector index config: %w", err)
	}
	return nil
}

func truncateText(text string) string {
	if len(text) <= maxMetadataTextLen {
		return text
	}
	return text[:maxMetadataTextLen]
}
