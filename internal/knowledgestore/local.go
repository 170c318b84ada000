package knowledgestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
)

type localConfig struct {
	Root string `json:"root"`
}

type localStore struct {
	root string
}

func init() {
	Register("local", createLocalStore)
}

func createLocalStore(args interface{}) (Store, error) {
	config := &localConfig{}
	if err := decodeConfig(args, config); err != nil {
		return nil, err
	}
	if config.Root == "" {
		return nil, fmt.Errorf("local knowledge store root is required")
	}
	return &localStore{root: config.Root}, nil
}

func (s *localStore) List(ctx context.Context, dir string) ([]string, error) {
	_ = ctx
	entries, err := os.ReadDir(filepath.Join(s.root, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var keys []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		keys = append(keys, path.Join(dir, entry.Name()))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *localStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	_ = ctx
	return os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
}
