package knowledgestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/config"
)

func TestLocalStoreListAndOpen(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "workouts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "workouts", "b.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "workouts", "a.json"), []byte(`{"name":"x"}`), 0o644))

	store, err := New(config.StoreConfig{Type: "local", Args: map[string]interface{}{"root": root}})
	require.NoError(t, err)

	keys, err := store.List(context.Background(), "workouts")
	require.NoError(t, err)
	require.Equal(t, []string{"workouts/a.json", "workouts/b.json"}, keys)

	rc, err := store.Open(context.Background(), "workouts/a.json")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, `{"name":"x"}`, string(data))
}

func TestLocalStoreMissingDir(t *testing.T) {
	store, err := New(config.StoreConfig{Type: "local", Args: map[string]interface{}{"root": t.TempDir()}})
	require.NoError(t, err)

	keys, err := store.List(context.Background(), "diets")
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestNewUnknownType(t *testing.T) {
	_, err := New(config.StoreConfig{Type: "ftp"})
	require.Error(t, err)
}
