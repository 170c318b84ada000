package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/ai"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/errs"
	"github.com/avverma/fitrag/internal/vectorstore"
)

type memStore struct {
	files map[string]string
}

func (m *memStore) List(ctx context.Context, dir string) ([]string, error) {
	var keys []string
	for key := range m.files {
		if len(key) > len(dir) && key[:len(dir)+1] == dir+"/" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *memStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	content, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", key)
	}
	return io.NopCloser(bytes.NewReader([]byte(content))), nil
}

type memIndex struct {
	records map[string][]vectorstore.Record
	cleared []string
}

func newMemIndex() *memIndex {
	return &memIndex{records: map[string][]vectorstore.Record{}}
}

func (m *memIndex) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	m.records[namespace] = append(m.records[namespace], records...)
	return nil
}

func (m *memIndex) Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]string) ([]model.RetrievedDocument, error) {
	return nil, nil
}

func (m *memIndex) DeleteNamespace(ctx context.Context, namespace string) error {
	m.cleared = append(m.cleared, namespace)
	delete(m.records, namespace)
	return nil
}

func (m *memIndex) Stats(ctx context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for ns, records := range m.records {
		out[ns] = int64(len(records))
	}
	return out, nil
}

func (m *memIndex) IsAvailable() bool { return true }

type fixedEmbedder struct{}

func (fixedEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	return []float32{float32(len(text)), 1}, nil
}

func (fixedEmbedder) ModelName() string { return "fixed" }

func testManager() *ai.Manager {
	return ai.NewManager(nil, fixedEmbedder{}, ai.ManagerConfig{})
}

func TestIngestAll(t *testing.T) {
	store := &memStore{files: map[string]string{
		"workouts/plans.json": `[{"name": "Push Day", "level": "beginner"}, {"name": "Pull Day"}]`,
		"workouts/notes.txt":  "ignored",
		"diets/meals.json":    `{"items": [{"title": "Veg Plan", "dietary_type": "vegetarian"}]}`,
	}}
	index := newMemIndex()
	ingester := NewIngester(store, index, testManager(), 1000, 200)

	stats, err := ingester.IngestAll(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 1, stats.WorkoutsProcessed)
	require.Equal(t, 1, stats.DietsProcessed)
	require.Equal(t, 3, stats.TotalChunks)
	require.Len(t, index.records[model.NamespaceWorkouts], 2)
	require.Len(t, index.records[model.NamespaceDiets], 1)
	require.Empty(t, index.cleared)

	diet := index.records[model.NamespaceDiets][0]
	require.Equal(t, "Veg Plan", diet.Metadata["title"])
	require.Equal(t, model.DocTypeDiet, diet.Metadata["doc_type"])
	require.Equal(t, "vegetarian", diet.Metadata["dietary_type"])
}

func TestIngestAllOverwriteClearsNamespaces(t *testing.T) {
	store := &memStore{files: map[string]string{}}
	index := newMemIndex()
	ingester := NewIngester(store, index, testManager(), 1000, 200)

	_, err := ingester.IngestAll(context.Background(), true)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{model.NamespaceWorkouts, model.NamespaceDiets}, index.cleared)
}

func TestIngestAllWithoutEmbedder(t *testing.T) {
	store := &memStore{files: map[string]string{}}
	ingester := NewIngester(store, newMemIndex(), ai.NewManager(nil, nil, ai.ManagerConfig{}), 1000, 200)

	_, err := ingester.IngestAll(context.Background(), false)
	require.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestIngestAllSkipsBrokenFiles(t *testing.T) {
	store := &memStore{files: map[string]string{
		"workouts/bad.json":  `{not json`,
		"workouts/good.json": `[{"name": "Leg Day"}]`,
	}}
	index := newMemIndex()
	ingester := NewIngester(store, index, testManager(), 1000, 200)

	stats, err := ingester.IngestAll(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, 2, stats.WorkoutsProcessed)
	require.Equal(t, 1, stats.TotalChunks)
}

func TestProcessJSONFileShapes(t *testing.T) {
	store := &memStore{files: map[string]string{
		"workouts/list.json":   `[{"name": "A"}, {"name": "B"}]`,
		"workouts/items.json":  `{"items": [{"name": "C"}]}`,
		"workouts/single.json": `{"name": "D"}`,
	}}
	ingester := NewIngester(store, nil, nil, 1000, 200)
	ctx := context.Background()

	chunks, err := ingester.processJSONFile(ctx, "workouts/list.json", model.DocTypeWorkout)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	require.Equal(t, "A", chunks[0].Metadata.Title)
	require.Equal(t, "B", chunks[1].Metadata.Title)

	chunks, err = ingester.processJSONFile(ctx, "workouts/items.json", model.DocTypeWorkout)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "C", chunks[0].Metadata.Title)

	chunks, err = ingester.processJSONFile(ctx, "workouts/single.json", model.DocTypeWorkout)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "D", chunks[0].Metadata.Title)
}

func TestChunkItemMetadataDefaults(t *testing.T) {
	ingester := NewIngester(nil, nil, nil, 1000, 200)
	chunks := ingester.chunkItem(map[string]interface{}{"name": "Plan"}, "plans", 2, model.DocTypeWorkout)
	require.Len(t, chunks, 1)

	meta := chunks[0].Metadata
	require.Equal(t, "plans", meta.SourceFile)
	require.Equal(t, model.DocTypeWorkout, meta.DocType)
	require.Equal(t, model.DocTypeWorkout, meta.Type)
	require.Equal(t, "Plan", meta.Title)
	require.Equal(t, "all", meta.ExperienceLevel)
	require.Equal(t, "both", meta.Location)
	require.Equal(t, "all", meta.DietaryType)
	require.Equal(t, "general", meta.Goal)
	require.Equal(t, 0, meta.ChunkIndex)
	_, err := time.Parse(time.RFC3339, meta.IngestedAt)
	require.NoError(t, err)
}

func TestChunkItemFallbackTitle(t *testing.T) {
	ingester := NewIngester(nil, nil, nil, 1000, 200)
	chunks := ingester.chunkItem(map[string]interface{}{"description": "no name"}, "plans", 3, model.DocTypeDiet)
	require.Len(t, chunks, 1)
	require.Equal(t, "diet_3", chunks[0].Metadata.Title)
}

func TestFlattenItem(t *testing.T) {
	item := map[string]interface{}{
		"name":        "Push Day",
		"description": "Upper body push session.",
		"level":       "beginner",
		"goal":        "muscle_gain",
		"duration":    float64(45),
		"exercises": []interface{}{
			map[string]interface{}{"name": "Bench Press", "sets": float64(3), "reps": "8-10"},
			map[string]interface{}{"name": "Push Up", "sets": float64(4)},
		},
	}
	want := "# Push Day\n" +
		"\nUpper body push session.\n" +
		"Level: beginner\n" +
		"Goal: muscle_gain\n" +
		"Duration: 45\n" +
		"\n## Exercises:\n" +
		"- Bench Press: 3 sets x 8-10\n" +
		"- Push Up: 4 sets"
	require.Equal(t, want, flattenItem(item))
}

func TestFlattenItemMeals(t *testing.T) {
	item := map[string]interface{}{
		"title":    "Veg Plan",
		"calories": float64(1800),
		"meals": []interface{}{
			map[string]interface{}{
				"name": "Breakfast",
				"items": []interface{}{
					map[string]interface{}{"name": "Oats", "portion": "80g"},
					"Banana",
				},
			},
		},
	}
	want := "# Veg Plan\n" +
		"Calories: 1800\n" +
		"\n## Meals:\n" +
		"\n### Breakfast\n" +
		"- Oats: 80g\n" +
		"- Banana"
	require.Equal(t, want, flattenItem(item))
}

func TestChunkID(t *testing.T) {
	require.Equal(t, "aec76a746cbe7796ae120c82c7e6e908", chunkID("meal_plans", 0, 0))
	require.Equal(t, "4c6791d7306ff4b8b758c9ee415b5e62", chunkID("workout_plans", 2, 1))
	require.NotEqual(t, chunkID("a", 0, 0), chunkID("a", 0, 1))
}

func TestFileStem(t *testing.T) {
	require.Equal(t, "meal_plans", fileStem("diets/meal_plans.json"))
	require.Equal(t, "guide", fileStem("guide.md"))
}
