package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/config"
)

func pineconeTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Index) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	index, err := New(config.VectorConfig{
		Type: "pinecone",
		Args: map[string]interface{}{"api_key": "test-key", "host": server.URL},
	}, Deps{})
	require.NoError(t, err)
	return server, index
}

func TestPineconeConfigValidation(t *testing.T) {
	_, err := New(config.VectorConfig{Type: "pinecone", Args: map[string]interface{}{"host": "h"}}, Deps{})
	require.Error(t, err)

	_, err = New(config.VectorConfig{Type: "pinecone", Args: map[string]interface{}{"api_key": "k"}}, Deps{})
	require.Error(t, err)

	index, err := New(config.VectorConfig{
		Type: "pinecone",
		Args: map[string]interface{}{"api_key": "k", "host": "idx.svc.pinecone.io/"},
	}, Deps{})
	require.NoError(t, err)
	require.True(t, index.IsAvailable())
	require.Equal(t, "https://idx.svc.pinecone.io", index.(*pineconeIndex).host)
}

func TestPineconeQuery(t *testing.T) {
	var captured map[string]interface{}
	_, index := pineconeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"matches": []map[string]interface{}{
				{"id": "c1", "score": 0.92, "metadata": map[string]string{"text": "squats", "title": "Legs"}},
			},
		})
	})

	docs, err := index.Query(context.Background(), "workouts", []float32{0.1, 0.2}, 5, map[string]string{
		"experience_level": "beginner",
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "c1", docs[0].ID)
	require.Equal(t, "squats", docs[0].Content)
	require.Equal(t, 0.92, docs[0].Score)
	require.Equal(t, "Legs", docs[0].Metadata["title"])

	require.Equal(t, "workouts", captured["namespace"])
	require.Equal(t, float64(5), captured["topK"])
	require.Equal(t, true, captured["includeMetadata"])
	filter := captured["filter"].(map[string]interface{})
	require.Equal(t, map[string]interface{}{"$eq": "beginner"}, filter["experience_level"])
}

func TestPineconeQueryOmitsEmptyFilter(t *testing.T) {
	var captured map[string]interface{}
	_, index := pineconeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"matches": []interface{}{}})
	})

	_, err := index.Query(context.Background(), "diets", []float32{0.1}, 3, nil)
	require.NoError(t, err)
	_, hasFilter := captured["filter"]
	require.False(t, hasFilter)
}

func TestPineconeUpsertTruncatesText(t *testing.T) {
	var captured map[string]interface{}
	_, index := pineconeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors/upsert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	})

	long := strings.Repeat("x", maxMetadataTextLen+100)
	err := index.Upsert(context.Background(), "workouts", []Record{
		{ID: "c1", Values: []float32{1}, Text: long, Metadata: map[string]string{"title": "T"}},
	})
	require.NoError(t, err)

	vectors := captured["vectors"].([]interface{})
	require.Len(t, vectors, 1)
	metadata := vectors[0].(map[string]interface{})["metadata"].(map[string]interface{})
	require.Len(t, metadata["text"].(string), maxMetadataTextLen)
	require.Equal(t, "T", metadata["title"])
	require.Equal(t, "workouts", captured["namespace"])
}

func TestPineconeDeleteNamespaceTolerates404(t *testing.T) {
	_, index := pineconeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "namespace not found", http.StatusNotFound)
	})
	require.NoError(t, index.DeleteNamespace(context.Background(), "workouts"))
}

func TestPineconeStats(t *testing.T) {
	_, index := pineconeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/describe_index_stats", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"namespaces": map[string]interface{}{
				"workouts": map[string]interface{}{"vectorCount": 42},
				"diets":    map[string]interface{}{"vectorCount": 7},
			},
		})
	})

	counts, err := index.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"workouts": 42, "diets": 7}, counts)
}

func TestPineconeErrorStatus(t *testing.T) {
	_, index := pineconeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := index.Query(context.Background(), "workouts", []float32{1}, 5, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 429")
}
