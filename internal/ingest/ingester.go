// Package ingest turns raw knowledge base files into embedded chunks
// in the vector index. Workout files land in the "workouts" namespace
// and diet files in "diets".
package ingest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/avverma/fitrag/internal/ai"
	"github.com/avverma/fitrag/internal/knowledgestore"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/errs"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/vectorstore"
	"go.uber.org/zap"
)

type Ingester struct {
	store    knowledgestore.Store
	index    vectorstore.Index
	ai       *ai.Manager
	splitter *Splitter
}

func NewIngester(store knowledgestore.Store, index vectorstore.Index, mgr *ai.Manager, chunkSize, chunkOverlap int) *Ingester {
	return &Ingester{
		store:    store,
		index:    index,
		ai:       mgr,
		splitter: NewSplitter(chunkSize, chunkOverlap),
	}
}

// IngestAll walks the workouts and diets directories of the knowledge
// store and upserts every file's chunks into its namespace. With
// overwrite set, both namespaces are cleared first. Per-file failures
// are logged and skipped so one bad file cannot sink a whole run.
func (g *Ingester) IngestAll(ctx context.Context, overwrite bool) (model.IngestStats, error) {
	var stats model.IngestStats
	if g.index == nil || !g.index.IsAvailable() {
		return stats, fmt.Errorf("vector index not available: %w", errs.ErrUnavailable)
	}
	if !g.ai.EmbedderAvailable() {
		return stats, fmt.Errorf("no embedding provider configured: %w", errs.ErrUnavailable)
	}
	if overwrite {
		for _, ns := range []string{model.NamespaceWorkouts, model.NamespaceDiets} {
			if err := g.index.DeleteNamespace(ctx, ns); err != nil {
				return stats, fmt.Errorf("clear namespace %s: %w", ns, err)
			}
		}
	}

	workoutFiles, workoutChunks, err := g.ingestNamespace(ctx, model.NamespaceWorkouts, model.DocTypeWorkout)
	if err != nil {
		return stats, err
	}
	stats.WorkoutsProcessed = workoutFiles
	stats.TotalChunks += workoutChunks

	dietFiles, dietChunks, err := g.ingestNamespace(ctx, model.NamespaceDiets, model.DocTypeDiet)
	if err != nil {
		return stats, err
	}
	stats.DietsProcessed = dietFiles
	stats.TotalChunks += dietChunks
	return stats, nil
}

func (g *Ingester) ingestNamespace(ctx context.Context, namespace, docType string) (int, int, error) {
	logger := logutil.GetLogger(ctx)
	keys, err := g.store.List(ctx, namespace)
	if err != nil {
		return 0, 0, fmt.Errorf("list %s: %w", namespace, err)
	}
	files := 0
	chunkCount := 0
	for _, key := range keys {
		var chunks []model.KnowledgeChunk
		switch strings.ToLower(path.Ext(key)) {
		case ".json":
			chunks, err = g.processJSONFile(ctx, key, docType)
		case ".md":
			chunks, err = g.processMarkdownFile(ctx, key, docType)
		default:
			continue
		}
		files++
		if err != nil {
			logger.Error("process knowledge file failed",
				zap.String("file", key), zap.Error(err))
			continue
		}
		if len(chunks) == 0 {
			continue
		}
		if err := g.upsertChunks(ctx, namespace, chunks); err != nil {
			logger.Error("upsert knowledge file failed",
				zap.String("file", key), zap.Error(err))
			continue
		}
		chunkCount += len(chunks)
	}
	return files, chunkCount, nil
}

func (g *Ingester) processJSONFile(ctx context.Context, key, docType string) ([]model.KnowledgeChunk, error) {
	rc, err := g.store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	source := fileStem(key)
	var chunks []model.KnowledgeChunk

	// Accept three shapes: a bare array of items, {"items": [...]},
	// or a single object.
	var asList []map[string]interface{}
	if err := json.Unmarshal(data, &asList); err == nil {
		for idx, item := range asList {
			chunks = append(chunks, g.chunkItem(item, source, idx, docType)...)
		}
		return chunks, nil
	}
	var asObject map[string]interface{}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	if rawItems, ok := asObject["items"].([]interface{}); ok {
		for idx, raw := range rawItems {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			chunks = append(chunks, g.chunkItem(item, source, idx, docType)...)
		}
		return chunks, nil
	}
	return g.chunkItem(asObject, source, 0, docType), nil
}

func (g *Ingester) chunkItem(item map[string]interface{}, source string, itemIdx int, docType string) []model.KnowledgeChunk {
	text := flattenItem(item)
	pieces := g.splitter.Split(text)
	ingestedAt := time.Now().UTC().Format(time.RFC3339)
	chunks := make([]model.KnowledgeChunk, 0, len(pieces))
	for chunkIdx, piece := range pieces {
		metadata := model.ChunkMetadata{
			SourceFile:      source,
			DocType:         docType,
			Type:            stringField(item, docType, "type"),
			Title:           stringField(item, fmt.Sprintf("%s_%d", docType, itemIdx), "name", "title"),
			ExperienceLevel: stringField(item, "all", "level", "experience_level"),
			Location:        stringField(item, "both", "location"),
			DietaryType:     stringField(item, "all", "dietary_type", "preference"),
			Goal:            stringField(item, "general", "goal"),
			ChunkIndex:      chunkIdx,
			IngestedAt:      ingestedAt,
		}
		chunks = append(chunks, model.KnowledgeChunk{
			ID:       chunkID(source, itemIdx, chunkIdx),
			Text:     piece,
			Metadata: metadata,
		})
	}
	return chunks
}

func (g *Ingester) upsertChunks(ctx context.Context, namespace string, chunks []model.KnowledgeChunk) error {
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)
	}
	vectors, err := g.ai.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedded %d of %d chunks", len(vectors), len(chunks))
	}
	records := make([]vectorstore.Record, 0, len(chunks))
	for i, chunk := range chunks {
		records = append(records, vectorstore.Record{
			ID:       chunk.ID,
			Values:   vectors[i],
			Text:     chunk.Text,
			Metadata: chunk.Metadata.ToMap(),
		})
	}
	return g.index.Upsert(ctx, namespace, records)
}

// flattenItem renders one knowledge item as markdown-ish text so the
// embedding captures names, targets and contents together.
func flattenItem(item map[string]interface{}) string {
	parts := []string{"# " + stringField(item, "Item", "name", "title")}
	if desc := stringField(item, "", "description"); desc != "" {
		parts = append(parts, "\n"+desc)
	}
	for _, key := range []string{"level", "goal", "location", "duration", "calories"} {
		if v := anyField(item, key); v != "" {
			parts = append(parts, titleCase(key)+": "+v)
		}
	}
	if exercises, ok := item["exercises"].([]interface{}); ok && len(exercises) > 0 {
		parts = append(parts, "\n## Exercises:")
		for _, raw := range exercises {
			exercise, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			line := "- " + stringField(exercise, "Exercise", "name")
			if sets := anyField(exercise, "sets"); sets != "" {
				line += ": " + sets + " sets"
			}
			if reps := anyField(exercise, "reps"); reps != "" {
				line += " x " + reps
			}
			parts = append(parts, line)
		}
	}
	if meals, ok := item["meals"].([]interface{}); ok && len(meals) > 0 {
		parts = append(parts, "\n## Meals:")
		for _, raw := range meals {
			meal, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			parts = append(parts, "\n### "+stringField(meal, "Meal", "name"))
			foods, ok := meal["items"].([]interface{})
			if !ok {
				continue
			}
			for _, rawFood := range foods {
				switch food := rawFood.(type) {
				case map[string]interface{}:
					parts = append(parts, "- "+stringField(food, "Food", "name")+": "+stringField(food, "", "portion"))
				case string:
					parts = append(parts, "- "+food)
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// stringField returns the first non-empty string value among keys.
func stringField(item map[string]interface{}, fallback string, keys ...string) string {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// anyField renders scalar values of any JSON type as text.
func anyField(item map[string]interface{}, key string) string {
	switch v := item[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

func fileStem(key string) string {
	base := path.Base(key)
	return strings.TrimSuffix(base, path.Ext(base))
}

func chunkID(source string, itemIdx, chunkIdx int) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s_%d_%d", source, itemIdx, chunkIdx)))
	return hex.EncodeToString(sum[:])
}
