// Package rag wires retrieval and generation into the plan pipeline:
// profile-aware retrieval from the vector index, prompt assembly, and
// graceful degradation when no AI backend is reachable.
package rag

import (
	"context"
	"sort"
	"strings"

	"github.com/avverma/fitrag/internal/ai"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/vectorstore"
	"go.uber.org/zap"
)

const combinedTopKEach = 3

// Retriever fetches profile-filtered knowledge documents. Any failure
// mode, from a missing index to an empty result set, degrades to the
// built-in fallback documents instead of an error.
type Retriever struct {
	index vectorstore.Index
	ai    *ai.Manager
	topK  int
}

func NewRetriever(index vectorstore.Index, mgr *ai.Manager, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{index: index, ai: mgr, topK: topK}
}

func (r *Retriever) IsAvailable() bool {
	return r.index != nil && r.index.IsAvailable() && r.ai.EmbedderAvailable()
}

func (r *Retriever) RetrieveWorkoutContext(ctx context.Context, query string, profile model.Profile, topK int) []model.RetrievedDocument {
	if !r.IsAvailable() {
		return fallbackWorkoutDocs()
	}
	enhanced := enhanceWorkoutQuery(query, profile)
	docs := r.query(ctx, model.NamespaceWorkouts, enhanced, topK, buildWorkoutFilter(profile))
	if len(docs) == 0 {
		return fallbackWorkoutDocs()
	}
	return docs
}

func (r *Retriever) RetrieveDietContext(ctx context.Context, query string, profile model.Profile, topK int) []model.RetrievedDocument {
	if !r.IsAvailable() {
		return fallbackDietDocs()
	}
	enhanced := enhanceDietQuery(query, profile)
	docs := r.query(ctx, model.NamespaceDiets, enhanced, topK, buildDietFilter(profile))
	if len(docs) == 0 {
		return fallbackDietDocs()
	}
	return docs
}

// RetrieveCombined issues the workout and diet retrievals
// independently. The namespaces are disjoint, so no deduplication is
// needed between the two result sets.
func (r *Retriever) RetrieveCombined(ctx context.Context, query string, profile model.Profile) (workouts, diets []model.RetrievedDocument) {
	workouts = r.RetrieveWorkoutContext(ctx, query, profile, combinedTopKEach)
	diets = r.RetrieveDietContext(ctx, query, profile, combinedTopKEach)
	return workouts, diets
}

func (r *Retriever) query(ctx context.Context, namespace, query string, topK int, filter map[string]string) []model.RetrievedDocument {
	logger := logutil.GetLogger(ctx)
	if topK <= 0 {
		topK = r.topK
	}
	vector, err := r.ai.EmbedQuery(ctx, query)
	if err != nil {
		logger.Error("embed query failed", zap.String("namespace", namespace), zap.Error(err))
		return nil
	}
	docs, err := r.index.Query(ctx, namespace, vector, topK, filter)
	if err != nil {
		logger.Error("vector query failed", zap.String("namespace", namespace), zap.Error(err))
		return nil
	}
	sortDocuments(docs)
	return docs
}

// sortDocuments orders by score descending with id ascending as the
// tie break, keeping result order deterministic across backends.
func sortDocuments(docs []model.RetrievedDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Score != docs[j].Score {
			return docs[i].Score > docs[j].Score
		}
		return docs[i].ID < docs[j].ID
	})
}

func buildWorkoutFilter(profile model.Profile) map[string]string {
	filter := map[string]string{}
	if profile.ExperienceLevel != "" {
		filter["experience_level"] = profile.ExperienceLevel
	}
	if profile.WorkoutLocation != "" && profile.WorkoutLocation != model.LocationBoth {
		filter["location"] = profile.WorkoutLocation
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}

func buildDietFilter(profile model.Profile) map[string]string {
	if profile.DietaryPreference == "" {
		return nil
	}
	return map[string]string{"dietary_type": profile.DietaryPreference}
}

func enhanceWorkoutQuery(query string, profile model.Profile) string {
	var hints []string
	if profile.FitnessGoal != "" {
		hints = append(hints, "Goal: "+profile.FitnessGoal)
	}
	if profile.ExperienceLevel != "" {
		hints = append(hints, "Level: "+profile.ExperienceLevel)
	}
	if profile.WorkoutLocation != "" {
		hints = append(hints, "Location: "+profile.WorkoutLocation)
	}
	return appendHints(query, hints)
}

func enhanceDietQuery(query string, profile model.Profile) string {
	var hints []string
	if profile.DietaryPreference != "" {
		hints = append(hints, "Preference: "+profile.DietaryPreference)
	}
	if profile.FitnessGoal != "" {
		hints = append(hints, "Goal: "+profile.FitnessGoal)
	}
	return appendHints(query, hints)
}

func appendHints(query string, hints []string) string {
	if len(hints) == 0 {
		return query
	}
	return query + " [" + strings.Join(hints, " | ") + "]"
}
