package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/ai"
	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/vectorstore"
)

type fakeIndex struct {
	docs map[string][]model.RetrievedDocument

	lastNamespace string
	lastTopK      int
	lastFilter    map[string]string
}

func (f *fakeIndex) Upsert(ctx context.Context, namespace string, records []vectorstore.Record) error {
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]string) ([]model.RetrievedDocument, error) {
	f.lastNamespace = namespace
	f.lastTopK = topK
	f.lastFilter = filter
	return f.docs[namespace], nil
}

func (f *fakeIndex) DeleteNamespace(ctx context.Context, namespace string) error { return nil }

func (f *fakeIndex) Stats(ctx context.Context) (map[string]int64, error) { return nil, nil }

func (f *fakeIndex) IsAvailable() bool { return true }

type fakeEmbedder struct {
	lastText string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.lastText = text
	return []float32{1, 2, 3}, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake" }

func testProfile() model.Profile {
	return model.Profile{
		Name:               "Asha",
		Age:                28,
		Gender:             "female",
		HeightCM:           165,
		WeightKG:           60,
		FitnessGoal:        "muscle_gain",
		ActivityLevel:      "moderately_active",
		DietaryPreference:  "vegetarian",
		ExperienceLevel:    "beginner",
		WorkoutLocation:    "home",
		WorkoutDaysPerWeek: 4,
	}
}

func TestEnhanceWorkoutQuery(t *testing.T) {
	enhanced := enhanceWorkoutQuery("build strength", testProfile())
	require.Equal(t, "build strength [Goal: muscle_gain | Level: beginner | Location: home]", enhanced)

	require.Equal(t, "build strength", enhanceWorkoutQuery("build strength", model.Profile{}))
}

func TestEnhanceDietQuery(t *testing.T) {
	enhanced := enhanceDietQuery("meal plan", testProfile())
	require.Equal(t, "meal plan [Preference: vegetarian | Goal: muscle_gain]", enhanced)
}

func TestBuildWorkoutFilter(t *testing.T) {
	filter := buildWorkoutFilter(testProfile())
	require.Equal(t, map[string]string{
		"experience_level": "beginner",
		"location":         "home",
	}, filter)

	profile := testProfile()
	profile.WorkoutLocation = model.LocationBoth
	require.Equal(t, map[string]string{"experience_level": "beginner"}, buildWorkoutFilter(profile))

	require.Nil(t, buildWorkoutFilter(model.Profile{WorkoutLocation: model.LocationBoth}))
}

func TestBuildDietFilter(t *testing.T) {
	require.Equal(t, map[string]string{"dietary_type": "vegetarian"}, buildDietFilter(testProfile()))
	require.Nil(t, buildDietFilter(model.Profile{}))
}

func TestSortDocuments(t *testing.T) {
	docs := []model.RetrievedDocument{
		{ID: "b", Score: 0.8},
		{ID: "a", Score: 0.8},
		{ID: "c", Score: 0.9},
	}
	sortDocuments(docs)
	require.Equal(t, "c", docs[0].ID)
	require.Equal(t, "a", docs[1].ID)
	require.Equal(t, "b", docs[2].ID)
}

func TestRetrieveWorkoutContext(t *testing.T) {
	index := &fakeIndex{docs: map[string][]model.RetrievedDocument{
		model.NamespaceWorkouts: {{ID: "w1", Content: "plan", Score: 0.9}},
	}}
	embedder := &fakeEmbedder{}
	retriever := NewRetriever(index, ai.NewManager(nil, embedder, ai.ManagerConfig{}), 5)

	docs := retriever.RetrieveWorkoutContext(context.Background(), "build strength", testProfile(), 7)
	require.Len(t, docs, 1)
	require.Equal(t, "w1", docs[0].ID)
	require.Equal(t, model.NamespaceWorkouts, index.lastNamespace)
	require.Equal(t, 7, index.lastTopK)
	require.Equal(t, map[string]string{"experience_level": "beginner", "location": "home"}, index.lastFilter)
	require.Equal(t, "build strength [Goal: muscle_gain | Level: beginner | Location: home]", embedder.lastText)
}

func TestRetrieveFallsBackWithoutIndex(t *testing.T) {
	retriever := NewRetriever(nil, ai.NewManager(nil, &fakeEmbedder{}, ai.ManagerConfig{}), 5)

	workouts := retriever.RetrieveWorkoutContext(context.Background(), "q", testProfile(), 3)
	require.Len(t, workouts, 1)
	require.Equal(t, "fallback_workout", workouts[0].ID)
	require.Equal(t, 0.5, workouts[0].Score)
	require.Equal(t, "fallback", workouts[0].Metadata["source"])

	diets := retriever.RetrieveDietContext(context.Background(), "q", testProfile(), 3)
	require.Len(t, diets, 1)
	require.Equal(t, "fallback_diet", diets[0].ID)
}

func TestRetrieveFallsBackOnEmptyResults(t *testing.T) {
	index := &fakeIndex{docs: map[string][]model.RetrievedDocument{}}
	retriever := NewRetriever(index, ai.NewManager(nil, &fakeEmbedder{}, ai.ManagerConfig{}), 5)

	docs := retriever.RetrieveDietContext(context.Background(), "q", testProfile(), 3)
	require.Len(t, docs, 1)
	require.Equal(t, "fallback_diet", docs[0].ID)
}

func TestRetrieveCombinedTopK(t *testing.T) {
	index := &fakeIndex{docs: map[string][]model.RetrievedDocument{
		model.NamespaceWorkouts: {{ID: "w1", Score: 0.9}},
		model.NamespaceDiets:    {{ID: "d1", Score: 0.8}},
	}}
	retriever := NewRetriever(index, ai.NewManager(nil, &fakeEmbedder{}, ai.ManagerConfig{}), 5)

	workouts, diets := retriever.RetrieveCombined(context.Background(), "q", testProfile())
	require.Len(t, workouts, 1)
	require.Len(t, diets, 1)
	require.Equal(t, combinedTopKEach, index.lastTopK)
}

func TestQueryDefaultsTopK(t *testing.T) {
	index := &fakeIndex{docs: map[string][]model.RetrievedDocument{}}
	retriever := NewRetriever(index, ai.NewManager(nil, &fakeEmbedder{}, ai.ManagerConfig{}), 4)

	retriever.query(context.Background(), model.NamespaceWorkouts, "q", 0, nil)
	require.Equal(t, 4, index.lastTopK)
}
