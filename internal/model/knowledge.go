package model

import "strconv"

const (
	NamespaceWorkouts = "workouts"
	NamespaceDiets    = "diets"
)

const (
	DocTypeWorkout = "workout"
	DocTypeDiet    = "diet"
)

// ChunkMetadata travels with each knowledge chunk into the vector index
// and back out with query matches. The zero defaults ("all"/"both"/
// "general") keep metadata filtering inclusive rather than dropping
// documents that never declared a field.
type ChunkMetadata struct {
	SourceFile      string `json:"source_file"`
	DocType         string `json:"doc_type"`
	Type            string `json:"type"`
	Title           string `json:"title"`
	ExperienceLevel string `json:"experience_level"`
	Location        string `json:"location"`
	DietaryType     string `json:"dietary_type"`
	Goal            string `json:"goal"`
	ChunkIndex      int    `json:"chunk_index"`
	IngestedAt      string `json:"ingested_at"`
}

func (m ChunkMetadata) ToMap() map[string]string {
	return map[string]string{
		"source_file":      m.SourceFile,
		"doc_type":         m.DocType,
		"type":             m.Type,
		"title":            m.Title,
		"experience_level": m.ExperienceLevel,
		"location":         m.Location,
		"dietary_type":     m.DietaryType,
		"goal":             m.Goal,
		"chunk_index":      strconv.Itoa(m.ChunkIndex),
		"ingested_at":      m.IngestedAt,
	}
}

// KnowledgeChunk is one embeddable slice of a knowledge base item. Its
// ID is content-addressed on (source file, item index, chunk index) so
// re-ingesting unchanged data overwrites instead of duplicating.
type KnowledgeChunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// RetrievedDocument is a ranked match from the vector index. It lives
// only for the duration of one retrieval call.
type RetrievedDocument struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

func (d RetrievedDocument) Meta(key, fallback string) string {
	if v, ok := d.Metadata[key]; ok && v != "" {
		return v
	}
	return fallback
}

// IngestStats summarizes one ingestion run.
type IngestStats struct {
	WorkoutsProcessed int `json:"workouts_processed"`
	DietsProcessed    int `json:"diets_processed"`
	TotalChunks       int `json:"total_chunks"`
}
