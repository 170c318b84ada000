package vectorstore

import (
	"context"
	"fmt"
	"time"

	"github.com/avverma/fitrag/internal/model"
	"github.com/avverma/fitrag/internal/repo"
)

// pgIndex keeps knowledge vectors in the application's own Postgres
// database. It needs no extra infrastructure beyond the pgvector
// extension and is the default for self-hosted deployments.
type pgIndex struct {
	repo *repo.KnowledgeVectorRepo
}

func newPgIndex(_ interface{}, deps Deps) (Index, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("pgvector index requires a database handle")
	}
	return &pgIndex{repo: repo.NewKnowledgeVectorRepo(deps.DB)}, nil
}

func (p *pgIndex) Upsert(ctx context.Context, namespace string, records []Record) error {
	now := time.Now().Unix()
	rows := make([]repo.KnowledgeVectorRow, 0, len(records))
	for _, rec := range records {
		metadata := make(map[string]string, len(rec.Metadata)+1)
		for k, v := range rec.Metadata {
			metadata[k] = v
		}
		metadata["text"] = truncateText(rec.Text)
		rows = append(rows, repo.KnowledgeVectorRow{
			ID:        rec.ID,
			Namespace: namespace,
			Content:   rec.Text,
			Embedding: rec.Values,
			Metadata:  metadata,
			Ctime:     now,
		})
	}
	return p.repo.Upsert(ctx, rows)
}

func (p *pgIndex) Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]string) ([]model.RetrievedDocument, error) {
	return p.repo.Search(ctx, namespace, vector, topK, filter)
}

func (p *pgIndex) DeleteNamespace(ctx context.Context, namespace string) error {
	return p.repo.DeleteNamespace(ctx, namespace)
}

func (p *pgIndex) Stats(ctx context.Context) (map[string]int64, error) {
	return p.repo.CountByNamespace(ctx)
}

func (p *pgIndex) IsAvailable() bool {
	return p.repo != nil
}

func init() {
	Register("pgvector", newPgIndex)
}
