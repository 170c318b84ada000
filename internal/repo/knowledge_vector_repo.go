package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/avverma/fitrag/internal/model"
	"github.com/pgvector/pgvector-go"
)

// KnowledgeVectorRepo persists knowledge base chunks and their
// embeddings in Postgres. Similarity search uses cosine distance, so
// the returned score is 1 - distance and lands in the same [0, 1]
// range a hosted vector index reports.
type KnowledgeVectorRepo struct {
	db *sql.DB
}

func NewKnowledgeVectorRepo(db *sql.DB) *KnowledgeVectorRepo {
	return &KnowledgeVectorRepo{db: db}
}

type KnowledgeVectorRow struct {
	ID        string
	Namespace string
	Content   string
	Embedding []float32
	Metadata  map[string]string
	Ctime     int64
}

func (r *KnowledgeVectorRepo) Upsert(ctx context.Context, rows []KnowledgeVectorRow) error {
	const query = `
		INSERT INTO knowledge_vectors (id, namespace, content, embedding, metadata, ctime)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			namespace = EXCLUDED.namespace,
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			metadata = EXCLUDED.metadata,
			ctime = EXCLUDED.ctime
	`
	for _, row := range rows {
		meta, err := json.Marshal(row.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata for %s: %w", row.ID, err)
		}
		_, err = r.db.ExecContext(ctx, query,
			row.ID,
			row.Namespace,
			row.Content,
			pgvector.NewVector(row.Embedding),
			meta,
			row.Ctime,
		)
		if err != nil {
			return fmt.Errorf("upsert vector %s: %w", row.ID, err)
		}
	}
	return nil
}

func (r *KnowledgeVectorRepo) Search(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]string) ([]model.RetrievedDocument, error) {
	query := `
		SELECT id, content, metadata, 1 - (embedding <=> $1) AS score
		FROM knowledge_vectors
		WHERE namespace = $2
	`
	args := []interface{}{pgvector.NewVector(vector), namespace}
	if len(filter) > 0 {
		meta, err := json.Marshal(filter)
		if err != nil {
			return nil, fmt.Errorf("encode filter: %w", err)
		}
		query += fmt.Sprintf(" AND metadata @> $%d", len(args)+1)
		args = append(args, meta)
	}
	query += fmt.Sprintf(" ORDER BY embedding <=> $1, id ASC LIMIT $%d", len(args)+1)
	args = append(args, topK)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []model.RetrievedDocument
	for rows.Next() {
		var doc model.RetrievedDocument
		var meta []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &meta, &doc.Score); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata for %s: %w", doc.ID, err)
			}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *KnowledgeVectorRepo) DeleteNamespace(ctx context.Context, namespace string) error {
	const query = `DELETE FROM knowledge_vectors WHERE namespace = $1`
	_, err := r.db.ExecContext(ctx, query, namespace)
	return err
}

func (r *KnowledgeVectorRepo) CountByNamespace(ctx context.Context) (map[string]int64, error) {
	const query = `SELECT namespace, COUNT(*) FROM knowledge_vectors GROUP BY namespace`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := map[string]int64{}
	for rows.Next() {
		var ns string
		var n int64
		if err := rows.Scan(&ns, &n); err != nil {
			return nil, err
		}
		counts[ns] = n
	}
	return counts, rows.Err()
}
