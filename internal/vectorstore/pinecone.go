package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avverma/fitrag/internal/model"
)

const pineconeUpsertBatchSize = 100

type pineconeConfig struct {
	APIKey string `json:"api_key"`
	Host   string `json:"host"`
}

// pineconeIndex talks to a Pinecone serverless index over its data
// plane API. Namespaces partition the index, and metadata filters use
// the $eq operator per field.
type pineconeIndex struct {
	apiKey string
	host   string
	client *http.Client
}

func newPineconeIndex(args interface{}, _ Deps) (Index, error) {
	var cfg pineconeConfig
	if err := decodeConfig(args, &cfg); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone api_key is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone host is required")
	}
	host := cfg.Host
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return &pineconeIndex{
		apiKey: cfg.APIKey,
		host:   strings.TrimRight(host, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type pineconeVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (p *pineconeIndex) Upsert(ctx context.Context, namespace string, records []Record) error {
	for start := 0; start < len(records); start += pineconeUpsertBatchSize {
		end := start + pineconeUpsertBatchSize
		if end > len(records) {
			end = len(records)
		}
		vectors := make([]pineconeVector, 0, end-start)
		for _, rec := range records[start:end] {
			metadata := make(map[string]string, len(rec.Metadata)+1)
			for k, v := range rec.Metadata {
				metadata[k] = v
			}
			metadata["text"] = truncateText(rec.Text)
			vectors = append(vectors, pineconeVector{
				ID:       rec.ID,
				Values:   rec.Values,
				Metadata: metadata,
			})
		}
		payload := map[string]interface{}{
			"vectors":   vectors,
			"namespace": namespace,
		}
		if err := p.post(ctx, "/vectors/upsert", payload, nil); err != nil {
			return fmt.Errorf("upsert batch %d: %w", start/pineconeUpsertBatchSize, err)
		}
	}
	return nil
}

type pineconeQueryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float64           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

func (p *pineconeIndex) Query(ctx context.Context, namespace string, vector []float32, topK int, filter map[string]string) ([]model.RetrievedDocument, error) {
	payload := map[string]interface{}{
		"namespace":       namespace,
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
	}
	if len(filter) > 0 {
		conditions := make(map[string]interface{}, len(filter))
		for k, v := range filter {
			conditions[k] = map[string]interface{}{"$eq": v}
		}
		payload["filter"] = conditions
	}
	var resp pineconeQueryResponse
	if err := p.post(ctx, "/query", payload, &resp); err != nil {
		return nil, err
	}
	docs := make([]model.RetrievedDocument, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		content := match.Metadata["text"]
		docs = append(docs, model.RetrievedDocument{
			ID:       match.ID,
			Content:  content,
			Score:    match.Score,
			Metadata: match.Metadata,
		})
	}
	return docs, nil
}

func (p *pineconeIndex) DeleteNamespace(ctx context.Context, namespace string) error {
	payload := map[string]interface{}{
		"deleteAll": true,
		"namespace": namespace,
	}
	err := p.post(ctx, "/vectors/delete", payload, nil)
	// Deleting a namespace that was never written is not a failure.
	if err != nil && strings.Contains(err.Error(), "status 404") {
		return nil
	}
	return err
}

type pineconeStatsResponse struct {
	Namespaces map[string]struct {
		VectorCount int64 `json:"vectorCount"`
	} `json:"namespaces"`
}

func (p *pineconeIndex) Stats(ctx context.Context) (map[string]int64, error) {
	var resp pineconeStatsResponse
	if err := p.post(ctx, "/describe_index_stats", map[string]interface{}{}, &resp); err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(resp.Namespaces))
	for ns, stats := range resp.Namespaces {
		counts[ns] = stats.VectorCount
	}
	return counts, nil
}

func (p *pineconeIndex) IsAvailable() bool {
	return p.apiKey != "" && p.host != ""
}

func (p *pineconeIndex) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Api-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("call pinecone: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone %s status %d: %s", path, resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func init() {
	Register("pinecone", newPineconeIndex)
}
