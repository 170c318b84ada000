package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type ManagerConfig struct {
	TimeoutSeconds int
}

// Manager fronts the configured generator and embedder chains. Both
// sides are optional: a nil chain means "not configured" and callers
// are expected to degrade instead of failing.
type Manager struct {
	generator IGenerator
	embedder  IEmbedder
	cfg       ManagerConfig
}

func NewManager(generator IGenerator, embedder IEmbedder, cfg ManagerConfig) *Manager {
	return &Manager{
		generator: generator,
		embedder:  embedder,
		cfg:       cfg,
	}
}

func (m *Manager) GeneratorAvailable() bool {
	return m != nil && m.generator != nil
}

func (m *Manager) EmbedderAvailable() bool {
	return m != nil && m.embedder != nil
}

func (m *Manager) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if !m.EmbedderAvailable() {
		return nil, ErrUnavailable
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.embedder.Embed(ctx, text, TaskRetrievalQuery)
}

func (m *Manager) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if !m.EmbedderAvailable() {
		return nil, ErrUnavailable
	}
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		callCtx, cancel := m.withTimeout(ctx)
		vec, err := m.embedder.Embed(callCtx, text, TaskRetrievalDocument)
		cancel()
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (m *Manager) Complete(ctx context.Context, prompt string) (string, error) {
	if !m.GeneratorAvailable() {
		return "", ErrUnavailable
	}
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	resp, err := m.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", fmt.Errorf("empty ai response")
	}
	return text, nil
}

func (m *Manager) EmbeddingModelName() string {
	if m == nil || m.embedder == nil {
		return ""
	}
	return m.embedder.ModelName()
}

func (m *Manager) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.cfg.TimeoutSeconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(m.cfg.TimeoutSeconds)*time.Second)
}
