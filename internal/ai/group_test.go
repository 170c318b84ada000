package ai

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vector, nil
}

func (s *stubEmbedder) ModelName() string { return "stub" }

func TestGroupGeneratorFirstSuccessWins(t *testing.T) {
	first := &stubGenerator{response: "first"}
	second := &stubGenerator{response: "second"}
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "a", Generator: first},
		{Name: "b", Generator: second},
	})

	res, err := group.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "first", res)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 0, second.calls)
}

func TestGroupGeneratorFallsThrough(t *testing.T) {
	first := &stubGenerator{err: fmt.Errorf("rate limited")}
	second := &stubGenerator{response: "second"}
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "a", Generator: first},
		{Name: "b", Generator: second},
	})

	res, err := group.Generate(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "second", res)
	require.Equal(t, 1, first.calls)
	require.Equal(t, 1, second.calls)
}

func TestGroupGeneratorAllFailReturnsLastError(t *testing.T) {
	lastErr := fmt.Errorf("second failure")
	group := NewGroupGenerator([]GeneratorEntry{
		{Name: "a", Generator: &stubGenerator{err: fmt.Errorf("first failure")}},
		{Name: "b", Generator: &stubGenerator{err: lastErr}},
	})

	_, err := group.Generate(context.Background(), "p")
	require.ErrorIs(t, err, lastErr)
}

func TestNewGroupGeneratorEmpty(t *testing.T) {
	require.Nil(t, NewGroupGenerator(nil))
}

func TestGroupEmbedderFallsThrough(t *testing.T) {
	first := &stubEmbedder{err: fmt.Errorf("down")}
	second := &stubEmbedder{vector: []float32{1, 2}}
	group := NewGroupEmbedder([]EmbedderEntry{
		{Name: "a", Embedder: first},
		{Name: "b", Embedder: second},
	})

	vec, err := group.Embed(context.Background(), "text", TaskRetrievalQuery)
	require.NoError(t, err)
	require.Equal(t, []float32{1, 2}, vec)
	require.Equal(t, "a|b", group.ModelName())
}

func TestManagerDegradesWithoutProviders(t *testing.T) {
	mgr := NewManager(nil, nil, ManagerConfig{})
	require.False(t, mgr.GeneratorAvailable())
	require.False(t, mgr.EmbedderAvailable())

	_, err := mgr.Complete(context.Background(), "p")
	require.ErrorIs(t, err, ErrUnavailable)
	_, err = mgr.EmbedQuery(context.Background(), "q")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestManagerCompleteTrimsAndRejectsEmpty(t *testing.T) {
	mgr := NewManager(&stubGenerator{response: "  plan  "}, nil, ManagerConfig{})
	res, err := mgr.Complete(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "plan", res)

	mgr = NewManager(&stubGenerator{response: "   "}, nil, ManagerConfig{})
	_, err = mgr.Complete(context.Background(), "p")
	require.Error(t, err)
}
