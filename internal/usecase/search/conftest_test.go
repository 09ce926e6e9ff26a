package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	products []domain.Product
	err      error
	calls    int
}

func (m *mockRepo) List(_ context.Context) ([]domain.Product, error) {
	m.calls++
	return m.products, m.err
}

// mockEmbedder returns canned vectors keyed by input text, falling back
// to def for unknown texts.
type mockEmbedder struct {
	vecs       map[string][]float32
	def        []float32
	embedErr   error
	batchErr   error
	embedCalls int
	batchCalls int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return domain.EmbeddingResult{}, m.embedErr
	}
	return domain.EmbeddingResult{Embedding: m.vecFor(text)}, nil
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return domain.BatchEmbeddingResult{}, m.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vecFor(t)
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

func (m *mockEmbedder) vecFor(text string) []float32 {
	if v, ok := m.vecs[text]; ok {
		return v
	}
	if m.def != nil {
		return m.def
	}
	return []float32{1, 0}
}

func testLogger() *zap.Logger { return zap.NewNop() }
