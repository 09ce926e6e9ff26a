package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Index is the derived, rebuildable search state over one product
// snapshot: tokenized corpus, BM25 statistics, and (for the semantic
// strategy) one embedding vector per product. All slices are
// index-aligned with the snapshot. An Index is immutable once built;
// refreshes build a new one and swap it in atomically.
type Index struct {
	products []domain.Product
	corpus   [][]string
	bm25     *bm25Model
	vectors  [][]float32
}

// Len returns the number of indexed products.
func (idx *Index) Len() int { return len(idx.products) }

// HasVectors reports whether corpus embeddings were computed.
func (idx *Index) HasVectors() bool { return idx.vectors != nil }

// tokenize lowercases and whitespace-splits "title description".
func tokenize(p domain.Product) []string {
	return strings.Fields(strings.ToLower(p.Title + " " + p.Description))
}

// buildIndex constructs an Index from a product snapshot. When embed is
// non-nil the whole corpus is vectorized in one batch call; a provider
// failure aborts the build, since a silently vectorless index would
// produce wrong similarities.
func buildIndex(ctx context.Context, products []domain.Product, embed domain.Embedder) (*Index, error) {
	idx := &Index{
		products: make([]domain.Product, len(products)),
		corpus:   make([][]string, len(products)),
	}
	texts := make([]string, len(products))

	for i, p := range products {
		idx.products[i] = p.Clone()
		idx.corpus[i] = tokenize(p)
		texts[i] = p.Title + " " + p.Description
	}

	idx.bm25 = newBM25(idx.corpus)

	if embed != nil && len(products) > 0 {
		res, err := embedCorpus(ctx, embed, texts)
		if err != nil {
			return nil, fmt.Errorf("embed corpus: %w", err)
		}
		if len(res.Embeddings) != len(products) {
			return nil, fmt.Errorf("embed corpus: got %d vectors for %d products: %w",
				len(res.Embeddings), len(products), domain.ErrEmbeddingProviderError)
		}
		idx.vectors = res.Embeddings
	}

	return idx, nil
}

func embedCorpus(ctx context.Context, embed domain.Embedder, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := embed.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, embed, texts)
}
