package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

func TestBuildIndex_Empty(t *testing.T) {
	idx, err := buildIndex(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %d products", idx.Len())
	}
	if idx.HasVectors() {
		t.Error("empty index should have no vectors")
	}
}

func TestBuildIndex_EmptyWithEmbedder(t *testing.T) {
	embed := &mockEmbedder{}
	idx, err := buildIndex(context.Background(), nil, embed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embed.embedCalls != 0 || embed.batchCalls != 0 {
		t.Error("embedder should not be called for an empty snapshot")
	}
	if idx.Len() != 0 {
		t.Errorf("expected empty index, got %d products", idx.Len())
	}
}

func TestBuildIndex_Alignment(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Title: "Galaxy Smartphone", Description: "128GB storage"},
		{ID: 2, Title: "LED Television", Description: ""},
	}

	idx, err := buildIndex(context.Background(), products, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 products, got %d", idx.Len())
	}

	want := [][]string{
		{"galaxy", "smartphone", "128gb", "storage"},
		{"led", "television"},
	}
	for i, tokens := range want {
		if len(idx.corpus[i]) != len(tokens) {
			t.Fatalf("corpus[%d] = %v, want %v", i, idx.corpus[i], tokens)
		}
		for j, tok := range tokens {
			if idx.corpus[i][j] != tok {
				t.Errorf("corpus[%d][%d] = %q, want %q", i, j, idx.corpus[i][j], tok)
			}
		}
		if idx.products[i].ID != products[i].ID {
			t.Errorf("products[%d] misaligned with snapshot", i)
		}
	}
}

func TestBuildIndex_SnapshotIsACopy(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Title: "x", Metadata: map[string]string{"units_sold": "10"}},
	}
	idx, err := buildIndex(context.Background(), products, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	products[0].Metadata["units_sold"] = "999"
	if idx.products[0].Metadata["units_sold"] != "10" {
		t.Error("index aliases repository metadata")
	}
}

func TestBuildIndex_EmbedsCorpusInBatch(t *testing.T) {
	embed := &mockEmbedder{def: []float32{0.1, 0.2}}
	products := []domain.Product{
		{ID: 1, Title: "a", Description: "b"},
		{ID: 2, Title: "c", Description: "d"},
	}

	idx, err := buildIndex(context.Background(), products, embed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !idx.HasVectors() {
		t.Fatal("expected vectors")
	}
	if len(idx.vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(idx.vectors))
	}
	if embed.batchCalls != 1 {
		t.Errorf("expected a single batch call, got %d", embed.batchCalls)
	}
	if embed.embedCalls != 0 {
		t.Errorf("per-text Embed should not be used when batch is available, got %d calls", embed.embedCalls)
	}
}

func TestBuildIndex_EmbedFailure(t *testing.T) {
	embed := &mockEmbedder{batchErr: domain.ErrEmbeddingProviderError}
	products := []domain.Product{{ID: 1, Title: "a"}}

	_, err := buildIndex(context.Background(), products, embed)
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected embedding provider error, got %v", err)
	}
}
