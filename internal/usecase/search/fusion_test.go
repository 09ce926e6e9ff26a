package search

import (
	"testing"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/usecase/query"
)

func oneProductIndex(t *testing.T, p domain.Product, vec []float32) *Index {
	t.Helper()
	return &Index{
		products: []domain.Product{p},
		corpus:   [][]string{tokenize(p)},
		bm25:     newBM25([][]string{tokenize(p)}),
		vectors:  [][]float32{vec},
	}
}

func TestRankSemantic_ExactPhraseBonus(t *testing.T) {
	pq := query.Parse("galaxy ultra")
	vec := []float32{1, 0}

	exact := oneProductIndex(t, domain.Product{ID: 1, Title: "Samsung Galaxy Ultra 256GB"}, vec)
	partial := oneProductIndex(t, domain.Product{ID: 2, Title: "Galaxy Case for Ultra Slim Bags"}, vec)

	exactRes := rankSemantic(pq, exact, vec, 0.30, 20)
	partialRes := rankSemantic(pq, partial, vec, 0.30, 20)

	// Same cosine, but the verbatim phrase earns +50 against 2×15 for
	// the individual words.
	wantDelta := float64(exactBonus - 2*wordBonus)
	delta := exactRes[0].Breakdown.Text - partialRes[0].Breakdown.Text
	if delta != wantDelta {
		t.Errorf("exact-phrase delta = %v, want %v", delta, wantDelta)
	}
}

func TestRankSemantic_ShortWordsEarnNoBonus(t *testing.T) {
	pq := query.Parse("4k tv")
	// "tv" normalizes to "television"; "4k" is too short for a word bonus.
	idx := oneProductIndex(t, domain.Product{ID: 1, Title: "4k monitor stand"}, []float32{1, 0})

	res := rankSemantic(pq, idx, []float32{1, 0}, 0.30, 20)
	if res[0].Breakdown.Text != semanticBase {
		t.Errorf("short query words must not earn partial bonuses: text = %v", res[0].Breakdown.Text)
	}
}

func TestIntentScore(t *testing.T) {
	tests := []struct {
		name    string
		rawQ    string
		product domain.Product
		want    float64
	}{
		{"premium over threshold", "flagship phone", domain.Product{Title: "Phone", Price: 60000}, 20},
		{"premium under threshold", "flagship phone", domain.Product{Title: "Phone", Price: 40000}, 0},
		{"latest by year", "latest phone", domain.Product{Title: "Phone 2025 Edition"}, 20},
		{"latest by generation", "latest console", domain.Product{Title: "Console Gen 5"}, 20},
		{"latest without marker", "latest phone", domain.Product{Title: "Phone Classic"}, 0},
		{"no intent", "red phone", domain.Product{Title: "Phone 2025", Price: 90000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pq := query.Parse(tt.rawQ)
			if got := intentScore(pq, tt.product); got != tt.want {
				t.Errorf("intentScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttributeScore_StorageAndColor(t *testing.T) {
	pq := query.Parse("256gb black smartphone")
	p := domain.Product{Title: "Galaxy 256GB Black Smartphone"}

	got := attributeScore(pq, p, lexicalScale)
	if got != 60 {
		t.Errorf("storage + color match = %v, want 60", got)
	}

	got = attributeScore(pq, p, semanticScale)
	if got != 30 {
		t.Errorf("semantic storage + color match = %v, want 30", got)
	}
}
