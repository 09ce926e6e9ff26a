package search

import "math"

// Okapi BM25 parameters. Negative IDFs (terms in more than half the
// corpus) are floored at bm25Epsilon times the average IDF so common
// terms still contribute a small positive weight.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// bm25Model holds the per-corpus term statistics needed to score a
// token query against every document.
type bm25Model struct {
	termFreqs []map[string]int
	idf       map[string]float64
	docLens   []int
	avgdl     float64
}

// newBM25 computes corpus statistics. An empty corpus yields a valid
// model that scores everything zero.
func newBM25(corpus [][]string) *bm25Model {
	m := &bm25Model{
		termFreqs: make([]map[string]int, len(corpus)),
		docLens:   make([]int, len(corpus)),
		idf:       make(map[string]float64),
	}

	docCount := make(map[string]int)
	totalLen := 0

	for i, doc := range corpus {
		freqs := make(map[string]int, len(doc))
		for _, term := range doc {
			freqs[term]++
		}
		for term := range freqs {
			docCount[term]++
		}
		m.termFreqs[i] = freqs
		m.docLens[i] = len(doc)
		totalLen += len(doc)
	}

	if len(corpus) == 0 {
		return m
	}
	m.avgdl = float64(totalLen) / float64(len(corpus))

	n := float64(len(corpus))
	var idfSum float64
	var negative []string
	for term, df := range docCount {
		idf := math.Log((n - float64(df) + 0.5) / (float64(df) + 0.5))
		m.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}

	eps := bm25Epsilon * idfSum / float64(len(m.idf))
	for _, term := range negative {
		m.idf[term] = eps
	}

	return m
}

// Scores returns one BM25 score per document, aligned with corpus
// order. Unknown query terms contribute nothing.
func (m *bm25Model) Scores(queryTokens []string) []float64 {
	scores := make([]float64, len(m.termFreqs))
	if len(queryTokens) == 0 || m.avgdl == 0 {
		return scores
	}

	for i, freqs := range m.termFreqs {
		norm := bm25K1 * (1 - bm25B + bm25B*float64(m.docLens[i])/m.avgdl)
		var score float64
		for _, term := range queryTokens {
			f := float64(freqs[term])
			if f == 0 {
				continue
			}
			score += m.idf[term] * (f * (bm25K1 + 1)) / (f + norm)
		}
		scores[i] = score
	}

	return scores
}
