package search

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// latestTitleRe detects current-generation products in titles.
var latestTitleRe = regexp.MustCompile(`202[4-5]|gen\s?\d`)

// attrScale holds attribute-match adjustments per strategy. The
// over-budget penalty is deliberately larger than the in-budget reward:
// exceeding a stated price limit hurts more than meeting it helps.
type attrScale struct {
	storage   float64
	color     float64
	priceOK   float64
	priceOver float64
}

var (
	lexicalScale  = attrScale{storage: 30, color: 30, priceOK: 30, priceOver: -60}
	semanticScale = attrScale{storage: 15, color: 15, priceOK: 10, priceOver: -30}
)

const (
	bm25Weight     = 0.7
	fuzzyWeight    = 0.3
	textScale      = 40
	semanticBase   = 100
	exactBonus     = 50
	wordBonus      = 15
	popularityMult = 10
	ratingMult     = 4
	intentBoost    = 20
	premiumPrice   = 50000
)

// rankLexical fuses BM25 and fuzzy title similarity with attribute,
// popularity, and intent signals for every indexed product.
func rankLexical(pq domain.ParsedQuery, idx *Index) []domain.RankedResult {
	bm25Scores := idx.bm25.Scores(pq.Tokens())

	results := make([]domain.RankedResult, 0, idx.Len())
	for i, p := range idx.products {
		var b domain.ScoreBreakdown
		b.BM25 = bm25Scores[i]
		b.Fuzzy = partialRatio(pq.Clean, strings.ToLower(p.Title))
		b.Text = (bm25Weight*b.BM25 + fuzzyWeight*b.Fuzzy) * textScale
		b.Attribute = attributeScore(pq, p, lexicalScale)
		b.Popularity = popularityScore(p)
		b.Intent = intentScore(pq, p)
		b.Total = b.Text + b.Attribute + b.Popularity + b.Intent

		results = append(results, domain.RankedResult{
			Product:   p.Clone(),
			Score:     b.Total,
			Breakdown: b,
		})
	}

	sortByScore(results)
	return results
}

// rankSemantic scores products by cosine similarity against the query
// vector. Products below minSimilarity are excluded before fusion:
// the semantic strategy hard-filters instead of ranking everything.
func rankSemantic(
	pq domain.ParsedQuery, idx *Index, queryVec []float32, minSimilarity float64, limit int,
) []domain.RankedResult {
	rawLower := strings.ToLower(strings.TrimSpace(pq.Raw))
	tokens := pq.Tokens()

	results := make([]domain.RankedResult, 0, idx.Len())
	for i, p := range idx.products {
		sim := cosineSimilarity(idx.vectors[i], queryVec)
		if sim < minSimilarity {
			continue
		}

		titleLower := strings.ToLower(p.Title)

		var b domain.ScoreBreakdown
		b.Semantic = sim
		b.Text = sim * semanticBase
		if rawLower != "" && strings.Contains(titleLower, rawLower) {
			b.Text += exactBonus
		} else {
			for _, w := range tokens {
				if len(w) > 2 && strings.Contains(titleLower, w) {
					b.Text += wordBonus
				}
			}
		}
		b.Attribute = attributeScore(pq, p, semanticScale)
		b.Popularity = popularityScore(p)
		b.Intent = intentScore(pq, p)
		b.Total = b.Text + b.Attribute + b.Popularity + b.Intent

		results = append(results, domain.RankedResult{
			Product:   p.Clone(),
			Score:     b.Total,
			Breakdown: b,
		})
	}

	sortByScore(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func attributeScore(pq domain.ParsedQuery, p domain.Product, sc attrScale) float64 {
	var s float64
	if pq.StorageGB != nil && strings.Contains(p.Title, strconv.Itoa(*pq.StorageGB)) {
		s += sc.storage
	}
	if pq.Color != "" && strings.Contains(strings.ToLower(p.Title), pq.Color) {
		s += sc.color
	}
	if pq.MaxPrice != nil {
		if p.Price <= *pq.MaxPrice {
			s += sc.priceOK
		} else {
			s += sc.priceOver
		}
	}
	return s
}

// popularityScore blends sales volume and rating. Absent or zero
// units_sold contributes nothing; log10 of zero must never leak in.
func popularityScore(p domain.Product) float64 {
	var s float64
	if units := p.UnitsSold(); units > 0 {
		s += math.Log10(units) * popularityMult
	}
	s += p.ClampedRating() * ratingMult
	return s
}

func intentScore(pq domain.ParsedQuery, p domain.Product) float64 {
	var s float64
	if pq.IsPremium && p.Price > premiumPrice {
		s += intentBoost
	}
	if pq.IsLatest && latestTitleRe.MatchString(strings.ToLower(p.Title)) {
		s += intentBoost
	}
	return s
}

// sortByScore orders results by descending score. The stable sort
// preserves repository order for equal scores.
func sortByScore(results []domain.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
