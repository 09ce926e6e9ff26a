package domain

// ScoreBreakdown records the individual signals that went into a fused
// ranking score. Exposed to callers because relevance tuning is
// impossible without seeing the components.
type ScoreBreakdown struct {
	BM25       float64 `json:"bm25,omitempty"`
	Fuzzy      float64 `json:"fuzzy,omitempty"`
	Semantic   float64 `json:"semantic,omitempty"`
	Text       float64 `json:"text"`
	Attribute  float64 `json:"attribute"`
	Popularity float64 `json:"popularity"`
	Intent     float64 `json:"intent"`
	Total      float64 `json:"total"`
}

// RankedResult is a product with its fused relevance score. The product
// is a copy, never an alias of repository data.
type RankedResult struct {
	Product   Product
	Score     float64
	Breakdown ScoreBreakdown
}
