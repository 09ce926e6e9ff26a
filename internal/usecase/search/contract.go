package search

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// ProductLister supplies the current product snapshot for index builds.
type ProductLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Strategy selects the relevance model used for ranking.
type Strategy string

const (
	// StrategyLexical ranks every product by BM25 + fuzzy title match.
	StrategyLexical Strategy = "lexical"
	// StrategySemantic ranks by embedding cosine similarity with a hard
	// relevance threshold.
	StrategySemantic Strategy = "semantic"
)

// Config holds ranking strategy parameters.
type Config struct {
	Strategy Strategy
	// MinSimilarity excludes products below this cosine similarity from
	// semantic ranking entirely. The lexical strategy ranks everything
	// and relies on scoring to push irrelevant items down; both
	// policies are kept configurable.
	MinSimilarity float64
	// SemanticLimit bounds semantic result sets. Zero disables truncation.
	SemanticLimit int
	// AllowLexicalFallback lets RefreshIndex degrade to a lexical-only
	// index when the embedding provider fails, instead of erroring.
	AllowLexicalFallback bool
}
