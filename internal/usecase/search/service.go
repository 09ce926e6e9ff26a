// Package search implements the hybrid ranking engine: the refreshable
// search index, the lexical (BM25 + fuzzy) and semantic (embedding
// cosine) relevance strategies, and the score fusion that merges text
// relevance with attribute, popularity, and intent signals.
package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/metrics"
	"github.com/kailas-cloud/prodsearch/internal/usecase/query"
)

// Service ranks the product catalog against free-text queries. The
// index lives behind an atomic pointer: concurrent searches always see
// one coherent snapshot, and RefreshIndex swaps in a fully built
// replacement, never a half-built one.
type Service struct {
	repo   ProductLister
	embed  domain.Embedder // nil under the lexical strategy
	cfg    Config
	logger *zap.Logger
	index  atomic.Pointer[Index]
}

// New creates a search service. embed may be nil when cfg.Strategy is
// lexical.
func New(repo ProductLister, embed domain.Embedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyLexical
	}
	return &Service{repo: repo, embed: embed, cfg: cfg, logger: logger}
}

// RefreshIndex rebuilds the search index from the current repository
// snapshot and swaps it in atomically. Not incremental: ingestion is
// batch-shaped, so rebuilds are too. Callers invoke this once at
// startup and again after bulk ingestion.
func (s *Service) RefreshIndex(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		metrics.IndexRebuildsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("list products: %w", err)
	}

	var embed domain.Embedder
	if s.cfg.Strategy == StrategySemantic {
		embed = s.embed
	}

	idx, err := buildIndex(ctx, products, embed)
	if err != nil {
		if embed != nil && s.cfg.AllowLexicalFallback {
			s.logger.Warn("corpus embedding failed, building lexical-only index",
				zap.Error(err))
			idx, err = buildIndex(ctx, products, nil)
		}
		if err != nil {
			metrics.IndexRebuildsTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("build index: %w", err)
		}
	}

	s.index.Store(idx)
	metrics.IndexRebuildsTotal.WithLabelValues("success").Inc()
	metrics.IndexSize.Set(float64(idx.Len()))

	s.logger.Info("search index rebuilt",
		zap.Int("products", idx.Len()),
		zap.Bool("vectors", idx.HasVectors()),
	)
	return nil
}

// Search parses the raw query and ranks the indexed catalog against it.
// Degenerate queries and an empty corpus return an empty list, not an
// error; repeated calls against an unrefreshed index are deterministic.
func (s *Service) Search(ctx context.Context, raw string) ([]domain.RankedResult, error) {
	idx := s.index.Load()
	if idx == nil {
		return nil, domain.ErrIndexNotReady
	}

	strategy := s.cfg.Strategy
	if strategy == StrategySemantic && !idx.HasVectors() {
		// Lexical-fallback index: rank without similarities rather
		// than compare against vectors that do not exist.
		strategy = StrategyLexical
	}

	start := time.Now()
	results, err := s.rank(ctx, strategy, idx, raw)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(string(strategy), "error").Inc()
		return nil, err
	}

	metrics.SearchRequestsTotal.WithLabelValues(string(strategy), "success").Inc()
	metrics.SearchDuration.WithLabelValues(string(strategy)).Observe(time.Since(start).Seconds())
	return results, nil
}

func (s *Service) rank(
	ctx context.Context, strategy Strategy, idx *Index, raw string,
) ([]domain.RankedResult, error) {
	if idx.Len() == 0 {
		return []domain.RankedResult{}, nil
	}

	pq := query.Parse(raw)
	if len(pq.Tokens()) == 0 {
		return []domain.RankedResult{}, nil
	}

	if strategy == StrategyLexical {
		return rankLexical(pq, idx), nil
	}

	res, err := s.embed.Embed(ctx, pq.Clean)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	return rankSemantic(pq, idx, res.Embedding, s.cfg.MinSimilarity, s.cfg.SemanticLimit), nil
}
