package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	productuc "github.com/kailas-cloud/prodsearch/internal/usecase/product"
	searchuc "github.com/kailas-cloud/prodsearch/internal/usecase/search"
)

// memRepo is an in-memory product repository backing handler tests.
type memRepo struct {
	products map[int64]domain.Product
	nextID   int64
}

func newMemRepo() *memRepo {
	return &memRepo{products: make(map[int64]domain.Product)}
}

func (m *memRepo) Add(_ context.Context, p domain.Product) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	m.products[p.ID] = p
	return p.ID, nil
}

func (m *memRepo) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *memRepo) UpdateMetadata(
	_ context.Context, id int64, metadata map[string]string,
) (domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if p.Metadata == nil {
		p.Metadata = map[string]string{}
	}
	for k, v := range metadata {
		p.Metadata[k] = v
	}
	m.products[id] = p
	return p, nil
}

func (m *memRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(m.products))
	for id := int64(1); id <= m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memRepo) Ping(context.Context) error { return nil }

// newTestServer wires a lexical-only API stack against an in-memory repo.
func newTestServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	logger := zap.NewNop()

	productSvc := productuc.New(repo)
	searchSvc := searchuc.New(repo, nil, searchuc.Config{Strategy: searchuc.StrategyLexical}, logger)
	healthSvc := healthuc.New(repo, nil)

	server := NewServer(productSvc, searchSvc, healthSvc, logger)
	r := chi.NewRouter()
	server.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, repo
}
