// Package product handles catalog CRUD: storing records, merging
// metadata, and listing the corpus for index builds.
package product

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Service handles product CRUD.
type Service struct {
	repo Repository
}

// New creates a product service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add validates and stores a new product, returning its assigned ID.
func (s *Service) Add(ctx context.Context, p domain.Product) (int64, error) {
	if err := validate(p); err != nil {
		return 0, err
	}
	if p.Metadata == nil {
		p.Metadata = map[string]string{}
	}

	id, err := s.repo.Add(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("add product: %w", err)
	}
	return id, nil
}

// Get returns one product by ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// UpdateMetadata merges the given keys into an existing product's
// metadata. Existing keys are overwritten, others are kept; metadata
// is an open-ended extension point and partial updates are the norm.
func (s *Service) UpdateMetadata(
	ctx context.Context, id int64, metadata map[string]string,
) (domain.Product, error) {
	if len(metadata) == 0 {
		return domain.Product{}, fmt.Errorf("%w: metadata must not be empty", domain.ErrInvalidProduct)
	}

	p, err := s.repo.UpdateMetadata(ctx, id, metadata)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update metadata for product %d: %w", id, err)
	}
	return p, nil
}

// List returns the full catalog snapshot in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func validate(p domain.Product) error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalidProduct)
	}
	return nil
}
