package product

import (
	"context"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Repository defines the storage contract for product records.
type Repository interface {
	Add(ctx context.Context, p domain.Product) (int64, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	// UpdateMetadata merges the given keys into the product's metadata
	// and returns the updated record.
	UpdateMetadata(ctx context.Context, id int64, metadata map[string]string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
