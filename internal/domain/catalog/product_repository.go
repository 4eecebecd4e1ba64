package catalog

import "context"

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindAll returns every product, newest first
	FindAll(ctx context.Context) ([]Product, error)

	// FindBelowReorderPoint returns stock-tracked products at or below
	// their reorder threshold
	FindBelowReorderPoint(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product row
	Delete(ctx context.Context, id string) error
}
