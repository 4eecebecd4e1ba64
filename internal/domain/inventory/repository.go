package inventory

import "context"

// StockAdjustmentRepository defines the interface for the append-only
// adjustment log
type StockAdjustmentRepository interface {
	// FindAll returns every adjustment, newest first
	FindAll(ctx context.Context) ([]StockAdjustment, error)

	// FindByProduct returns the adjustment history of one product, newest first
	FindByProduct(ctx context.Context, productID string) ([]StockAdjustment, error)

	// Append writes one new log entry
	Append(ctx context.Context, adjustment *StockAdjustment) error

	// DeleteByProduct removes a product's whole adjustment history.
	// Used only by product deletion.
	DeleteByProduct(ctx context.Context, productID string) error
}
