package partner

import "context"

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id string) (*Supplier, error)

	// FindAll returns every supplier, newest first
	FindAll(ctx context.Context) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete removes a supplier row
	Delete(ctx context.Context, id string) error
}
