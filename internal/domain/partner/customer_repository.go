package partner

import "context"

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindAll returns every customer, newest first
	FindAll(ctx context.Context) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer row
	Delete(ctx context.Context, id string) error
}
