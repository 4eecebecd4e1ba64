package trade

import "context"

// SalesInvoiceRepository defines the interface for sales invoice persistence
type SalesInvoiceRepository interface {
	FindByID(ctx context.Context, id string) (*SalesInvoice, error)
	FindAll(ctx context.Context) ([]SalesInvoice, error)

	// CountByCustomer counts invoices referencing the customer, for
	// delete conflict checks
	CountByCustomer(ctx context.Context, customerID string) (int64, error)

	// ExistsByNumber reports whether an invoice already carries the number
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	Save(ctx context.Context, invoice *SalesInvoice) error
	Delete(ctx context.Context, id string) error
}

// QuotationRepository defines the interface for quotation persistence
type QuotationRepository interface {
	FindByID(ctx context.Context, id string) (*Quotation, error)
	FindAll(ctx context.Context) ([]Quotation, error)

	// CountByCustomer counts quotations referencing the customer
	CountByCustomer(ctx context.Context, customerID string) (int64, error)

	// ExistsByNumber reports whether a quotation already carries the number
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	Save(ctx context.Context, quotation *Quotation) error
	Delete(ctx context.Context, id string) error
}

// PurchaseInvoiceRepository defines the interface for purchase invoice persistence
type PurchaseInvoiceRepository interface {
	FindByID(ctx context.Context, id string) (*PurchaseInvoice, error)
	FindAll(ctx context.Context) ([]PurchaseInvoice, error)

	// CountBySupplier counts purchase invoices referencing the supplier
	CountBySupplier(ctx context.Context, supplierID string) (int64, error)

	Save(ctx context.Context, invoice *PurchaseInvoice) error
	Delete(ctx context.Context, id string) error
}
