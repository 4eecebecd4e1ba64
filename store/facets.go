package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Products is the product catalog facet
type Products struct{ s *Store }

// Products returns the product catalog API
func (s *Store) Products() Products { return Products{s} }

func (p Products) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	var created *Product
	err := p.s.mutate(ctx, func() error {
		var err error
		created, err = p.s.products.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (p Products) Update(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	var updated *Product
	err := p.s.mutate(ctx, func() error {
		var err error
		updated, err = p.s.products.Update(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the product, rewrites document lines that referenced it
// into plain custom lines, and erases its adjustment history.
func (p Products) Delete(ctx context.Context, id string) error {
	return p.s.mutate(ctx, func() error {
		return p.s.products.Delete(ctx, id)
	})
}

func (p Products) GetByID(ctx context.Context, id string) (*Product, error) {
	var product *Product
	err := p.s.read(func() error {
		var err error
		product, err = p.s.products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (p Products) GetAll(ctx context.Context) ([]Product, error) {
	var products []Product
	err := p.s.read(func() error {
		var err error
		products, err = p.s.products.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// BelowReorderPoint lists goods whose stock fell to or under their
// reorder point.
func (p Products) BelowReorderPoint(ctx context.Context) ([]Product, error) {
	var products []Product
	err := p.s.read(func() error {
		var err error
		products, err = p.s.products.BelowReorderPoint(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Customers is the customer directory facet
type Customers struct{ s *Store }

// Customers returns the customer directory API
func (s *Store) Customers() Customers { return Customers{s} }

func (c Customers) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	var created *Customer
	err := c.s.mutate(ctx, func() error {
		var err error
		created, err = c.s.customers.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c Customers) Update(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	var updated *Customer
	err := c.s.mutate(ctx, func() error {
		var err error
		updated, err = c.s.customers.Update(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the customer unless invoices or quotations still
// reference them.
func (c Customers) Delete(ctx context.Context, id string) error {
	return c.s.mutate(ctx, func() error {
		return c.s.customers.Delete(ctx, id)
	})
}

func (c Customers) GetByID(ctx context.Context, id string) (*Customer, error) {
	var customer *Customer
	err := c.s.read(func() error {
		var err error
		customer, err = c.s.customers.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (c Customers) GetAll(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := c.s.read(func() error {
		var err error
		customers, err = c.s.customers.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

// Suppliers is the supplier directory facet
type Suppliers struct{ s *Store }

// Suppliers returns the supplier directory API
func (s *Store) Suppliers() Suppliers { return Suppliers{s} }

func (f Suppliers) Create(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	var created *Supplier
	err := f.s.mutate(ctx, func() error {
		var err error
		created, err = f.s.suppliers.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (f Suppliers) Update(ctx context.Context, id string, req UpdateSupplierRequest) (*Supplier, error) {
	var updated *Supplier
	err := f.s.mutate(ctx, func() error {
		var err error
		updated, err = f.s.suppliers.Update(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the supplier unless purchase invoices still reference them
func (f Suppliers) Delete(ctx context.Context, id string) error {
	return f.s.mutate(ctx, func() error {
		return f.s.suppliers.Delete(ctx, id)
	})
}

func (f Suppliers) GetByID(ctx context.Context, id string) (*Supplier, error) {
	var supplier *Supplier
	err := f.s.read(func() error {
		var err error
		supplier, err = f.s.suppliers.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

func (f Suppliers) GetAll(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	err := f.s.read(func() error {
		var err error
		suppliers, err = f.s.suppliers.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

// SalesInvoices is the sales invoice facet
type SalesInvoices struct{ s *Store }

// SalesInvoices returns the sales invoice API
func (s *Store) SalesInvoices() SalesInvoices { return SalesInvoices{s} }

// Create records the invoice and deducts sold stock in the same
// transaction. An empty invoice number draws the next one from settings.
func (f SalesInvoices) Create(ctx context.Context, req CreateSalesInvoiceRequest) (*SalesInvoice, error) {
	var created *SalesInvoice
	err := f.s.mutate(ctx, func() error {
		var err error
		created, err = f.s.sales.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (f SalesInvoices) Update(ctx context.Context, id string, req UpdateSalesInvoiceRequest) (*SalesInvoice, error) {
	var updated *SalesInvoice
	err := f.s.mutate(ctx, func() error {
		var err error
		updated, err = f.s.sales.Update(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the invoice and returns its sold stock
func (f SalesInvoices) Delete(ctx context.Context, id string) error {
	return f.s.mutate(ctx, func() error {
		return f.s.sales.Delete(ctx, id)
	})
}

func (f SalesInvoices) GetByID(ctx context.Context, id string) (*SalesInvoice, error) {
	var invoice *SalesInvoice
	err := f.s.read(func() error {
		var err error
		invoice, err = f.s.sales.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (f SalesInvoices) GetAll(ctx context.Context) ([]SalesInvoice, error) {
	var invoices []SalesInvoice
	err := f.s.read(func() error {
		var err error
		invoices, err = f.s.sales.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Quotations is the quotation facet
type Quotations struct{ s *Store }

// Quotations returns the quotation API
func (s *Store) Quotations() Quotations { return Quotations{s} }

// Create records the quotation. Quotations never move stock. An empty
// number draws the next one from settings.
func (f Quotations) Create(ctx context.Context, req CreateQuotationRequest) (*Quotation, error) {
	var created *Quotation
	err := f.s.mutate(ctx, func() error {
		var err error
		created, err = f.s.quotes.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (f Quotations) Update(ctx context.Context, id string, req UpdateQuotationRequest) (*Quotation, error) {
	var updated *Quotation
	err := f.s.mutate(ctx, func() error {
		var err error
		updated, err = f.s.quotes.Update(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (f Quotations) Delete(ctx context.Context, id string) error {
	return f.s.mutate(ctx, func() error {
		return f.s.quotes.Delete(ctx, id)
	})
}

func (f Quotations) GetByID(ctx context.Context, id string) (*Quotation, error) {
	var quotation *Quotation
	err := f.s.read(func() error {
		var err error
		quotation, err = f.s.quotes.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quotation, nil
}

func (f Quotations) GetAll(ctx context.Context) ([]Quotation, error) {
	var quotations []Quotation
	err := f.s.read(func() error {
		var err error
		quotations, err = f.s.quotes.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

// PurchaseInvoices is the purchase invoice facet
type PurchaseInvoices struct{ s *Store }

// PurchaseInvoices returns the purchase invoice API
func (s *Store) PurchaseInvoices() PurchaseInvoices { return PurchaseInvoices{s} }

// Create records the purchase and adds received stock in the same
// transaction. Purchase numbers come from the supplier's paperwork and are
// never generated.
func (f PurchaseInvoices) Create(ctx context.Context, req CreatePurchaseInvoiceRequest) (*PurchaseInvoice, error) {
	var created *PurchaseInvoice
	err := f.s.mutate(ctx, func() error {
		var err error
		created, err = f.s.purchases.Create(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (f PurchaseInvoices) Update(ctx context.Context, id string, req UpdatePurchaseInvoiceRequest) (*PurchaseInvoice, error) {
	var updated *PurchaseInvoice
	err := f.s.mutate(ctx, func() error {
		var err error
		updated, err = f.s.purchases.Update(ctx, id, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the purchase and retracts its received stock
func (f PurchaseInvoices) Delete(ctx context.Context, id string) error {
	return f.s.mutate(ctx, func() error {
		return f.s.purchases.Delete(ctx, id)
	})
}

func (f PurchaseInvoices) GetByID(ctx context.Context, id string) (*PurchaseInvoice, error) {
	var invoice *PurchaseInvoice
	err := f.s.read(func() error {
		var err error
		invoice, err = f.s.purchases.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func (f PurchaseInvoices) GetAll(ctx context.Context) ([]PurchaseInvoice, error) {
	var invoices []PurchaseInvoice
	err := f.s.read(func() error {
		var err error
		invoices, err = f.s.purchases.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Stock is the manual stock movement facet
type Stock struct{ s *Store }

// Stock returns the stock adjustment API
func (s *Store) Stock() Stock { return Stock{s} }

// Adjust applies one manual stock movement and logs it. quantityChange is
// signed; a movement that would drive stock negative is rejected.
func (f Stock) Adjust(ctx context.Context, productID string, quantityChange decimal.Decimal, reason string) (*StockAdjustment, error) {
	var adjustment *StockAdjustment
	err := f.s.mutate(ctx, func() error {
		var err error
		adjustment, err = f.s.stock.Adjust(ctx, AdjustStockRequest{
			ProductID:      productID,
			QuantityChange: quantityChange,
			Reason:         reason,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// Adjustments returns every adjustment on record, newest first
func (f Stock) Adjustments(ctx context.Context) ([]StockAdjustment, error) {
	var adjustments []StockAdjustment
	err := f.s.read(func() error {
		var err error
		adjustments, err = f.s.stock.Adjustments(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

// AdjustmentsForProduct returns one product's adjustments, newest first
func (f Stock) AdjustmentsForProduct(ctx context.Context, productID string) ([]StockAdjustment, error) {
	var adjustments []StockAdjustment
	err := f.s.read(func() error {
		var err error
		adjustments, err = f.s.stock.AdjustmentsForProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Settings is the application settings facet
type Settings struct{ s *Store }

// Settings returns the settings API
func (s *Store) Settings() Settings { return Settings{s} }

// Get returns both settings sections. Missing or unreadable sections are
// restored to defaults and written back, so Get runs as a mutation.
func (f Settings) Get(ctx context.Context) (AppSettings, error) {
	var settings AppSettings
	err := f.s.mutate(ctx, func() error {
		var err error
		settings, err = f.s.settings.Get(ctx)
		return err
	})
	if err != nil {
		return AppSettings{}, err
	}
	return settings, nil
}

// Update patches the provided settings sections and returns the result
func (f Settings) Update(ctx context.Context, req UpdateSettingsRequest) (AppSettings, error) {
	var settings AppSettings
	err := f.s.mutate(ctx, func() error {
		var err error
		settings, err = f.s.settings.Update(ctx, req)
		return err
	})
	if err != nil {
		return AppSettings{}, err
	}
	return settings, nil
}
