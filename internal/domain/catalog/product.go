package catalog

import (
	"fmt"
	"strings"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a catalog entry that can appear on invoice lines.
// Goods track stock; service products do not, and carry nil Stock and
// ReorderPoint for their whole lifetime.
type Product struct {
	shared.BaseEntity
	Name          string
	SKU           string
	HSNCode       string
	Category      string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	TaxRate       decimal.Decimal
	IsService     bool
	Stock         *decimal.Decimal
	ReorderPoint  *decimal.Decimal
}

// NewProduct creates a new product. Goods start with zero stock and zero
// reorder point; services start with stock tracking disabled.
func NewProduct(name string, isService bool) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseEntity:    shared.NewBaseEntity(shared.PrefixProduct),
		Name:          name,
		SalePrice:     decimal.Zero,
		PurchasePrice: decimal.Zero,
		TaxRate:       decimal.Zero,
		IsService:     isService,
	}

	if !isService {
		stock := decimal.Zero
		reorder := decimal.Zero
		product.Stock = &stock
		product.ReorderPoint = &reorder
	}

	return product, nil
}

// Rename updates the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetPrices sets sale and purchase prices
func (p *Product) SetPrices(salePrice, purchasePrice decimal.Decimal) error {
	if salePrice.IsNegative() {
		return shared.NewValidationError("Sale price cannot be negative")
	}
	if purchasePrice.IsNegative() {
		return shared.NewValidationError("Purchase price cannot be negative")
	}
	p.SalePrice = salePrice
	p.PurchasePrice = purchasePrice
	p.Touch()
	return nil
}

// SetTaxRate sets the tax rate percentage
func (p *Product) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewValidationError("Tax rate cannot be negative")
	}
	p.TaxRate = rate
	p.Touch()
	return nil
}

// SetStock replaces the stock level outright. Used for opening stock; stock
// movements go through ApplyStockDelta.
func (p *Product) SetStock(stock decimal.Decimal) error {
	if !p.TracksStock() {
		return shared.NewDomainError("INVALID_STATE", "Service products do not track stock")
	}
	if stock.IsNegative() {
		return shared.NewValidationError("Stock cannot be negative")
	}
	s := stock
	p.Stock = &s
	p.Touch()
	return nil
}

// SetReorderPoint sets the low-stock threshold
func (p *Product) SetReorderPoint(point decimal.Decimal) error {
	if !p.TracksStock() {
		return shared.NewDomainError("INVALID_STATE", "Service products do not track stock")
	}
	if point.IsNegative() {
		return shared.NewValidationError("Reorder point cannot be negative")
	}
	r := point
	p.ReorderPoint = &r
	p.Touch()
	return nil
}

// TracksStock reports whether stock movements apply to this product
func (p *Product) TracksStock() bool {
	return !p.IsService && p.Stock != nil
}

// CurrentStock returns the stock level, zero for non-tracking products
func (p *Product) CurrentStock() decimal.Decimal {
	if p.Stock == nil {
		return decimal.Zero
	}
	return *p.Stock
}

// ApplyStockDelta applies one signed stock movement. Any movement that would
// drive stock negative is rejected with INSUFFICIENT_STOCK and leaves the
// product unchanged.
func (p *Product) ApplyStockDelta(delta decimal.Decimal) error {
	if !p.TracksStock() {
		return shared.NewDomainError("INVALID_STATE", "Service products do not track stock")
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %q: have %s, change %s", p.Name, p.Stock.String(), delta.String()))
	}
	p.Stock = &next
	p.Touch()
	return nil
}

// IsBelowReorderPoint reports whether stock has reached the reorder threshold
func (p *Product) IsBelowReorderPoint() bool {
	if !p.TracksStock() || p.ReorderPoint == nil {
		return false
	}
	return p.Stock.LessThanOrEqual(*p.ReorderPoint)
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewValidationError("Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Product name cannot exceed 200 characters")
	}
	return nil
}
