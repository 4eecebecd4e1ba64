package inventory

import (
	"time"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockAdjustment is one entry in the manual stock audit log. Entries are
// append-only: they are written once, never updated, and removed only when
// their product is deleted. Invoice-driven stock movements do not appear
// here; the invoice itself is their record.
type StockAdjustment struct {
	shared.BaseEntity
	ProductID      string
	Date           time.Time
	QuantityChange decimal.Decimal
	Reason         string
}

// NewStockAdjustment creates an adjustment entry dated now
func NewStockAdjustment(productID string, quantityChange decimal.Decimal, reason string) (*StockAdjustment, error) {
	if productID == "" {
		return nil, shared.NewValidationError("No product selected")
	}
	if quantityChange.IsZero() {
		return nil, shared.NewValidationError("Quantity change cannot be zero")
	}

	return &StockAdjustment{
		BaseEntity:     shared.NewBaseEntity(shared.PrefixStockAdjustment),
		ProductID:      productID,
		Date:           time.Now(),
		QuantityChange: quantityChange,
		Reason:         reason,
	}, nil
}

// IsDecrease reports whether the adjustment removes stock
func (a *StockAdjustment) IsDecrease() bool {
	return a.QuantityChange.IsNegative()
}
