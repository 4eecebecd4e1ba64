package trade

import (
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// deletedItemLabel prefixes the custom name left behind on lines whose
// product was removed from the catalog.
const deletedItemLabel = "[Deleted] "

// InvoiceItem is one line of a sales invoice, quotation, or purchase
// invoice. Exactly one of ProductID/CustomItemName identifies the line:
// product lines reference the catalog, custom lines carry their own label
// (including the tombstone label left behind when a product is deleted).
// Item arrays are persisted as one serialized text column per document.
type InvoiceItem struct {
	ProductID      string          `json:"productId,omitempty"`
	CustomItemName string          `json:"customItemName,omitempty"`
	HSNCode        string          `json:"hsnCode,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Rate           decimal.Decimal `json:"rate"`
	TaxRate        decimal.Decimal `json:"taxRate"`
}

// IsProductLine reports whether the line references a catalog product
func (i InvoiceItem) IsProductLine() bool {
	return i.ProductID != ""
}

// Validate checks one line for well-formedness
func (i InvoiceItem) Validate() error {
	if i.ProductID == "" && i.CustomItemName == "" {
		return shared.NewValidationError("Line item needs a product or a custom item name")
	}
	if !i.Quantity.IsPositive() {
		return shared.NewValidationError("Line item quantity must be positive")
	}
	if i.Rate.IsNegative() {
		return shared.NewValidationError("Line item rate cannot be negative")
	}
	if i.TaxRate.IsNegative() {
		return shared.NewValidationError("Line item tax rate cannot be negative")
	}
	return nil
}

// Amount returns quantity times rate, before tax
func (i InvoiceItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Rate)
}

// Total returns the line amount including tax
func (i InvoiceItem) Total() decimal.Decimal {
	tax := i.Amount().Mul(i.TaxRate).Div(decimal.NewFromInt(100))
	return i.Amount().Add(tax)
}

// ValidateItems checks a document's line items: at least one line, every
// line well-formed.
func ValidateItems(items []InvoiceItem) error {
	if len(items) == 0 {
		return shared.NewValidationError("At least one line item is required")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TombstoneProductLines rewrites every line referencing productID into a
// custom line labeled after the deleted product, keeping quantity, rate,
// and tax untouched so historical totals stay correct. Returns the new
// slice and whether anything changed.
func TombstoneProductLines(items []InvoiceItem, productID, productName string) ([]InvoiceItem, bool) {
	changed := false
	out := make([]InvoiceItem, len(items))
	for idx, item := range items {
		if item.ProductID == productID {
			item.ProductID = ""
			item.CustomItemName = deletedItemLabel + productName
			changed = true
		}
		out[idx] = item
	}
	return out, changed
}

// sumItemTotals adds up line totals for a document
func sumItemTotals(items []InvoiceItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total())
	}
	return total
}
