package trade

import (
	"time"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseInvoiceStatus represents the payment state of a purchase invoice
type PurchaseInvoiceStatus string

const (
	PurchaseInvoiceStatusPaid          PurchaseInvoiceStatus = "Paid"
	PurchaseInvoiceStatusUnpaid        PurchaseInvoiceStatus = "Unpaid"
	PurchaseInvoiceStatusPartiallyPaid PurchaseInvoiceStatus = "Partially Paid"
)

// IsValid checks if the status is one of the known values
func (s PurchaseInvoiceStatus) IsValid() bool {
	switch s {
	case PurchaseInvoiceStatusPaid, PurchaseInvoiceStatusUnpaid, PurchaseInvoiceStatusPartiallyPaid:
		return true
	}
	return false
}

// PurchaseInvoice records goods received from a supplier. Its stock effect
// mirrors a sales invoice: creation increases stock, deletion retracts the
// received quantities.
type PurchaseInvoice struct {
	shared.BaseEntity
	InvoiceNumber string
	SupplierID    string
	PurchaseDate  time.Time
	Items         []InvoiceItem
	Status        PurchaseInvoiceStatus
	AmountPaid    decimal.Decimal
}

// NewPurchaseInvoice creates a purchase invoice in Unpaid state. The number
// comes from the supplier's document, so the store never generates it.
func NewPurchaseInvoice(supplierID, invoiceNumber string, purchaseDate time.Time, items []InvoiceItem) (*PurchaseInvoice, error) {
	if supplierID == "" {
		return nil, shared.NewValidationError("No supplier selected")
	}
	if invoiceNumber == "" {
		return nil, shared.NewValidationError("Invoice number cannot be empty")
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	return &PurchaseInvoice{
		BaseEntity:    shared.NewBaseEntity(shared.PrefixPurchaseInvoice),
		InvoiceNumber: invoiceNumber,
		SupplierID:    supplierID,
		PurchaseDate:  purchaseDate,
		Items:         items,
		Status:        PurchaseInvoiceStatusUnpaid,
		AmountPaid:    decimal.Zero,
	}, nil
}

// SetStatus transitions the payment status
func (pi *PurchaseInvoice) SetStatus(status PurchaseInvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown purchase invoice status: " + string(status))
	}
	pi.Status = status
	pi.Touch()
	return nil
}

// SetAmountPaid records the amount paid against this invoice
func (pi *PurchaseInvoice) SetAmountPaid(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewValidationError("Amount paid cannot be negative")
	}
	pi.AmountPaid = amount
	pi.Touch()
	return nil
}

// SetItems replaces the line items
func (pi *PurchaseInvoice) SetItems(items []InvoiceItem) error {
	if err := ValidateItems(items); err != nil {
		return err
	}
	pi.Items = items
	pi.Touch()
	return nil
}

// SetNumber updates the supplier document number
func (pi *PurchaseInvoice) SetNumber(number string) error {
	if number == "" {
		return shared.NewValidationError("Invoice number cannot be empty")
	}
	pi.InvoiceNumber = number
	pi.Touch()
	return nil
}

// SetPurchaseDate updates the purchase date
func (pi *PurchaseInvoice) SetPurchaseDate(date time.Time) {
	pi.PurchaseDate = date
	pi.Touch()
}

// ReplaceDeletedProduct tombstones every line referencing the product.
// Returns true when at least one line changed.
func (pi *PurchaseInvoice) ReplaceDeletedProduct(productID, productName string) bool {
	items, changed := TombstoneProductLines(pi.Items, productID, productName)
	if changed {
		pi.Items = items
		pi.Touch()
	}
	return changed
}

// Total returns the invoice total including tax
func (pi *PurchaseInvoice) Total() decimal.Decimal {
	return sumItemTotals(pi.Items)
}
