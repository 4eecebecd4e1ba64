package trade

import (
	"time"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of a sales invoice
type InvoiceStatus string

const (
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusUnpaid        InvoiceStatus = "Unpaid"
	InvoiceStatusOverdue       InvoiceStatus = "Overdue"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
)

// IsValid checks if the status is one of the known values
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusUnpaid, InvoiceStatusOverdue, InvoiceStatusPartiallyPaid:
		return true
	}
	return false
}

// SalesInvoice is a customer-facing invoice. Creating, updating, or
// deleting one moves stock for every line referencing a stock-tracked
// product.
type SalesInvoice struct {
	shared.BaseEntity
	InvoiceNumber string
	CustomerID    string
	InvoiceDate   time.Time
	DueDate       time.Time
	Items         []InvoiceItem
	Status        InvoiceStatus
	AmountPaid    decimal.Decimal
}

// NewSalesInvoice creates a sales invoice in Unpaid state. The invoice
// number is assigned separately, either by the caller or from the numbering
// counter in settings.
func NewSalesInvoice(customerID string, invoiceDate, dueDate time.Time, items []InvoiceItem) (*SalesInvoice, error) {
	if customerID == "" {
		return nil, shared.NewValidationError("No customer selected")
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	return &SalesInvoice{
		BaseEntity:  shared.NewBaseEntity(shared.PrefixSalesInvoice),
		CustomerID:  customerID,
		InvoiceDate: invoiceDate,
		DueDate:     dueDate,
		Items:       items,
		Status:      InvoiceStatusUnpaid,
		AmountPaid:  decimal.Zero,
	}, nil
}

// SetNumber assigns the invoice number
func (inv *SalesInvoice) SetNumber(number string) error {
	if number == "" {
		return shared.NewValidationError("Invoice number cannot be empty")
	}
	inv.InvoiceNumber = number
	inv.Touch()
	return nil
}

// SetStatus transitions the payment status
func (inv *SalesInvoice) SetStatus(status InvoiceStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown invoice status: " + string(status))
	}
	inv.Status = status
	inv.Touch()
	return nil
}

// SetAmountPaid records the amount received against this invoice
func (inv *SalesInvoice) SetAmountPaid(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewValidationError("Amount paid cannot be negative")
	}
	inv.AmountPaid = amount
	inv.Touch()
	return nil
}

// SetItems replaces the line items
func (inv *SalesInvoice) SetItems(items []InvoiceItem) error {
	if err := ValidateItems(items); err != nil {
		return err
	}
	inv.Items = items
	inv.Touch()
	return nil
}

// SetDates updates invoice and due dates
func (inv *SalesInvoice) SetDates(invoiceDate, dueDate time.Time) {
	inv.InvoiceDate = invoiceDate
	inv.DueDate = dueDate
	inv.Touch()
}

// ReplaceDeletedProduct tombstones every line referencing the product.
// Returns true when at least one line changed.
func (inv *SalesInvoice) ReplaceDeletedProduct(productID, productName string) bool {
	items, changed := TombstoneProductLines(inv.Items, productID, productName)
	if changed {
		inv.Items = items
		inv.Touch()
	}
	return changed
}

// Total returns the invoice total including tax
func (inv *SalesInvoice) Total() decimal.Decimal {
	return sumItemTotals(inv.Items)
}

// Outstanding returns the unpaid balance
func (inv *SalesInvoice) Outstanding() decimal.Decimal {
	return inv.Total().Sub(inv.AmountPaid)
}
