package trade

import (
	"time"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle state of a quotation
type QuotationStatus string

const (
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusInvoiced QuotationStatus = "Invoiced"
	QuotationStatusExpired  QuotationStatus = "Expired"
)

// IsValid checks if the status is one of the known values
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusSent, QuotationStatusAccepted, QuotationStatusInvoiced, QuotationStatusExpired:
		return true
	}
	return false
}

// Quotation is a price offer to a customer. Quotations never move stock.
type Quotation struct {
	shared.BaseEntity
	QuotationNumber string
	CustomerID      string
	QuoteDate       time.Time
	ExpiryDate      time.Time
	Items           []InvoiceItem
	Status          QuotationStatus
}

// NewQuotation creates a quotation in Sent state
func NewQuotation(customerID string, quoteDate, expiryDate time.Time, items []InvoiceItem) (*Quotation, error) {
	if customerID == "" {
		return nil, shared.NewValidationError("No customer selected")
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	return &Quotation{
		BaseEntity: shared.NewBaseEntity(shared.PrefixQuotation),
		CustomerID: customerID,
		QuoteDate:  quoteDate,
		ExpiryDate: expiryDate,
		Items:      items,
		Status:     QuotationStatusSent,
	}, nil
}

// SetNumber assigns the quotation number
func (q *Quotation) SetNumber(number string) error {
	if number == "" {
		return shared.NewValidationError("Quotation number cannot be empty")
	}
	q.QuotationNumber = number
	q.Touch()
	return nil
}

// SetStatus transitions the quotation status
func (q *Quotation) SetStatus(status QuotationStatus) error {
	if !status.IsValid() {
		return shared.NewValidationError("Unknown quotation status: " + string(status))
	}
	q.Status = status
	q.Touch()
	return nil
}

// SetItems replaces the line items
func (q *Quotation) SetItems(items []InvoiceItem) error {
	if err := ValidateItems(items); err != nil {
		return err
	}
	q.Items = items
	q.Touch()
	return nil
}

// SetDates updates quote and expiry dates
func (q *Quotation) SetDates(quoteDate, expiryDate time.Time) {
	q.QuoteDate = quoteDate
	q.ExpiryDate = expiryDate
	q.Touch()
}

// ReplaceDeletedProduct tombstones every line referencing the product.
// Returns true when at least one line changed.
func (q *Quotation) ReplaceDeletedProduct(productID, productName string) bool {
	items, changed := TombstoneProductLines(q.Items, productID, productName)
	if changed {
		q.Items = items
		q.Touch()
	}
	return changed
}

// Total returns the quotation total including tax
func (q *Quotation) Total() decimal.Decimal {
	return sumItemTotals(q.Items)
}
