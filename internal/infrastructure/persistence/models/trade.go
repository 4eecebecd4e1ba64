package models

import (
	"time"

	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SalesInvoiceModel is the persistence model for the SalesInvoice domain
// entity. Line items are stored as a JSON text column.
type SalesInvoiceModel struct {
	BaseModel
	InvoiceNumber string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    string              `gorm:"type:varchar(40);not null;index"`
	InvoiceDate   time.Time           `gorm:"not null"`
	DueDate       time.Time           `gorm:"not null"`
	Items         string              `gorm:"type:text;not null"`
	Status        trade.InvoiceStatus `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	AmountPaid    decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesInvoiceModel) TableName() string {
	return "sales_invoices"
}

// ToDomain converts the persistence model to a domain SalesInvoice entity.
func (m *SalesInvoiceModel) ToDomain() (*trade.SalesInvoice, []FieldError) {
	var fieldErrs []FieldError

	items, err := decodeItems(m.Items)
	if err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "items", Err: err})
	}

	return &trade.SalesInvoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		InvoiceDate:   m.InvoiceDate,
		DueDate:       m.DueDate,
		Items:         items,
		Status:        m.Status,
		AmountPaid:    m.AmountPaid,
	}, fieldErrs
}

// FromDomain populates the persistence model from a domain SalesInvoice entity.
func (m *SalesInvoiceModel) FromDomain(inv *trade.SalesInvoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.InvoiceNumber = inv.InvoiceNumber
	m.CustomerID = inv.CustomerID
	m.InvoiceDate = inv.InvoiceDate
	m.DueDate = inv.DueDate
	m.Items = encodeItems(inv.Items)
	m.Status = inv.Status
	m.AmountPaid = inv.AmountPaid
}

// QuotationModel is the persistence model for the Quotation domain entity.
type QuotationModel struct {
	BaseModel
	QuotationNumber string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      string                `gorm:"type:varchar(40);not null;index"`
	QuoteDate       time.Time             `gorm:"not null"`
	ExpiryDate      time.Time             `gorm:"not null"`
	Items           string                `gorm:"type:text;not null"`
	Status          trade.QuotationStatus `gorm:"type:varchar(20);not null;default:'Sent'"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation entity.
func (m *QuotationModel) ToDomain() (*trade.Quotation, []FieldError) {
	var fieldErrs []FieldError

	items, err := decodeItems(m.Items)
	if err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "items", Err: err})
	}

	return &trade.Quotation{
		BaseEntity:      m.BaseModel.ToDomain(),
		QuotationNumber: m.QuotationNumber,
		CustomerID:      m.CustomerID,
		QuoteDate:       m.QuoteDate,
		ExpiryDate:      m.ExpiryDate,
		Items:           items,
		Status:          m.Status,
	}, fieldErrs
}

// FromDomain populates the persistence model from a domain Quotation entity.
func (m *QuotationModel) FromDomain(q *trade.Quotation) {
	m.FromDomainBaseEntity(q.BaseEntity)
	m.QuotationNumber = q.QuotationNumber
	m.CustomerID = q.CustomerID
	m.QuoteDate = q.QuoteDate
	m.ExpiryDate = q.ExpiryDate
	m.Items = encodeItems(q.Items)
	m.Status = q.Status
}

// PurchaseInvoiceModel is the persistence model for the PurchaseInvoice
// domain entity. The invoice number comes from the supplier's document, so
// it is indexed but not unique.
type PurchaseInvoiceModel struct {
	BaseModel
	InvoiceNumber string                      `gorm:"type:varchar(50);not null;index"`
	SupplierID    string                      `gorm:"type:varchar(40);not null;index"`
	PurchaseDate  time.Time                   `gorm:"not null"`
	Items         string                      `gorm:"type:text;not null"`
	Status        trade.PurchaseInvoiceStatus `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	AmountPaid    decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseInvoiceModel) TableName() string {
	return "purchase_invoices"
}

// ToDomain converts the persistence model to a domain PurchaseInvoice entity.
func (m *PurchaseInvoiceModel) ToDomain() (*trade.PurchaseInvoice, []FieldError) {
	var fieldErrs []FieldError

	items, err := decodeItems(m.Items)
	if err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "items", Err: err})
	}

	return &trade.PurchaseInvoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		InvoiceNumber: m.InvoiceNumber,
		SupplierID:    m.SupplierID,
		PurchaseDate:  m.PurchaseDate,
		Items:         items,
		Status:        m.Status,
		AmountPaid:    m.AmountPaid,
	}, fieldErrs
}

// FromDomain populates the persistence model from a domain PurchaseInvoice entity.
func (m *PurchaseInvoiceModel) FromDomain(inv *trade.PurchaseInvoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.InvoiceNumber = inv.InvoiceNumber
	m.SupplierID = inv.SupplierID
	m.PurchaseDate = inv.PurchaseDate
	m.Items = encodeItems(inv.Items)
	m.Status = inv.Status
	m.AmountPaid = inv.AmountPaid
}
