package store

import (
	catalogapp "github.com/bizbooks/backend/internal/application/catalog"
	invapp "github.com/bizbooks/backend/internal/application/inventory"
	partnerapp "github.com/bizbooks/backend/internal/application/partner"
	settingsapp "github.com/bizbooks/backend/internal/application/settings"
	tradeapp "github.com/bizbooks/backend/internal/application/trade"
	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/settings"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/bizbooks/backend/internal/infrastructure/config"
)

// Records
type (
	Product         = catalog.Product
	Customer        = partner.Customer
	Supplier        = partner.Supplier
	SalesInvoice    = trade.SalesInvoice
	Quotation       = trade.Quotation
	PurchaseInvoice = trade.PurchaseInvoice
	InvoiceItem     = trade.InvoiceItem
	StockAdjustment = inventory.StockAdjustment
	Address         = valueobject.Address
)

// Settings sections and their update patches
type (
	AppSettings          = settings.AppSettings
	CompanyDetails       = settings.CompanyDetails
	InvoiceSettings      = settings.InvoiceSettings
	BankDetails          = settings.BankDetails
	CompanyDetailsPatch  = settings.CompanyDetailsPatch
	InvoiceSettingsPatch = settings.InvoiceSettingsPatch
)

// Document statuses
type (
	InvoiceStatus         = trade.InvoiceStatus
	QuotationStatus       = trade.QuotationStatus
	PurchaseInvoiceStatus = trade.PurchaseInvoiceStatus
)

const (
	InvoiceStatusPaid          = trade.InvoiceStatusPaid
	InvoiceStatusUnpaid        = trade.InvoiceStatusUnpaid
	InvoiceStatusOverdue       = trade.InvoiceStatusOverdue
	InvoiceStatusPartiallyPaid = trade.InvoiceStatusPartiallyPaid

	QuotationStatusSent     = trade.QuotationStatusSent
	QuotationStatusAccepted = trade.QuotationStatusAccepted
	QuotationStatusInvoiced = trade.QuotationStatusInvoiced
	QuotationStatusExpired  = trade.QuotationStatusExpired

	PurchaseInvoiceStatusPaid          = trade.PurchaseInvoiceStatusPaid
	PurchaseInvoiceStatusUnpaid        = trade.PurchaseInvoiceStatusUnpaid
	PurchaseInvoiceStatusPartiallyPaid = trade.PurchaseInvoiceStatusPartiallyPaid
)

// Operation requests
type (
	CreateProductRequest  = catalogapp.CreateProductRequest
	UpdateProductRequest  = catalogapp.UpdateProductRequest
	CreateCustomerRequest = partnerapp.CreateCustomerRequest
	UpdateCustomerRequest = partnerapp.UpdateCustomerRequest
	CreateSupplierRequest = partnerapp.CreateSupplierRequest
	UpdateSupplierRequest = partnerapp.UpdateSupplierRequest

	CreateSalesInvoiceRequest    = tradeapp.CreateSalesInvoiceRequest
	UpdateSalesInvoiceRequest    = tradeapp.UpdateSalesInvoiceRequest
	CreateQuotationRequest       = tradeapp.CreateQuotationRequest
	UpdateQuotationRequest       = tradeapp.UpdateQuotationRequest
	CreatePurchaseInvoiceRequest = tradeapp.CreatePurchaseInvoiceRequest
	UpdatePurchaseInvoiceRequest = tradeapp.UpdatePurchaseInvoiceRequest

	AdjustStockRequest    = invapp.AdjustStockRequest
	UpdateSettingsRequest = settingsapp.UpdateSettingsRequest
)

// DomainError is the error type every operation returns on failure.
// Compare with errors.Is against the sentinels below, which match on code.
type DomainError = shared.DomainError

var (
	ErrNotFound            = shared.ErrNotFound
	ErrAlreadyExists       = shared.ErrAlreadyExists
	ErrValidation          = shared.ErrValidation
	ErrInvalidState        = shared.ErrInvalidState
	ErrInsufficientStock   = shared.ErrInsufficientStock
	ErrReferentialConflict = shared.ErrReferentialConflict
	ErrMalformedRecord     = shared.ErrMalformedRecord
	ErrPersistenceFailure  = shared.ErrPersistenceFailure
)

// Configuration
type (
	Config           = config.Config
	StoreConfig      = config.StoreConfig
	LogConfig        = config.LogConfig
	SnapshotConfig   = config.SnapshotConfig
	FileHolderConfig = config.FileHolderConfig
	S3HolderConfig   = config.S3HolderConfig
)

// LoadConfig reads configuration from file and environment
func LoadConfig() (*Config, error) {
	return config.Load()
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return config.Default()
}
