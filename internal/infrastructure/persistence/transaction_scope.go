package persistence

import (
	"context"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/settings"
	"github.com/bizbooks/backend/internal/domain/trade"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB, logger *zap.Logger) *GormTransactionScope {
	return &GormTransactionScope{db: db, logger: logger}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx, logger: s.logger}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx     *gorm.DB
	logger *zap.Logger
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx, r.logger)
}

// SupplierRepo returns the supplier repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SupplierRepo() partner.SupplierRepository {
	return NewGormSupplierRepository(r.tx, r.logger)
}

// SalesInvoiceRepo returns the sales invoice repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SalesInvoiceRepo() trade.SalesInvoiceRepository {
	return NewGormSalesInvoiceRepository(r.tx, r.logger)
}

// QuotationRepo returns the quotation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) QuotationRepo() trade.QuotationRepository {
	return NewGormQuotationRepository(r.tx, r.logger)
}

// PurchaseInvoiceRepo returns the purchase invoice repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PurchaseInvoiceRepo() trade.PurchaseInvoiceRepository {
	return NewGormPurchaseInvoiceRepository(r.tx, r.logger)
}

// AdjustmentRepo returns the stock adjustment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) AdjustmentRepo() inventory.StockAdjustmentRepository {
	return NewGormStockAdjustmentRepository(r.tx)
}

// SettingsRepo returns the settings repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SettingsRepo() settings.Repository {
	return NewGormSettingsRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
