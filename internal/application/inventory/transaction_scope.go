package inventory

import (
	"context"

	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/settings"
	"github.com/bizbooks/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the store's repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Every mutation in the store runs through this interface:
// a stock movement that fails halfway must leave no trace.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
//
// The full set is exposed because the store's invariants cross entity
// boundaries: an invoice write moves product stock, a product delete rewrites
// invoice line items and clears adjustment history, and document numbering
// advances counters held in settings.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
	// SupplierRepo returns the supplier repository scoped to the current transaction
	SupplierRepo() partner.SupplierRepository
	// SalesInvoiceRepo returns the sales invoice repository scoped to the current transaction
	SalesInvoiceRepo() trade.SalesInvoiceRepository
	// QuotationRepo returns the quotation repository scoped to the current transaction
	QuotationRepo() trade.QuotationRepository
	// PurchaseInvoiceRepo returns the purchase invoice repository scoped to the current transaction
	PurchaseInvoiceRepo() trade.PurchaseInvoiceRepository
	// AdjustmentRepo returns the stock adjustment repository scoped to the current transaction
	AdjustmentRepo() inventory.StockAdjustmentRepository
	// SettingsRepo returns the settings repository scoped to the current transaction
	SettingsRepo() settings.Repository
}
