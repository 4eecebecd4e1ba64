package trade

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bizbooks/backend/internal/domain/catalog"
	settingsdomain "github.com/bizbooks/backend/internal/domain/settings"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/bizbooks/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tradeServiceDeps struct {
	sales      *SalesInvoiceService
	quotations *QuotationService
	purchases  *PurchaseInvoiceService
	products   catalog.ProductRepository
	settings   settingsdomain.Repository
}

func newTradeServiceDeps(t *testing.T) tradeServiceDeps {
	t.Helper()

	zlog := zap.NewNop()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "books.db"), zlog)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	scope := persistence.NewGormTransactionScope(db.DB, zlog)

	return tradeServiceDeps{
		sales:      NewSalesInvoiceService(persistence.NewGormSalesInvoiceRepository(db.DB, zlog), scope, zlog),
		quotations: NewQuotationService(persistence.NewGormQuotationRepository(db.DB, zlog), scope, zlog),
		purchases:  NewPurchaseInvoiceService(persistence.NewGormPurchaseInvoiceRepository(db.DB, zlog), scope, zlog),
		products:   persistence.NewGormProductRepository(db.DB),
		settings:   persistence.NewGormSettingsRepository(db.DB),
	}
}

func seedStockedProduct(t *testing.T, deps tradeServiceDeps, name string, stock int64) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(name, false)
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(decimal.NewFromInt(100), decimal.NewFromInt(60)))
	require.NoError(t, product.SetStock(decimal.NewFromInt(stock)))
	require.NoError(t, deps.products.Save(context.Background(), product))
	return product
}

func seedServiceProduct(t *testing.T, deps tradeServiceDeps, name string) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(name, true)
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(decimal.NewFromInt(500), decimal.Zero))
	require.NoError(t, deps.products.Save(context.Background(), product))
	return product
}

func currentStock(t *testing.T, deps tradeServiceDeps, productID string) decimal.Decimal {
	t.Helper()

	product, err := deps.products.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return product.CurrentStock()
}

func productItem(productID string, qty int64) trade.InvoiceItem {
	return trade.InvoiceItem{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		Rate:      decimal.NewFromInt(100),
		TaxRate:   decimal.NewFromInt(18),
	}
}

func TestSalesInvoiceService_Create(t *testing.T) {
	deps := newTradeServiceDeps(t)
	ctx := context.Background()
	now := time.Now()
	due := now.AddDate(0, 0, 30)

	bolt := seedStockedProduct(t, deps, "Steel Bolt", 150)

	t.Run("allocates the first number and moves stock", func(t *testing.T) {
		invoice, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{productItem(bolt.ID, 10)},
		})
		require.NoError(t, err)

		assert.Equal(t, "INV-0001", invoice.InvoiceNumber)
		assert.Equal(t, trade.InvoiceStatusUnpaid, invoice.Status)
		assert.True(t, invoice.Total().Equal(decimal.NewFromInt(1180)))
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(140)))
	})

	t.Run("second allocation advances the counter", func(t *testing.T) {
		invoice, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{productItem(bolt.ID, 5)},
		})
		require.NoError(t, err)

		assert.Equal(t, "INV-0002", invoice.InvoiceNumber)
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(135)))
	})

	t.Run("explicit number leaves the counter alone", func(t *testing.T) {
		explicit, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			InvoiceNumber: "CUSTOM-9",
			CustomerID:    "cust_01J0000000000000000000TEST",
			InvoiceDate:   now,
			DueDate:       due,
			Items:         []trade.InvoiceItem{{CustomItemName: "Freight", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(250)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "CUSTOM-9", explicit.InvoiceNumber)

		next, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{{CustomItemName: "Freight", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(250)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "INV-0003", next.InvoiceNumber)
	})

	t.Run("duplicate explicit number rejected", func(t *testing.T) {
		_, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			InvoiceNumber: "INV-0001",
			CustomerID:    "cust_01J0000000000000000000TEST",
			InvoiceDate:   now,
			DueDate:       due,
			Items:         []trade.InvoiceItem{productItem(bolt.ID, 1)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(135)))
	})

	t.Run("insufficient stock writes nothing", func(t *testing.T) {
		before, err := deps.sales.GetAll(ctx)
		require.NoError(t, err)

		_, err = deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{productItem(bolt.ID, 99999)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		after, err := deps.sales.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(135)))
	})

	t.Run("service and ghost lines move no stock", func(t *testing.T) {
		install := seedServiceProduct(t, deps, "Installation")

		_, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items: []trade.InvoiceItem{
				{ProductID: install.ID, Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(500)},
				{ProductID: "prod_01J000000000000000000GONE", Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(10)},
			},
		})
		require.NoError(t, err)
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(135)))
	})

	t.Run("allocation skips numbers taken by hand", func(t *testing.T) {
		_, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			InvoiceNumber: "INV-0005",
			CustomerID:    "cust_01J0000000000000000000TEST",
			InvoiceDate:   now,
			DueDate:       due,
			Items:         []trade.InvoiceItem{{CustomItemName: "Freight", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(250)}},
		})
		require.NoError(t, err)

		next, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{{CustomItemName: "Freight", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(250)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "INV-0006", next.InvoiceNumber)
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{productItem(bolt.ID, 1)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestSalesInvoiceService_Update(t *testing.T) {
	deps := newTradeServiceDeps(t)
	ctx := context.Background()
	now := time.Now()
	due := now.AddDate(0, 0, 30)

	bolt := seedStockedProduct(t, deps, "Steel Bolt", 150)

	invoice, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
		CustomerID:  "cust_01J0000000000000000000TEST",
		InvoiceDate: now,
		DueDate:     due,
		Items:       []trade.InvoiceItem{productItem(bolt.ID, 10)},
	})
	require.NoError(t, err)
	require.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(140)))

	t.Run("item replacement reverses then reapplies", func(t *testing.T) {
		updated, err := deps.sales.Update(ctx, invoice.ID, UpdateSalesInvoiceRequest{
			Items: &[]trade.InvoiceItem{productItem(bolt.ID, 25)},
		})
		require.NoError(t, err)

		require.Len(t, updated.Items, 1)
		assert.True(t, updated.Items[0].Quantity.Equal(decimal.NewFromInt(25)))
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(125)))
	})

	t.Run("oversized replacement rolls back completely", func(t *testing.T) {
		_, err := deps.sales.Update(ctx, invoice.ID, UpdateSalesInvoiceRequest{
			Items: &[]trade.InvoiceItem{productItem(bolt.ID, 99999)},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		found, err := deps.sales.GetByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.True(t, found.Items[0].Quantity.Equal(decimal.NewFromInt(25)))
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(125)))
	})

	t.Run("status and payment update without touching stock", func(t *testing.T) {
		paid := trade.InvoiceStatusPaid
		amount := decimal.NewFromInt(2950)
		updated, err := deps.sales.Update(ctx, invoice.ID, UpdateSalesInvoiceRequest{
			Status:     &paid,
			AmountPaid: &amount,
		})
		require.NoError(t, err)

		assert.Equal(t, trade.InvoiceStatusPaid, updated.Status)
		assert.True(t, updated.AmountPaid.Equal(amount))
		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(125)))
	})

	t.Run("empty request is a no-op", func(t *testing.T) {
		updated, err := deps.sales.Update(ctx, invoice.ID, UpdateSalesInvoiceRequest{})
		require.NoError(t, err)
		assert.Equal(t, trade.InvoiceStatusPaid, updated.Status)
	})

	t.Run("renumbering onto a taken number rejected", func(t *testing.T) {
		other, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
			CustomerID:  "cust_01J0000000000000000000TEST",
			InvoiceDate: now,
			DueDate:     due,
			Items:       []trade.InvoiceItem{{CustomItemName: "Misc", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)}},
		})
		require.NoError(t, err)

		taken := invoice.InvoiceNumber
		_, err = deps.sales.Update(ctx, other.ID, UpdateSalesInvoiceRequest{InvoiceNumber: &taken})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	})

	t.Run("unknown invoice", func(t *testing.T) {
		status := trade.InvoiceStatusPaid
		_, err := deps.sales.Update(ctx, "sinv_missing", UpdateSalesInvoiceRequest{Status: &status})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestSalesInvoiceService_Delete(t *testing.T) {
	deps := newTradeServiceDeps(t)
	ctx := context.Background()
	now := time.Now()

	bolt := seedStockedProduct(t, deps, "Steel Bolt", 150)

	invoice, err := deps.sales.Create(ctx, CreateSalesInvoiceRequest{
		CustomerID:  "cust_01J0000000000000000000TEST",
		InvoiceDate: now,
		DueDate:     now.AddDate(0, 0, 30),
		Items:       []trade.InvoiceItem{productItem(bolt.ID, 25)},
	})
	require.NoError(t, err)
	require.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(125)))

	t.Run("restores stock", func(t *testing.T) {
		require.NoError(t, deps.sales.Delete(ctx, invoice.ID))

		assert.True(t, currentStock(t, deps, bolt.ID).Equal(decimal.NewFromInt(150)))

		_, err := deps.sales.GetByID(ctx, invoice.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("unknown invoice", func(t *testing.T) {
		err := deps.sales.Delete(ctx, "sinv_missing")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
