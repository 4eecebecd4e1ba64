package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/bizbooks/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productServiceDeps struct {
	service     *ProductService
	products    catalog.ProductRepository
	sales       trade.SalesInvoiceRepository
	quotations  trade.QuotationRepository
	purchases   trade.PurchaseInvoiceRepository
	adjustments inventory.StockAdjustmentRepository
}

func newProductServiceDeps(t *testing.T) productServiceDeps {
	t.Helper()

	zlog := zap.NewNop()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "books.db"), zlog)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	products := persistence.NewGormProductRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB, zlog)

	return productServiceDeps{
		service:     NewProductService(products, scope, zlog),
		products:    products,
		sales:       persistence.NewGormSalesInvoiceRepository(db.DB, zlog),
		quotations:  persistence.NewGormQuotationRepository(db.DB, zlog),
		purchases:   persistence.NewGormPurchaseInvoiceRepository(db.DB, zlog),
		adjustments: persistence.NewGormStockAdjustmentRepository(db.DB),
	}
}

func decimalPtr(v decimal.Decimal) *decimal.Decimal {
	return &v
}

func stringPtr(v string) *string {
	return &v
}

func TestProductService_Create(t *testing.T) {
	deps := newProductServiceDeps(t)
	ctx := context.Background()

	t.Run("creates goods with opening stock", func(t *testing.T) {
		product, err := deps.service.Create(ctx, CreateProductRequest{
			Name:          "Steel Bolt",
			SKU:           "  SB-10  ",
			Category:      "Hardware",
			SalePrice:     decimal.NewFromInt(120),
			PurchasePrice: decimal.NewFromInt(80),
			TaxRate:       decimal.NewFromInt(18),
			OpeningStock:  decimalPtr(decimal.NewFromInt(150)),
			ReorderPoint:  decimalPtr(decimal.NewFromInt(20)),
		})
		require.NoError(t, err)

		assert.Equal(t, "SB-10", product.SKU)
		assert.True(t, product.TracksStock())
		assert.True(t, product.CurrentStock().Equal(decimal.NewFromInt(150)))

		found, err := deps.products.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Steel Bolt", found.Name)
	})

	t.Run("service product ignores stock fields", func(t *testing.T) {
		product, err := deps.service.Create(ctx, CreateProductRequest{
			Name:         "Installation",
			SalePrice:    decimal.NewFromInt(500),
			IsService:    true,
			OpeningStock: decimalPtr(decimal.NewFromInt(10)),
			ReorderPoint: decimalPtr(decimal.NewFromInt(2)),
		})
		require.NoError(t, err)

		assert.False(t, product.TracksStock())
		assert.Nil(t, product.Stock)
		assert.Nil(t, product.ReorderPoint)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		_, err := deps.service.Create(ctx, CreateProductRequest{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := deps.service.Create(ctx, CreateProductRequest{
			Name:      "Broken",
			SalePrice: decimal.NewFromInt(-1),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestProductService_Update(t *testing.T) {
	deps := newProductServiceDeps(t)
	ctx := context.Background()

	product, err := deps.service.Create(ctx, CreateProductRequest{
		Name:          "Steel Bolt",
		SalePrice:     decimal.NewFromInt(120),
		PurchasePrice: decimal.NewFromInt(80),
		OpeningStock:  decimalPtr(decimal.NewFromInt(150)),
	})
	require.NoError(t, err)

	t.Run("merges only provided fields", func(t *testing.T) {
		updated, err := deps.service.Update(ctx, product.ID, UpdateProductRequest{
			Name:      stringPtr("Steel Bolt M10"),
			SalePrice: decimalPtr(decimal.NewFromInt(130)),
		})
		require.NoError(t, err)

		assert.Equal(t, "Steel Bolt M10", updated.Name)
		assert.True(t, updated.SalePrice.Equal(decimal.NewFromInt(130)))
		assert.True(t, updated.PurchasePrice.Equal(decimal.NewFromInt(80)))
		assert.True(t, updated.CurrentStock().Equal(decimal.NewFromInt(150)))
	})

	t.Run("empty request is a no-op", func(t *testing.T) {
		before, err := deps.products.FindByID(ctx, product.ID)
		require.NoError(t, err)

		updated, err := deps.service.Update(ctx, product.ID, UpdateProductRequest{})
		require.NoError(t, err)
		assert.Equal(t, before.Name, updated.Name)
		assert.True(t, before.SalePrice.Equal(updated.SalePrice))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := deps.service.Update(ctx, "prod_missing", UpdateProductRequest{Name: stringPtr("X")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestProductService_Delete(t *testing.T) {
	deps := newProductServiceDeps(t)
	ctx := context.Background()

	bolt, err := deps.service.Create(ctx, CreateProductRequest{
		Name:         "Steel Bolt",
		SalePrice:    decimal.NewFromInt(100),
		OpeningStock: decimalPtr(decimal.NewFromInt(150)),
	})
	require.NoError(t, err)
	nut, err := deps.service.Create(ctx, CreateProductRequest{
		Name:         "Steel Nut",
		SalePrice:    decimal.NewFromInt(40),
		OpeningStock: decimalPtr(decimal.NewFromInt(80)),
	})
	require.NoError(t, err)

	now := time.Now()
	boltLine := trade.InvoiceItem{
		ProductID: bolt.ID,
		Quantity:  decimal.NewFromInt(10),
		Rate:      decimal.NewFromInt(100),
		TaxRate:   decimal.NewFromInt(18),
	}
	customLine := trade.InvoiceItem{
		CustomItemName: "Delivery",
		Quantity:       decimal.NewFromInt(1),
		Rate:           decimal.NewFromInt(50),
	}
	nutLine := trade.InvoiceItem{
		ProductID: nut.ID,
		Quantity:  decimal.NewFromInt(4),
		Rate:      decimal.NewFromInt(40),
	}

	invoice, err := trade.NewSalesInvoice("cust_01J0000000000000000000TEST", now, now.AddDate(0, 0, 30),
		[]trade.InvoiceItem{boltLine, customLine})
	require.NoError(t, err)
	require.NoError(t, invoice.SetNumber("INV-1001"))
	require.NoError(t, deps.sales.Save(ctx, invoice))

	nutInvoice, err := trade.NewSalesInvoice("cust_01J0000000000000000000TEST", now, now.AddDate(0, 0, 30),
		[]trade.InvoiceItem{nutLine})
	require.NoError(t, err)
	require.NoError(t, nutInvoice.SetNumber("INV-1002"))
	require.NoError(t, deps.sales.Save(ctx, nutInvoice))

	quotation, err := trade.NewQuotation("cust_01J0000000000000000000TEST", now, now.AddDate(0, 0, 15),
		[]trade.InvoiceItem{boltLine})
	require.NoError(t, err)
	require.NoError(t, quotation.SetNumber("QUO-1001"))
	require.NoError(t, deps.quotations.Save(ctx, quotation))

	purchase, err := trade.NewPurchaseInvoice("supp_01J000000000000000000TEST", "BILL-77", now,
		[]trade.InvoiceItem{boltLine})
	require.NoError(t, err)
	require.NoError(t, deps.purchases.Save(ctx, purchase))

	boltAdj, err := inventory.NewStockAdjustment(bolt.ID, decimal.NewFromInt(5), "Recount")
	require.NoError(t, err)
	require.NoError(t, deps.adjustments.Append(ctx, boltAdj))
	nutAdj, err := inventory.NewStockAdjustment(nut.ID, decimal.NewFromInt(-2), "Damaged")
	require.NoError(t, err)
	require.NoError(t, deps.adjustments.Append(ctx, nutAdj))

	require.NoError(t, deps.service.Delete(ctx, bolt.ID))

	t.Run("product is gone", func(t *testing.T) {
		_, err := deps.products.FindByID(ctx, bolt.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("referencing items become named custom lines", func(t *testing.T) {
		found, err := deps.sales.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 2)

		tombstone := found.Items[0]
		assert.Empty(t, tombstone.ProductID)
		assert.Equal(t, "[Deleted] Steel Bolt", tombstone.CustomItemName)
		assert.True(t, tombstone.Quantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, tombstone.Rate.Equal(decimal.NewFromInt(100)))
		assert.True(t, tombstone.TaxRate.Equal(decimal.NewFromInt(18)))

		assert.Equal(t, "Delivery", found.Items[1].CustomItemName)

		foundQuote, err := deps.quotations.FindByID(ctx, quotation.ID)
		require.NoError(t, err)
		assert.Equal(t, "[Deleted] Steel Bolt", foundQuote.Items[0].CustomItemName)

		foundPurchase, err := deps.purchases.FindByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, "[Deleted] Steel Bolt", foundPurchase.Items[0].CustomItemName)
	})

	t.Run("totals survive the rewrite", func(t *testing.T) {
		found, err := deps.sales.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.True(t, found.Total().Equal(decimal.NewFromInt(1230)), "got %s", found.Total())
	})

	t.Run("unrelated documents untouched", func(t *testing.T) {
		found, err := deps.sales.FindByID(ctx, nutInvoice.ID)
		require.NoError(t, err)
		assert.Equal(t, nut.ID, found.Items[0].ProductID)
		assert.Empty(t, found.Items[0].CustomItemName)
	})

	t.Run("adjustment history removed for the product only", func(t *testing.T) {
		boltHistory, err := deps.adjustments.FindByProduct(ctx, bolt.ID)
		require.NoError(t, err)
		assert.Empty(t, boltHistory)

		nutHistory, err := deps.adjustments.FindByProduct(ctx, nut.ID)
		require.NoError(t, err)
		assert.Len(t, nutHistory, 1)
	})

	t.Run("deleting a missing product fails", func(t *testing.T) {
		err := deps.service.Delete(ctx, bolt.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
