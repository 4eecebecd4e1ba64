package inventory_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stockServiceDeps struct {
	service  *appinv.StockService
	products catalog.ProductRepository
}

func newStockServiceDeps(t *testing.T) stockServiceDeps {
	t.Helper()

	zlog := zap.NewNop()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "books.db"), zlog)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	scope := persistence.NewGormTransactionScope(db.DB, zlog)

	return stockServiceDeps{
		service:  appinv.NewStockService(persistence.NewGormStockAdjustmentRepository(db.DB), scope, zlog),
		products: persistence.NewGormProductRepository(db.DB),
	}
}

func seedProduct(t *testing.T, deps stockServiceDeps, name string, isService bool, stock int64) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(name, isService)
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(decimal.NewFromInt(100), decimal.NewFromInt(60)))
	if !isService {
		require.NoError(t, product.SetStock(decimal.NewFromInt(stock)))
	}
	require.NoError(t, deps.products.Save(context.Background(), product))
	return product
}

func TestStockService_Adjust(t *testing.T) {
	deps := newStockServiceDeps(t)
	ctx := context.Background()

	bolt := seedProduct(t, deps, "Steel Bolt", false, 150)

	t.Run("increase writes stock and one ledger entry", func(t *testing.T) {
		adjustment, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID:      bolt.ID,
			QuantityChange: decimal.NewFromInt(15),
			Reason:         "Recount after delivery",
		})
		require.NoError(t, err)
		assert.Equal(t, "Recount after delivery", adjustment.Reason)

		product, err := deps.products.FindByID(ctx, bolt.ID)
		require.NoError(t, err)
		assert.True(t, product.CurrentStock().Equal(decimal.NewFromInt(165)))

		history, err := deps.service.AdjustmentsForProduct(ctx, bolt.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, history[0].QuantityChange.Equal(decimal.NewFromInt(15)))
	})

	t.Run("decrease down to zero is allowed", func(t *testing.T) {
		_, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID:      bolt.ID,
			QuantityChange: decimal.NewFromInt(-165),
			Reason:         "Written off",
		})
		require.NoError(t, err)

		product, err := deps.products.FindByID(ctx, bolt.ID)
		require.NoError(t, err)
		assert.True(t, product.CurrentStock().IsZero())
	})

	t.Run("overdraw fails with no writes at all", func(t *testing.T) {
		before, err := deps.service.AdjustmentsForProduct(ctx, bolt.ID)
		require.NoError(t, err)

		_, err = deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID:      bolt.ID,
			QuantityChange: decimal.NewFromInt(-200),
			Reason:         "Impossible",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

		product, err := deps.products.FindByID(ctx, bolt.ID)
		require.NoError(t, err)
		assert.True(t, product.CurrentStock().IsZero())

		after, err := deps.service.AdjustmentsForProduct(ctx, bolt.ID)
		require.NoError(t, err)
		assert.Len(t, after, len(before), "a failed adjustment must not append to the ledger")
	})

	t.Run("service products carry no stock", func(t *testing.T) {
		install := seedProduct(t, deps, "Installation", true, 0)

		_, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID:      install.ID,
			QuantityChange: decimal.NewFromInt(5),
			Reason:         "Oops",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidState))
	})

	t.Run("zero change rejected", func(t *testing.T) {
		_, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID: bolt.ID,
			Reason:    "Nothing",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID:      "prod_missing",
			QuantityChange: decimal.NewFromInt(1),
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestStockService_Adjustments(t *testing.T) {
	deps := newStockServiceDeps(t)
	ctx := context.Background()

	bolt := seedProduct(t, deps, "Steel Bolt", false, 100)
	nut := seedProduct(t, deps, "Steel Nut", false, 50)

	for _, change := range []int64{10, -5, 3} {
		_, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
			ProductID:      bolt.ID,
			QuantityChange: decimal.NewFromInt(change),
			Reason:         "Cycle count",
		})
		require.NoError(t, err)
	}
	_, err := deps.service.Adjust(ctx, appinv.AdjustStockRequest{
		ProductID:      nut.ID,
		QuantityChange: decimal.NewFromInt(-2),
		Reason:         "Damaged",
	})
	require.NoError(t, err)

	t.Run("global log covers every product", func(t *testing.T) {
		all, err := deps.service.Adjustments(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("per-product history is filtered and newest first", func(t *testing.T) {
		history, err := deps.service.AdjustmentsForProduct(ctx, bolt.ID)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.True(t, history[0].QuantityChange.Equal(decimal.NewFromInt(3)))
		assert.True(t, history[2].QuantityChange.Equal(decimal.NewFromInt(10)))
	})
}
