package persistence

import (
	"context"
	"testing"

	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewAdjustment(t *testing.T, productID string, change int64, reason string) *inventory.StockAdjustment {
	t.Helper()
	adjustment, err := inventory.NewStockAdjustment(productID, decimal.NewFromInt(change), reason)
	require.NoError(t, err)
	return adjustment
}

func TestGormStockAdjustmentRepository(t *testing.T) {
	db := newTestGorm(t)
	repo := NewGormStockAdjustmentRepository(db)
	ctx := context.Background()

	productID := "prod_01HXYZSTEELBOLT0000000000"

	t.Run("append and read history", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, mustNewAdjustment(t, productID, -10, "Damaged")))
		require.NoError(t, repo.Append(ctx, mustNewAdjustment(t, productID, 25, "Recount")))
		require.NoError(t, repo.Append(ctx, mustNewAdjustment(t, "prod_other", 5, "Found")))

		history, err := repo.FindByProduct(ctx, productID)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "Recount", history[0].Reason, "newest first")
		assert.Equal(t, "Damaged", history[1].Reason)
		assert.True(t, history[1].QuantityChange.Equal(decimal.NewFromInt(-10)))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete by product clears only that history", func(t *testing.T) {
		require.NoError(t, repo.DeleteByProduct(ctx, productID))

		history, err := repo.FindByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Empty(t, history)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete with no history is not an error", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByProduct(ctx, "prod_never_adjusted"))
	})
}
