package trade

import (
	"context"
	"errors"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	stockOut = decimal.NewFromInt(-1)
	stockIn  = decimal.NewFromInt(1)
)

// applyStockEffects moves stock by sign times quantity for every product
// line. Lines whose product no longer exists behave like custom lines and
// are logged, and service products carry no stock to move. Every movement
// is checked against the non-negative floor, so a failing line aborts the
// enclosing atomic unit.
func applyStockEffects(ctx context.Context, repos appinv.TransactionalRepositories, logger *zap.Logger, items []trade.InvoiceItem, sign decimal.Decimal) error {
	for _, item := range items {
		if !item.IsProductLine() {
			continue
		}
		product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				logger.Warn("document line references a missing product, no stock moved",
					zap.String("product_id", item.ProductID),
				)
				continue
			}
			return err
		}
		if !product.TracksStock() {
			continue
		}
		if err := product.ApplyStockDelta(item.Quantity.Mul(sign)); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
	}
	return nil
}
