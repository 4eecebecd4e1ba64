package inventory

import (
	"context"

	"github.com/bizbooks/backend/internal/application/validation"
	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService handles manual stock adjustments and the adjustment log.
// Invoice-driven stock movements live in the document services; both paths
// go through Product.ApplyStockDelta, so the non-negative stock rule is
// enforced the same way everywhere.
type StockService struct {
	adjustmentRepo inventory.StockAdjustmentRepository
	scope          TransactionScope
	logger         *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(adjustmentRepo inventory.StockAdjustmentRepository, scope TransactionScope, logger *zap.Logger) *StockService {
	return &StockService{
		adjustmentRepo: adjustmentRepo,
		scope:          scope,
		logger:         logger,
	}
}

// AdjustStockRequest carries one manual stock adjustment
type AdjustStockRequest struct {
	ProductID      string          `json:"productId" validate:"required"`
	QuantityChange decimal.Decimal `json:"quantityChange"`
	Reason         string          `json:"reason" validate:"max=500"`
}

// Adjust applies one manual stock movement. The product's stock and the log
// entry change together or not at all; a movement that would drive stock
// negative is rejected before anything is written.
func (s *StockService) Adjust(ctx context.Context, req AdjustStockRequest) (*inventory.StockAdjustment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	adjustment, err := inventory.NewStockAdjustment(req.ProductID, req.QuantityChange, req.Reason)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		if err := product.ApplyStockDelta(req.QuantityChange); err != nil {
			return err
		}

		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return repos.AdjustmentRepo().Append(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", req.ProductID),
		zap.String("quantity_change", req.QuantityChange.String()),
		zap.String("reason", req.Reason),
	)
	return adjustment, nil
}

// Adjustments returns the full adjustment log, newest first
func (s *StockService) Adjustments(ctx context.Context) ([]inventory.StockAdjustment, error) {
	return s.adjustmentRepo.FindAll(ctx)
}

// AdjustmentsForProduct returns one product's adjustment history, newest first
func (s *StockService) AdjustmentsForProduct(ctx context.Context, productID string) ([]inventory.StockAdjustment, error) {
	return s.adjustmentRepo.FindByProduct(ctx, productID)
}
