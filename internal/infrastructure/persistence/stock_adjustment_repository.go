package persistence

import (
	"context"

	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/bizbooks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockAdjustmentRepository implements inventory.StockAdjustmentRepository
// using GORM. The log is append-only; rows only disappear when the product
// they belong to is deleted.
type GormStockAdjustmentRepository struct {
	db *gorm.DB
}

var _ inventory.StockAdjustmentRepository = (*GormStockAdjustmentRepository)(nil)

// NewGormStockAdjustmentRepository creates a new GormStockAdjustmentRepository
func NewGormStockAdjustmentRepository(db *gorm.DB) *GormStockAdjustmentRepository {
	return &GormStockAdjustmentRepository{db: db}
}

// FindAll returns every adjustment, newest first
func (r *GormStockAdjustmentRepository) FindAll(ctx context.Context) ([]inventory.StockAdjustment, error) {
	var adjustmentModels []models.StockAdjustmentModel
	if err := r.db.WithContext(ctx).
		Order("date DESC, id DESC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}

	adjustments := make([]inventory.StockAdjustment, len(adjustmentModels))
	for i, model := range adjustmentModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments, nil
}

// FindByProduct returns the adjustment history of one product, newest first
func (r *GormStockAdjustmentRepository) FindByProduct(ctx context.Context, productID string) ([]inventory.StockAdjustment, error) {
	var adjustmentModels []models.StockAdjustmentModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date DESC, id DESC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}

	adjustments := make([]inventory.StockAdjustment, len(adjustmentModels))
	for i, model := range adjustmentModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments, nil
}

// Append writes one new log entry
func (r *GormStockAdjustmentRepository) Append(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	var model models.StockAdjustmentModel
	model.FromDomain(adjustment)
	return r.db.WithContext(ctx).Create(&model).Error
}

// DeleteByProduct removes a product's whole adjustment history. Zero rows
// is not an error, products may have no history.
func (r *GormStockAdjustmentRepository) DeleteByProduct(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.StockAdjustmentModel{}, "product_id = ?", productID).Error
}
