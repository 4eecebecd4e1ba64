package persistence

import (
	"context"
	"errors"

	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB, logger *zap.Logger) *GormSupplierRepository {
	return &GormSupplierRepository{db: db, logger: logger}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id string) (*partner.Supplier, error) {
	var model models.SupplierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	supplier, fieldErrs := model.ToDomain()
	logFieldErrors(r.logger, "suppliers", model.ID, fieldErrs)
	return supplier, nil
}

// FindAll returns every supplier, newest first
func (r *GormSupplierRepository) FindAll(ctx context.Context) ([]partner.Supplier, error) {
	var supplierModels []models.SupplierModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&supplierModels).Error; err != nil {
		return nil, err
	}

	suppliers := make([]partner.Supplier, len(supplierModels))
	for i, model := range supplierModels {
		supplier, fieldErrs := model.ToDomain()
		logFieldErrors(r.logger, "suppliers", model.ID, fieldErrs)
		suppliers[i] = *supplier
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	var model models.SupplierModel
	model.FromDomain(supplier)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a supplier row
func (r *GormSupplierRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.SupplierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
