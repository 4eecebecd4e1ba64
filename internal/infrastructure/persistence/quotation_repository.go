package persistence

import (
	"context"
	"errors"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/bizbooks/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormQuotationRepository implements trade.QuotationRepository using GORM
type GormQuotationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ trade.QuotationRepository = (*GormQuotationRepository)(nil)

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB, logger *zap.Logger) *GormQuotationRepository {
	return &GormQuotationRepository{db: db, logger: logger}
}

// FindByID finds a quotation by its ID
func (r *GormQuotationRepository) FindByID(ctx context.Context, id string) (*trade.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	quotation, fieldErrs := model.ToDomain()
	logFieldErrors(r.logger, "quotations", model.ID, fieldErrs)
	return quotation, nil
}

// FindAll returns every quotation, newest first
func (r *GormQuotationRepository) FindAll(ctx context.Context) ([]trade.Quotation, error) {
	var quotationModels []models.QuotationModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]trade.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotation, fieldErrs := model.ToDomain()
		logFieldErrors(r.logger, "quotations", model.ID, fieldErrs)
		quotations[i] = *quotation
	}
	return quotations, nil
}

// CountByCustomer counts quotations referencing the customer
func (r *GormQuotationRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber reports whether a quotation already carries the number
func (r *GormQuotationRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("quotation_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a quotation
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *trade.Quotation) error {
	var model models.QuotationModel
	model.FromDomain(quotation)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a quotation row
func (r *GormQuotationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.QuotationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
