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

// GormPurchaseInvoiceRepository implements trade.PurchaseInvoiceRepository using GORM
type GormPurchaseInvoiceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ trade.PurchaseInvoiceRepository = (*GormPurchaseInvoiceRepository)(nil)

// NewGormPurchaseInvoiceRepository creates a new GormPurchaseInvoiceRepository
func NewGormPurchaseInvoiceRepository(db *gorm.DB, logger *zap.Logger) *GormPurchaseInvoiceRepository {
	return &GormPurchaseInvoiceRepository{db: db, logger: logger}
}

// FindByID finds a purchase invoice by its ID
func (r *GormPurchaseInvoiceRepository) FindByID(ctx context.Context, id string) (*trade.PurchaseInvoice, error) {
	var model models.PurchaseInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	invoice, fieldErrs := model.ToDomain()
	logFieldErrors(r.logger, "purchase_invoices", model.ID, fieldErrs)
	return invoice, nil
}

// FindAll returns every purchase invoice, newest first
func (r *GormPurchaseInvoiceRepository) FindAll(ctx context.Context) ([]trade.PurchaseInvoice, error) {
	var invoiceModels []models.PurchaseInvoiceModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]trade.PurchaseInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoice, fieldErrs := model.ToDomain()
		logFieldErrors(r.logger, "purchase_invoices", model.ID, fieldErrs)
		invoices[i] = *invoice
	}
	return invoices, nil
}

// CountBySupplier counts purchase invoices referencing the supplier
func (r *GormPurchaseInvoiceRepository) CountBySupplier(ctx context.Context, supplierID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PurchaseInvoiceModel{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a purchase invoice
func (r *GormPurchaseInvoiceRepository) Save(ctx context.Context, invoice *trade.PurchaseInvoice) error {
	var model models.PurchaseInvoiceModel
	model.FromDomain(invoice)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a purchase invoice row
func (r *GormPurchaseInvoiceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.PurchaseInvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
