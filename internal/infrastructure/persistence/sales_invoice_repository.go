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

// GormSalesInvoiceRepository implements trade.SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ trade.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)

// NewGormSalesInvoiceRepository creates a new GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB, logger *zap.Logger) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{db: db, logger: logger}
}

// FindByID finds a sales invoice by its ID
func (r *GormSalesInvoiceRepository) FindByID(ctx context.Context, id string) (*trade.SalesInvoice, error) {
	var model models.SalesInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	invoice, fieldErrs := model.ToDomain()
	logFieldErrors(r.logger, "sales_invoices", model.ID, fieldErrs)
	return invoice, nil
}

// FindAll returns every sales invoice, newest first
func (r *GormSalesInvoiceRepository) FindAll(ctx context.Context) ([]trade.SalesInvoice, error) {
	var invoiceModels []models.SalesInvoiceModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]trade.SalesInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoice, fieldErrs := model.ToDomain()
		logFieldErrors(r.logger, "sales_invoices", model.ID, fieldErrs)
		invoices[i] = *invoice
	}
	return invoices, nil
}

// CountByCustomer counts invoices referencing the customer
func (r *GormSalesInvoiceRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesInvoiceModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber reports whether an invoice already carries the number
func (r *GormSalesInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesInvoiceModel{}).
		Where("invoice_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a sales invoice
func (r *GormSalesInvoiceRepository) Save(ctx context.Context, invoice *trade.SalesInvoice) error {
	var model models.SalesInvoiceModel
	model.FromDomain(invoice)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete removes a sales invoice row
func (r *GormSalesInvoiceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.SalesInvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
