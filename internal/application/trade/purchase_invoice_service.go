package trade

import (
	"context"
	"time"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	"github.com/bizbooks/backend/internal/application/validation"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseInvoiceService handles purchase invoice CRUD. Its stock effects
// mirror the sales side: receiving goods increases stock, retracting a
// recorded purchase decreases it. Numbers come from the supplier's own
// document, so no counter and no uniqueness check apply.
type PurchaseInvoiceService struct {
	invoiceRepo trade.PurchaseInvoiceRepository
	scope       appinv.TransactionScope
	logger      *zap.Logger
}

// NewPurchaseInvoiceService creates a new PurchaseInvoiceService
func NewPurchaseInvoiceService(invoiceRepo trade.PurchaseInvoiceRepository, scope appinv.TransactionScope, logger *zap.Logger) *PurchaseInvoiceService {
	return &PurchaseInvoiceService{
		invoiceRepo: invoiceRepo,
		scope:       scope,
		logger:      logger,
	}
}

// CreatePurchaseInvoiceRequest carries the fields for a new purchase invoice
type CreatePurchaseInvoiceRequest struct {
	InvoiceNumber string                      `json:"invoiceNumber" validate:"required,max=50"`
	SupplierID    string                      `json:"supplierId" validate:"required"`
	PurchaseDate  time.Time                   `json:"purchaseDate" validate:"required"`
	Items         []trade.InvoiceItem         `json:"items" validate:"required"`
	Status        trade.PurchaseInvoiceStatus `json:"status"`
	AmountPaid    decimal.Decimal             `json:"amountPaid"`
}

// UpdatePurchaseInvoiceRequest merges only the fields that are set.
// Replacing Items retracts the old received quantities before applying the
// new ones.
type UpdatePurchaseInvoiceRequest struct {
	InvoiceNumber *string                      `json:"invoiceNumber" validate:"omitempty,max=50"`
	PurchaseDate  *time.Time                   `json:"purchaseDate"`
	Items         *[]trade.InvoiceItem         `json:"items"`
	Status        *trade.PurchaseInvoiceStatus `json:"status"`
	AmountPaid    *decimal.Decimal             `json:"amountPaid"`
}

// IsEmpty reports whether no field is set
func (r UpdatePurchaseInvoiceRequest) IsEmpty() bool {
	return r == UpdatePurchaseInvoiceRequest{}
}

// GetAll returns every purchase invoice, newest first
func (s *PurchaseInvoiceService) GetAll(ctx context.Context) ([]trade.PurchaseInvoice, error) {
	return s.invoiceRepo.FindAll(ctx)
}

// GetByID returns one purchase invoice
func (s *PurchaseInvoiceService) GetByID(ctx context.Context, id string) (*trade.PurchaseInvoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// Create validates and persists a new purchase invoice, incrementing stock
// for every stock-tracked product line in the same atomic unit.
func (s *PurchaseInvoiceService) Create(ctx context.Context, req CreatePurchaseInvoiceRequest) (*trade.PurchaseInvoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	invoice, err := trade.NewPurchaseInvoice(req.SupplierID, req.InvoiceNumber, req.PurchaseDate, req.Items)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := invoice.SetStatus(req.Status); err != nil {
			return nil, err
		}
	}
	if !req.AmountPaid.IsZero() {
		if err := invoice.SetAmountPaid(req.AmountPaid); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockIn); err != nil {
			return err
		}
		return repos.PurchaseInvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

// Update merges the provided fields into the invoice. An items replacement
// retracts every old movement, then applies every new one. An empty request
// is a no-op returning the current record.
func (s *PurchaseInvoiceService) Update(ctx context.Context, id string, req UpdatePurchaseInvoiceRequest) (*trade.PurchaseInvoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.invoiceRepo.FindByID(ctx, id)
	}

	var invoice *trade.PurchaseInvoice
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		invoice, err = repos.PurchaseInvoiceRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.InvoiceNumber != nil {
			if err := invoice.SetNumber(*req.InvoiceNumber); err != nil {
				return err
			}
		}

		if req.Items != nil {
			if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockOut); err != nil {
				return err
			}
			if err := invoice.SetItems(*req.Items); err != nil {
				return err
			}
			if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockIn); err != nil {
				return err
			}
		}

		if req.PurchaseDate != nil {
			invoice.SetPurchaseDate(*req.PurchaseDate)
		}
		if req.Status != nil {
			if err := invoice.SetStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.AmountPaid != nil {
			if err := invoice.SetAmountPaid(*req.AmountPaid); err != nil {
				return err
			}
		}

		return repos.PurchaseInvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase invoice updated", zap.String("invoice_id", invoice.ID))
	return invoice, nil
}

// Delete removes a purchase invoice and retracts each received quantity in
// the same atomic unit. Retraction observes the non-negative floor, so a
// purchase whose goods were already sold on cannot be deleted.
func (s *PurchaseInvoiceService) Delete(ctx context.Context, id string) error {
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		invoice, err := repos.PurchaseInvoiceRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockOut); err != nil {
			return err
		}
		return repos.PurchaseInvoiceRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("purchase invoice deleted", zap.String("invoice_id", id))
	return nil
}
