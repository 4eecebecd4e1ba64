package trade

import (
	"context"
	"fmt"
	"time"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	appsettings "github.com/bizbooks/backend/internal/application/settings"
	"github.com/bizbooks/backend/internal/application/validation"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SalesInvoiceService handles sales invoice CRUD together with the stock
// movements each document implies.
type SalesInvoiceService struct {
	invoiceRepo trade.SalesInvoiceRepository
	scope       appinv.TransactionScope
	logger      *zap.Logger
}

// NewSalesInvoiceService creates a new SalesInvoiceService
func NewSalesInvoiceService(invoiceRepo trade.SalesInvoiceRepository, scope appinv.TransactionScope, logger *zap.Logger) *SalesInvoiceService {
	return &SalesInvoiceService{
		invoiceRepo: invoiceRepo,
		scope:       scope,
		logger:      logger,
	}
}

// CreateSalesInvoiceRequest carries the fields for a new sales invoice. An
// empty InvoiceNumber draws the next number from the invoice counter.
type CreateSalesInvoiceRequest struct {
	InvoiceNumber string              `json:"invoiceNumber" validate:"max=50"`
	CustomerID    string              `json:"customerId" validate:"required"`
	InvoiceDate   time.Time           `json:"invoiceDate" validate:"required"`
	DueDate       time.Time           `json:"dueDate" validate:"required"`
	Items         []trade.InvoiceItem `json:"items" validate:"required"`
	Status        trade.InvoiceStatus `json:"status"`
	AmountPaid    decimal.Decimal     `json:"amountPaid"`
}

// UpdateSalesInvoiceRequest merges only the fields that are set. Replacing
// Items reverses the old stock movements before applying the new ones.
type UpdateSalesInvoiceRequest struct {
	InvoiceNumber *string              `json:"invoiceNumber" validate:"omitempty,max=50"`
	InvoiceDate   *time.Time           `json:"invoiceDate"`
	DueDate       *time.Time           `json:"dueDate"`
	Items         *[]trade.InvoiceItem `json:"items"`
	Status        *trade.InvoiceStatus `json:"status"`
	AmountPaid    *decimal.Decimal     `json:"amountPaid"`
}

// IsEmpty reports whether no field is set
func (r UpdateSalesInvoiceRequest) IsEmpty() bool {
	return r == UpdateSalesInvoiceRequest{}
}

// GetAll returns every sales invoice, newest first
func (s *SalesInvoiceService) GetAll(ctx context.Context) ([]trade.SalesInvoice, error) {
	return s.invoiceRepo.FindAll(ctx)
}

// GetByID returns one sales invoice
func (s *SalesInvoiceService) GetByID(ctx context.Context, id string) (*trade.SalesInvoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// Create validates and persists a new sales invoice, decrementing stock for
// every stock-tracked product line in the same atomic unit.
func (s *SalesInvoiceService) Create(ctx context.Context, req CreateSalesInvoiceRequest) (*trade.SalesInvoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	invoice, err := trade.NewSalesInvoice(req.CustomerID, req.InvoiceDate, req.DueDate, req.Items)
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
		number := req.InvoiceNumber
		if number == "" {
			// Skip past numbers the user entered by hand. Each pass
			// advances the counter, so every taken number is passed at
			// most once.
			for number == "" {
				allocated, err := appsettings.AllocateInvoiceNumber(ctx, repos.SettingsRepo(), s.logger)
				if err != nil {
					return err
				}
				taken, err := repos.SalesInvoiceRepo().ExistsByNumber(ctx, allocated)
				if err != nil {
					return err
				}
				if !taken {
					number = allocated
				}
			}
		} else {
			taken, err := repos.SalesInvoiceRepo().ExistsByNumber(ctx, number)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS",
					fmt.Sprintf("Invoice number %q is already in use", number))
			}
		}
		if err := invoice.SetNumber(number); err != nil {
			return err
		}

		if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockOut); err != nil {
			return err
		}
		return repos.SalesInvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

// Update merges the provided fields into the invoice. An items replacement
// reverses every old movement, then applies every new one, never a diff of
// the two lists. An empty request is a no-op returning the current record.
func (s *SalesInvoiceService) Update(ctx context.Context, id string, req UpdateSalesInvoiceRequest) (*trade.SalesInvoice, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.invoiceRepo.FindByID(ctx, id)
	}

	var invoice *trade.SalesInvoice
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		invoice, err = repos.SalesInvoiceRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.InvoiceNumber != nil && *req.InvoiceNumber != invoice.InvoiceNumber {
			taken, err := repos.SalesInvoiceRepo().ExistsByNumber(ctx, *req.InvoiceNumber)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS",
					fmt.Sprintf("Invoice number %q is already in use", *req.InvoiceNumber))
			}
			if err := invoice.SetNumber(*req.InvoiceNumber); err != nil {
				return err
			}
		}

		if req.Items != nil {
			if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockIn); err != nil {
				return err
			}
			if err := invoice.SetItems(*req.Items); err != nil {
				return err
			}
			if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockOut); err != nil {
				return err
			}
		}

		if req.InvoiceDate != nil || req.DueDate != nil {
			invoiceDate, dueDate := invoice.InvoiceDate, invoice.DueDate
			if req.InvoiceDate != nil {
				invoiceDate = *req.InvoiceDate
			}
			if req.DueDate != nil {
				dueDate = *req.DueDate
			}
			invoice.SetDates(invoiceDate, dueDate)
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

		return repos.SalesInvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sales invoice updated", zap.String("invoice_id", invoice.ID))
	return invoice, nil
}

// Delete removes a sales invoice and adds back each item's quantity in the
// same atomic unit.
func (s *SalesInvoiceService) Delete(ctx context.Context, id string) error {
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		invoice, err := repos.SalesInvoiceRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyStockEffects(ctx, repos, s.logger, invoice.Items, stockIn); err != nil {
			return err
		}
		return repos.SalesInvoiceRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("sales invoice deleted", zap.String("invoice_id", id))
	return nil
}
