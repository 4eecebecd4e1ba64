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
	"go.uber.org/zap"
)

// QuotationService handles quotation CRUD. Quotations never touch stock.
type QuotationService struct {
	quotationRepo trade.QuotationRepository
	scope         appinv.TransactionScope
	logger        *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(quotationRepo trade.QuotationRepository, scope appinv.TransactionScope, logger *zap.Logger) *QuotationService {
	return &QuotationService{
		quotationRepo: quotationRepo,
		scope:         scope,
		logger:        logger,
	}
}

// CreateQuotationRequest carries the fields for a new quotation. An empty
// QuotationNumber draws the next number from the quotation counter.
type CreateQuotationRequest struct {
	QuotationNumber string                `json:"quotationNumber" validate:"max=50"`
	CustomerID      string                `json:"customerId" validate:"required"`
	QuoteDate       time.Time             `json:"quoteDate" validate:"required"`
	ExpiryDate      time.Time             `json:"expiryDate" validate:"required"`
	Items           []trade.InvoiceItem   `json:"items" validate:"required"`
	Status          trade.QuotationStatus `json:"status"`
}

// UpdateQuotationRequest merges only the fields that are set
type UpdateQuotationRequest struct {
	QuotationNumber *string                `json:"quotationNumber" validate:"omitempty,max=50"`
	QuoteDate       *time.Time             `json:"quoteDate"`
	ExpiryDate      *time.Time             `json:"expiryDate"`
	Items           *[]trade.InvoiceItem   `json:"items"`
	Status          *trade.QuotationStatus `json:"status"`
}

// IsEmpty reports whether no field is set
func (r UpdateQuotationRequest) IsEmpty() bool {
	return r == UpdateQuotationRequest{}
}

// GetAll returns every quotation, newest first
func (s *QuotationService) GetAll(ctx context.Context) ([]trade.Quotation, error) {
	return s.quotationRepo.FindAll(ctx)
}

// GetByID returns one quotation
func (s *QuotationService) GetByID(ctx context.Context, id string) (*trade.Quotation, error) {
	return s.quotationRepo.FindByID(ctx, id)
}

// Create validates and persists a new quotation
func (s *QuotationService) Create(ctx context.Context, req CreateQuotationRequest) (*trade.Quotation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	quotation, err := trade.NewQuotation(req.CustomerID, req.QuoteDate, req.ExpiryDate, req.Items)
	if err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := quotation.SetStatus(req.Status); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		number := req.QuotationNumber
		if number == "" {
			// Skip past numbers the user entered by hand. Each pass
			// advances the counter, so every taken number is passed at
			// most once.
			for number == "" {
				allocated, err := appsettings.AllocateQuotationNumber(ctx, repos.SettingsRepo(), s.logger)
				if err != nil {
					return err
				}
				taken, err := repos.QuotationRepo().ExistsByNumber(ctx, allocated)
				if err != nil {
					return err
				}
				if !taken {
					number = allocated
				}
			}
		} else {
			taken, err := repos.QuotationRepo().ExistsByNumber(ctx, number)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS",
					fmt.Sprintf("Quotation number %q is already in use", number))
			}
		}
		if err := quotation.SetNumber(number); err != nil {
			return err
		}

		return repos.QuotationRepo().Save(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quotation created",
		zap.String("quotation_id", quotation.ID),
		zap.String("quotation_number", quotation.QuotationNumber),
	)
	return quotation, nil
}

// Update merges the provided fields into the quotation. An empty request is
// a no-op returning the current record.
func (s *QuotationService) Update(ctx context.Context, id string, req UpdateQuotationRequest) (*trade.Quotation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.quotationRepo.FindByID(ctx, id)
	}

	var quotation *trade.Quotation
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		quotation, err = repos.QuotationRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.QuotationNumber != nil && *req.QuotationNumber != quotation.QuotationNumber {
			taken, err := repos.QuotationRepo().ExistsByNumber(ctx, *req.QuotationNumber)
			if err != nil {
				return err
			}
			if taken {
				return shared.NewDomainError("ALREADY_EXISTS",
					fmt.Sprintf("Quotation number %q is already in use", *req.QuotationNumber))
			}
			if err := quotation.SetNumber(*req.QuotationNumber); err != nil {
				return err
			}
		}

		if req.Items != nil {
			if err := quotation.SetItems(*req.Items); err != nil {
				return err
			}
		}
		if req.QuoteDate != nil || req.ExpiryDate != nil {
			quoteDate, expiryDate := quotation.QuoteDate, quotation.ExpiryDate
			if req.QuoteDate != nil {
				quoteDate = *req.QuoteDate
			}
			if req.ExpiryDate != nil {
				expiryDate = *req.ExpiryDate
			}
			quotation.SetDates(quoteDate, expiryDate)
		}
		if req.Status != nil {
			if err := quotation.SetStatus(*req.Status); err != nil {
				return err
			}
		}

		return repos.QuotationRepo().Save(ctx, quotation)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quotation updated", zap.String("quotation_id", quotation.ID))
	return quotation, nil
}

// Delete removes a quotation
func (s *QuotationService) Delete(ctx context.Context, id string) error {
	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("quotation deleted", zap.String("quotation_id", id))
	return nil
}
