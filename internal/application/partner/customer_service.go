package partner

import (
	"context"
	"fmt"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	"github.com/bizbooks/backend/internal/application/validation"
	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// CustomerService handles customer CRUD. Deleting a customer is blocked
// while any invoice or quotation still points at it.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	scope        appinv.TransactionScope
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, scope appinv.TransactionScope, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		scope:        scope,
		logger:       logger,
	}
}

// CreateCustomerRequest carries the fields for a new customer
type CreateCustomerRequest struct {
	Name            string               `json:"name" validate:"required,max=200"`
	Email           string               `json:"email" validate:"omitempty,email,max=200"`
	Phone           string               `json:"phone" validate:"max=50"`
	GSTIN           string               `json:"gstin" validate:"max=20"`
	BillingAddress  *valueobject.Address `json:"billingAddress"`
	ShippingAddress *valueobject.Address `json:"shippingAddress"`
}

// UpdateCustomerRequest merges only the fields that are set
type UpdateCustomerRequest struct {
	Name            *string              `json:"name" validate:"omitempty,max=200"`
	Email           *string              `json:"email" validate:"omitempty,email,max=200"`
	Phone           *string              `json:"phone" validate:"omitempty,max=50"`
	GSTIN           *string              `json:"gstin" validate:"omitempty,max=20"`
	BillingAddress  *valueobject.Address `json:"billingAddress"`
	ShippingAddress *valueobject.Address `json:"shippingAddress"`
}

// IsEmpty reports whether no field is set
func (r UpdateCustomerRequest) IsEmpty() bool {
	return r == UpdateCustomerRequest{}
}

// GetAll returns every customer, newest first
func (s *CustomerService) GetAll(ctx context.Context) ([]partner.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

// GetByID returns one customer
func (s *CustomerService) GetByID(ctx context.Context, id string) (*partner.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

// Create validates and persists a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*partner.Customer, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(req.Name)
	if err != nil {
		return nil, err
	}

	customer.SetContact(req.Email, req.Phone)
	customer.GSTIN = req.GSTIN

	billing, shipping := valueobject.EmptyAddress(), valueobject.EmptyAddress()
	if req.BillingAddress != nil {
		billing = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		shipping = *req.ShippingAddress
	}
	customer.SetAddresses(billing, shipping)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name),
	)
	return customer, nil
}

// Update merges the provided fields into the customer. An empty request is
// a no-op returning the current record.
func (s *CustomerService) Update(ctx context.Context, id string, req UpdateCustomerRequest) (*partner.Customer, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return customer, nil
	}

	if req.Name != nil {
		if err := customer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil {
		email, phone := customer.Email, customer.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		customer.SetContact(email, phone)
	}
	if req.GSTIN != nil {
		customer.GSTIN = *req.GSTIN
	}
	if req.BillingAddress != nil || req.ShippingAddress != nil {
		billing, shipping := customer.BillingAddress, customer.ShippingAddress
		if req.BillingAddress != nil {
			billing = *req.BillingAddress
		}
		if req.ShippingAddress != nil {
			shipping = *req.ShippingAddress
		}
		customer.SetAddresses(billing, shipping)
	}

	customer.Touch()
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", zap.String("customer_id", customer.ID))
	return customer, nil
}

// Delete removes a customer unless invoices or quotations still reference
// it, in which case the caller gets a conflict error naming the counts.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.CustomerRepo().FindByID(ctx, id); err != nil {
			return err
		}

		invoiceCount, err := repos.SalesInvoiceRepo().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		quotationCount, err := repos.QuotationRepo().CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if invoiceCount > 0 || quotationCount > 0 {
			return shared.NewDomainError("REFERENTIAL_CONFLICT", fmt.Sprintf(
				"Cannot delete customer: referenced by %d invoice(s) and %d quotation(s)",
				invoiceCount, quotationCount))
		}

		return repos.CustomerRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}
