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

// SupplierService handles supplier CRUD. Deleting a supplier is blocked
// while any purchase invoice still points at it.
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	scope        appinv.TransactionScope
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, scope appinv.TransactionScope, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		scope:        scope,
		logger:       logger,
	}
}

// CreateSupplierRequest carries the fields for a new supplier
type CreateSupplierRequest struct {
	Name    string               `json:"name" validate:"required,max=200"`
	Email   string               `json:"email" validate:"omitempty,email,max=200"`
	Phone   string               `json:"phone" validate:"max=50"`
	GSTIN   string               `json:"gstin" validate:"max=20"`
	Address *valueobject.Address `json:"address"`
}

// UpdateSupplierRequest merges only the fields that are set
type UpdateSupplierRequest struct {
	Name    *string              `json:"name" validate:"omitempty,max=200"`
	Email   *string              `json:"email" validate:"omitempty,email,max=200"`
	Phone   *string              `json:"phone" validate:"omitempty,max=50"`
	GSTIN   *string              `json:"gstin" validate:"omitempty,max=20"`
	Address *valueobject.Address `json:"address"`
}

// IsEmpty reports whether no field is set
func (r UpdateSupplierRequest) IsEmpty() bool {
	return r == UpdateSupplierRequest{}
}

// GetAll returns every supplier, newest first
func (s *SupplierService) GetAll(ctx context.Context) ([]partner.Supplier, error) {
	return s.supplierRepo.FindAll(ctx)
}

// GetByID returns one supplier
func (s *SupplierService) GetByID(ctx context.Context, id string) (*partner.Supplier, error) {
	return s.supplierRepo.FindByID(ctx, id)
}

// Create validates and persists a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*partner.Supplier, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	supplier, err := partner.NewSupplier(req.Name)
	if err != nil {
		return nil, err
	}

	supplier.SetContact(req.Email, req.Phone)
	supplier.GSTIN = req.GSTIN
	if req.Address != nil {
		supplier.SetAddress(*req.Address)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID),
		zap.String("name", supplier.Name),
	)
	return supplier, nil
}

// Update merges the provided fields into the supplier. An empty request is
// a no-op returning the current record.
func (s *SupplierService) Update(ctx context.Context, id string, req UpdateSupplierRequest) (*partner.Supplier, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return supplier, nil
	}

	if req.Name != nil {
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Phone != nil {
		email, phone := supplier.Email, supplier.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		supplier.SetContact(email, phone)
	}
	if req.GSTIN != nil {
		supplier.GSTIN = *req.GSTIN
	}
	if req.Address != nil {
		supplier.SetAddress(*req.Address)
	}

	supplier.Touch()
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier updated", zap.String("supplier_id", supplier.ID))
	return supplier, nil
}

// Delete removes a supplier unless purchase invoices still reference it, in
// which case the caller gets a conflict error naming the count.
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.SupplierRepo().FindByID(ctx, id); err != nil {
			return err
		}

		count, err := repos.PurchaseInvoiceRepo().CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("REFERENTIAL_CONFLICT", fmt.Sprintf(
				"Cannot delete supplier: referenced by %d purchase invoice(s)", count))
		}

		return repos.SupplierRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("supplier deleted", zap.String("supplier_id", id))
	return nil
}
