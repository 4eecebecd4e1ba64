package catalog

import (
	"context"
	"strings"

	appinv "github.com/bizbooks/backend/internal/application/inventory"
	"github.com/bizbooks/backend/internal/application/validation"
	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product CRUD and the cascading delete that keeps
// documents readable after a product disappears.
type ProductService struct {
	productRepo catalog.ProductRepository
	scope       appinv.TransactionScope
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, scope appinv.TransactionScope, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		scope:       scope,
		logger:      logger,
	}
}

// CreateProductRequest carries the fields for a new product
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	SKU           string           `json:"sku" validate:"max=100"`
	HSNCode       string           `json:"hsnCode" validate:"max=20"`
	Category      string           `json:"category" validate:"max=100"`
	SalePrice     decimal.Decimal  `json:"salePrice"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	TaxRate       decimal.Decimal  `json:"taxRate"`
	IsService     bool             `json:"isService"`
	OpeningStock  *decimal.Decimal `json:"openingStock"`
	ReorderPoint  *decimal.Decimal `json:"reorderPoint"`
}

// UpdateProductRequest merges only the fields that are set. Stock is absent
// on purpose: after creation it moves only through adjustments and invoices,
// so the ledger stays consistent with the documents.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,max=100"`
	HSNCode       *string          `json:"hsnCode" validate:"omitempty,max=20"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	TaxRate       *decimal.Decimal `json:"taxRate"`
	ReorderPoint  *decimal.Decimal `json:"reorderPoint"`
}

// IsEmpty reports whether no field is set
func (r UpdateProductRequest) IsEmpty() bool {
	return r == UpdateProductRequest{}
}

// GetAll returns every product, newest first
func (s *ProductService) GetAll(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// BelowReorderPoint returns stock-tracked products at or below their
// reorder threshold
func (s *ProductService) BelowReorderPoint(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindBelowReorderPoint(ctx)
}

// Create validates and persists a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.Name, req.IsService)
	if err != nil {
		return nil, err
	}

	product.SKU = strings.TrimSpace(req.SKU)
	product.HSNCode = strings.TrimSpace(req.HSNCode)
	product.Category = strings.TrimSpace(req.Category)

	if err := product.SetPrices(req.SalePrice, req.PurchasePrice); err != nil {
		return nil, err
	}
	if err := product.SetTaxRate(req.TaxRate); err != nil {
		return nil, err
	}

	if product.TracksStock() {
		if req.OpeningStock != nil {
			if err := product.SetStock(*req.OpeningStock); err != nil {
				return nil, err
			}
		}
		if req.ReorderPoint != nil {
			if err := product.SetReorderPoint(*req.ReorderPoint); err != nil {
				return nil, err
			}
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)
	return product, nil
}

// Update merges the provided fields into the product. An empty request is a
// no-op returning the current record.
func (s *ProductService) Update(ctx context.Context, id string, req UpdateProductRequest) (*catalog.Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return product, nil
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.SKU != nil {
		product.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.HSNCode != nil {
		product.HSNCode = strings.TrimSpace(*req.HSNCode)
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}

	if req.SalePrice != nil || req.PurchasePrice != nil {
		sale, purchase := product.SalePrice, product.PurchasePrice
		if req.SalePrice != nil {
			sale = *req.SalePrice
		}
		if req.PurchasePrice != nil {
			purchase = *req.PurchasePrice
		}
		if err := product.SetPrices(sale, purchase); err != nil {
			return nil, err
		}
	}
	if req.TaxRate != nil {
		if err := product.SetTaxRate(*req.TaxRate); err != nil {
			return nil, err
		}
	}
	if req.ReorderPoint != nil {
		if err := product.SetReorderPoint(*req.ReorderPoint); err != nil {
			return nil, err
		}
	}

	product.Touch()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.String("product_id", product.ID))
	return product, nil
}

// Delete removes a product. Documents that reference it keep their history:
// each referencing line item becomes a custom line named after the product,
// with quantity, rate, and tax untouched. The product's adjustment history
// goes with it. Everything happens in one atomic unit.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	var rewritten int

	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		product, err := repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		salesInvoices, err := repos.SalesInvoiceRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		for i := range salesInvoices {
			invoice := &salesInvoices[i]
			if invoice.ReplaceDeletedProduct(product.ID, product.Name) {
				if err := repos.SalesInvoiceRepo().Save(ctx, invoice); err != nil {
					return err
				}
				rewritten++
			}
		}

		quotations, err := repos.QuotationRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		for i := range quotations {
			quotation := &quotations[i]
			if quotation.ReplaceDeletedProduct(product.ID, product.Name) {
				if err := repos.QuotationRepo().Save(ctx, quotation); err != nil {
					return err
				}
				rewritten++
			}
		}

		purchaseInvoices, err := repos.PurchaseInvoiceRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		for i := range purchaseInvoices {
			invoice := &purchaseInvoices[i]
			if invoice.ReplaceDeletedProduct(product.ID, product.Name) {
				if err := repos.PurchaseInvoiceRepo().Save(ctx, invoice); err != nil {
					return err
				}
				rewritten++
			}
		}

		if err := repos.AdjustmentRepo().DeleteByProduct(ctx, product.ID); err != nil {
			return err
		}
		return repos.ProductRepo().Delete(ctx, product.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted",
		zap.String("product_id", id),
		zap.Int("documents_rewritten", rewritten),
	)
	return nil
}
