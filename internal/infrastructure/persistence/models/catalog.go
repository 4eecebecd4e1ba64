package models

import (
	"github.com/bizbooks/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name          string           `gorm:"type:varchar(200);not null"`
	SKU           string           `gorm:"type:varchar(100);index"`
	HSNCode       string           `gorm:"type:varchar(20)"`
	Category      string           `gorm:"type:varchar(100);index"`
	SalePrice     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PurchasePrice decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	IsService     bool             `gorm:"not null;default:false"`
	Stock         *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ReorderPoint  *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		SKU:           m.SKU,
		HSNCode:       m.HSNCode,
		Category:      m.Category,
		SalePrice:     m.SalePrice,
		PurchasePrice: m.PurchasePrice,
		TaxRate:       m.TaxRate,
		IsService:     m.IsService,
		Stock:         m.Stock,
		ReorderPoint:  m.ReorderPoint,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.SKU = p.SKU
	m.HSNCode = p.HSNCode
	m.Category = p.Category
	m.SalePrice = p.SalePrice
	m.PurchasePrice = p.PurchasePrice
	m.TaxRate = p.TaxRate
	m.IsService = p.IsService
	m.Stock = p.Stock
	m.ReorderPoint = p.ReorderPoint
}
