package models

import (
	"time"

	"github.com/bizbooks/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockAdjustmentModel is the persistence model for the StockAdjustment
// domain entity.
type StockAdjustmentModel struct {
	BaseModel
	ProductID      string          `gorm:"type:varchar(40);not null;index"`
	Date           time.Time       `gorm:"not null"`
	QuantityChange decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockAdjustmentModel) TableName() string {
	return "stock_adjustments"
}

// ToDomain converts the persistence model to a domain StockAdjustment entity.
func (m *StockAdjustmentModel) ToDomain() *inventory.StockAdjustment {
	return &inventory.StockAdjustment{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		Date:           m.Date,
		QuantityChange: m.QuantityChange,
		Reason:         m.Reason,
	}
}

// FromDomain populates the persistence model from a domain StockAdjustment entity.
func (m *StockAdjustmentModel) FromDomain(a *inventory.StockAdjustment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ProductID = a.ProductID
	m.Date = a.Date
	m.QuantityChange = a.QuantityChange
	m.Reason = a.Reason
}
