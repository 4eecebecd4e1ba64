package models

import (
	"github.com/bizbooks/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// Addresses are stored as JSON text columns.
type CustomerModel struct {
	BaseModel
	Name            string `gorm:"type:varchar(200);not null"`
	Email           string `gorm:"type:varchar(200)"`
	Phone           string `gorm:"type:varchar(50)"`
	GSTIN           string `gorm:"type:varchar(20)"`
	BillingAddress  string `gorm:"type:text"`
	ShippingAddress string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() (*partner.Customer, []FieldError) {
	var fieldErrs []FieldError

	billing, err := decodeAddress(m.BillingAddress)
	if err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "billingAddress", Err: err})
	}
	shipping, err := decodeAddress(m.ShippingAddress)
	if err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "shippingAddress", Err: err})
	}

	return &partner.Customer{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		GSTIN:           m.GSTIN,
		BillingAddress:  billing,
		ShippingAddress: shipping,
	}, fieldErrs
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.GSTIN = c.GSTIN
	m.BillingAddress = encodeAddress(c.BillingAddress)
	m.ShippingAddress = encodeAddress(c.ShippingAddress)
}

// SupplierModel is the persistence model for the Supplier domain entity.
type SupplierModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(50)"`
	GSTIN   string `gorm:"type:varchar(20)"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() (*partner.Supplier, []FieldError) {
	var fieldErrs []FieldError

	address, err := decodeAddress(m.Address)
	if err != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "address", Err: err})
	}

	return &partner.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		GSTIN:      m.GSTIN,
		Address:    address,
	}, fieldErrs
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Email = s.Email
	m.Phone = s.Phone
	m.GSTIN = s.GSTIN
	m.Address = encodeAddress(s.Address)
}
