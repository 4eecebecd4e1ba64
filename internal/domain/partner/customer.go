package partner

import (
	"strings"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
)

// Customer represents a buyer that sales invoices and quotations reference.
// Both addresses are optional structured sub-records persisted as serialized
// text columns.
type Customer struct {
	shared.BaseEntity
	Name            string
	Email           string
	Phone           string
	GSTIN           string
	BillingAddress  valueobject.Address
	ShippingAddress valueobject.Address
}

// NewCustomer creates a new customer
func NewCustomer(name string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(shared.PrefixCustomer),
		Name:       name,
	}, nil
}

// Rename updates the customer name
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name); err != nil {
		return err
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetContact updates email and phone
func (c *Customer) SetContact(email, phone string) {
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.Touch()
}

// SetAddresses replaces billing and shipping addresses
func (c *Customer) SetAddresses(billing, shipping valueobject.Address) {
	c.BillingAddress = billing
	c.ShippingAddress = shipping
	c.Touch()
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewValidationError("Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("Name cannot exceed 200 characters")
	}
	return nil
}
