package partner

import (
	"strings"

	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
)

// Supplier represents a vendor that purchase invoices reference
type Supplier struct {
	shared.BaseEntity
	Name    string
	Email   string
	Phone   string
	GSTIN   string
	Address valueobject.Address
}

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(shared.PrefixSupplier),
		Name:       name,
	}, nil
}

// Rename updates the supplier name
func (s *Supplier) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validatePartnerName(name); err != nil {
		return err
	}
	s.Name = name
	s.Touch()
	return nil
}

// SetContact updates email and phone
func (s *Supplier) SetContact(email, phone string) {
	s.Email = strings.TrimSpace(email)
	s.Phone = strings.TrimSpace(phone)
	s.Touch()
}

// SetAddress replaces the supplier address
func (s *Supplier) SetAddress(addr valueobject.Address) {
	s.Address = addr
	s.Touch()
}
