package valueobject

import "strings"

// Address is a value object representing a postal address as it appears on
// invoices. All fields are optional; an entirely blank address is valid.
type Address struct {
	Line1    string `json:"line1,omitempty"`
	Line2    string `json:"line2,omitempty"`
	District string `json:"district,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	PinCode  string `json:"pincode,omitempty"`
}

// EmptyAddress returns a blank address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// IsEmpty returns true if every field is blank
func (a Address) IsEmpty() bool {
	return a.Line1 == "" && a.Line2 == "" && a.District == "" &&
		a.State == "" && a.Country == "" && a.PinCode == ""
}

// Equals returns true if both addresses carry the same fields
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns the address as a single display line
func (a Address) String() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.District, a.State, a.Country, a.PinCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
