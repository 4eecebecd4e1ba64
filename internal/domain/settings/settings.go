package settings

import "fmt"

// Section keys for the two-row configuration table. The store conceptually
// holds exactly one value per key.
const (
	KeyCompanyDetails  = "companyDetails"
	KeyInvoiceSettings = "invoiceSettings"
)

// CompanyDetails is the business identity printed on documents
type CompanyDetails struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
	State   string `json:"state,omitempty"`
}

// BankDetails is the optional payment information block on invoices
type BankDetails struct {
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	BankName      string `json:"bankName,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
	UPI           string `json:"upi,omitempty"`
}

// InvoiceSettings holds document numbering and payment details. The
// counters are monotonically non-decreasing and advance exactly once per
// successful creation that consumes them.
type InvoiceSettings struct {
	InvoicePrefix       string       `json:"invoicePrefix"`
	NextInvoiceNumber   int          `json:"nextInvoiceNumber"`
	QuotationPrefix     string       `json:"quotationPrefix"`
	NextQuotationNumber int          `json:"nextQuotationNumber"`
	Terms               string       `json:"terms,omitempty"`
	BankDetails         *BankDetails `json:"bankDetails,omitempty"`
}

// AppSettings couples the two configuration sections
type AppSettings struct {
	CompanyDetails  CompanyDetails
	InvoiceSettings InvoiceSettings
}

// DefaultCompanyDetails returns the built-in company section
func DefaultCompanyDetails() CompanyDetails {
	return CompanyDetails{
		Name: "My Company",
	}
}

// DefaultInvoiceSettings returns the built-in numbering section
func DefaultInvoiceSettings() InvoiceSettings {
	return InvoiceSettings{
		InvoicePrefix:       "INV-",
		NextInvoiceNumber:   1,
		QuotationPrefix:     "QUO-",
		NextQuotationNumber: 1,
	}
}

// DefaultAppSettings returns both sections with built-in defaults
func DefaultAppSettings() AppSettings {
	return AppSettings{
		CompanyDetails:  DefaultCompanyDetails(),
		InvoiceSettings: DefaultInvoiceSettings(),
	}
}

// ConsumeInvoiceNumber formats the next invoice number and advances the
// counter by one.
func (s *InvoiceSettings) ConsumeInvoiceNumber() string {
	number := fmt.Sprintf("%s%04d", s.InvoicePrefix, s.NextInvoiceNumber)
	s.NextInvoiceNumber++
	return number
}

// ConsumeQuotationNumber formats the next quotation number and advances the
// counter by one.
func (s *InvoiceSettings) ConsumeQuotationNumber() string {
	number := fmt.Sprintf("%s%04d", s.QuotationPrefix, s.NextQuotationNumber)
	s.NextQuotationNumber++
	return number
}

// CompanyDetailsPatch carries optional replacements for company fields.
// Nil fields are left untouched by Apply.
type CompanyDetailsPatch struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	GSTIN   *string `json:"gstin"`
	State   *string `json:"state"`
}

// Apply shallow-merges the patch into the section
func (c *CompanyDetails) Apply(patch CompanyDetailsPatch) {
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.GSTIN != nil {
		c.GSTIN = *patch.GSTIN
	}
	if patch.State != nil {
		c.State = *patch.State
	}
}

// InvoiceSettingsPatch carries optional replacements for numbering fields.
// Counters may only move forward.
type InvoiceSettingsPatch struct {
	InvoicePrefix       *string      `json:"invoicePrefix"`
	NextInvoiceNumber   *int         `json:"nextInvoiceNumber"`
	QuotationPrefix     *string      `json:"quotationPrefix"`
	NextQuotationNumber *int         `json:"nextQuotationNumber"`
	Terms               *string      `json:"terms"`
	BankDetails         *BankDetails `json:"bankDetails"`
}

// Apply shallow-merges the patch into the section. Counter values lower
// than the current ones are ignored so numbering never runs backwards.
func (s *InvoiceSettings) Apply(patch InvoiceSettingsPatch) {
	if patch.InvoicePrefix != nil {
		s.InvoicePrefix = *patch.InvoicePrefix
	}
	if patch.NextInvoiceNumber != nil && *patch.NextInvoiceNumber >= s.NextInvoiceNumber {
		s.NextInvoiceNumber = *patch.NextInvoiceNumber
	}
	if patch.QuotationPrefix != nil {
		s.QuotationPrefix = *patch.QuotationPrefix
	}
	if patch.NextQuotationNumber != nil && *patch.NextQuotationNumber >= s.NextQuotationNumber {
		s.NextQuotationNumber = *patch.NextQuotationNumber
	}
	if patch.Terms != nil {
		s.Terms = *patch.Terms
	}
	if patch.BankDetails != nil {
		bd := *patch.BankDetails
		s.BankDetails = &bd
	}
}
