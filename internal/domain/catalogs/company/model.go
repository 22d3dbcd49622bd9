// Package company provides the Company catalog: the businesses that
// issue invoices, with their GST registration and bank details.
package company

import (
	"context"
	"regexp"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/entity"
	"gstbill/internal/domain/billing"
)

var (
	mobileRE = regexp.MustCompile(`^[0-9+\-\s]{7,15}$`)
	emailRE  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	ifscRE   = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Address is a postal address. State is compared against an invoice's
// place of supply to determine GST type.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

// BankDetails are printed on invoices when enabled in settings.
type BankDetails struct {
	BankName          string `json:"bankName"`
	AccountNumber     string `json:"accountNumber"`
	IFSCCode          string `json:"ifscCode"`
	AccountHolderName string `json:"accountHolderName"`
}

// Company represents an invoice-issuing business.
type Company struct {
	entity.Catalog

	// GSTIN - GST registration number (required)
	GSTIN string `db:"gstin" json:"gstin"`

	// PAN - Permanent Account Number (optional)
	PAN *string `db:"pan" json:"pan,omitempty"`

	// Address is the registered address (JSONB)
	Address Address `db:"address" json:"address"`

	// Mobile is the primary contact number (required)
	Mobile string `db:"mobile" json:"mobile"`

	Email   *string `db:"email" json:"email,omitempty"`
	Website *string `db:"website" json:"website,omitempty"`

	// Logo is a data URL or stored object reference
	Logo *string `db:"logo" json:"logo,omitempty"`

	// BankDetails for payment instructions (JSONB, optional)
	BankDetails *BankDetails `db:"bank_details" json:"bankDetails,omitempty"`
}

// NewCompany creates a new Company with required fields.
func NewCompany(code, name, gstin, mobile string, address Address) *Company {
	return &Company{
		Catalog: entity.NewCatalog(code, name),
		GSTIN:   gstin,
		Mobile:  mobile,
		Address: address,
	}
}

// Validate implements entity.Validatable interface.
func (c *Company) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !billing.ValidGSTIN(c.GSTIN) {
		return apperror.NewValidation("invalid GSTIN format").
			WithDetail("field", "gstin")
	}

	if c.PAN != nil && *c.PAN != "" && !billing.ValidPAN(*c.PAN) {
		return apperror.NewValidation("invalid PAN format").
			WithDetail("field", "pan")
	}

	if c.Mobile == "" || !mobileRE.MatchString(c.Mobile) {
		return apperror.NewValidation("invalid mobile number").
			WithDetail("field", "mobile")
	}

	if c.Address.State == "" {
		return apperror.NewValidation("state is required").
			WithDetail("field", "address.state")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	if c.BankDetails != nil && c.BankDetails.IFSCCode != "" && !ifscRE.MatchString(c.BankDetails.IFSCCode) {
		return apperror.NewValidation("invalid IFSC code").
			WithDetail("field", "bankDetails.ifscCode")
	}

	return nil
}
