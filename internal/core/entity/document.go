package entity

import (
	"context"
	"time"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Invoice, ProformaInvoice.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// CompanyID is the issuing company (required)
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// UserID is the owning user account (required)
	UserID id.ID `db:"user_id" json:"userId"`

	// Notes is an optional user comment printed on the document
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(companyID, userID id.ID) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		CompanyID:    companyID,
		UserID:       userID,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if id.IsNil(d.UserID) {
		return apperror.NewValidation("user is required").
			WithDetail("field", "userId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}
