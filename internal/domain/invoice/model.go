// Package invoice provides the Invoice document: line items, GST totals,
// payments and status tracking for invoices and proforma invoices.
package invoice

import (
	"context"
	"time"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/entity"
	"gstbill/internal/core/id"
	"gstbill/internal/core/types"
	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/catalogs/company"
)

// Type distinguishes tax invoices from proforma invoices.
type Type string

const (
	TypeInvoice  Type = "invoice"
	TypeProforma Type = "proforma"
)

// Status is the invoice lifecycle state. Transitions are free-form:
// any status may move to any other via explicit user action. The only
// enforced business rule is the auto-settlement on "paid" (see SetStatus).
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// ValidType reports whether t is a known document type.
func ValidType(t Type) bool {
	return t == TypeInvoice || t == TypeProforma
}

// BillTo is the recipient block printed on the invoice. Stored inline
// (JSONB), not a catalog reference, so later customer edits don't
// rewrite issued documents.
type BillTo struct {
	Name    string          `json:"name"`
	GSTIN   string          `json:"gstin,omitempty"`
	Address company.Address `json:"address"`
	Mobile  string          `json:"mobile,omitempty"`
	Email   string          `json:"email,omitempty"`
}

// Payment is one settlement against an invoice.
type Payment struct {
	Amount types.Money `json:"amount"`
	Date   time.Time   `json:"date"`
	Method string      `json:"method,omitempty"`
	Note   string      `json:"note,omitempty"`
}

// Invoice is the billing document. The calculation snapshot fields
// (Subtotal..Total) are persisted scalars populated from a
// billing.Calculation at create/edit time, never recomputed on read.
type Invoice struct {
	entity.Document

	Type          Type      `db:"type" json:"type"`
	Status        Status    `db:"status" json:"status"`
	BillTo        BillTo    `db:"bill_to" json:"billTo"`
	PlaceOfSupply string    `db:"place_of_supply" json:"placeOfSupply"`
	DueDate       time.Time `db:"due_date" json:"dueDate"`
	Terms         string    `db:"terms" json:"terms,omitempty"`

	// Table part: line items (JSONB)
	Items []billing.LineItem `db:"items" json:"items"`

	// Discount specification as entered by the user
	DiscountType  billing.DiscountType `db:"discount_type" json:"discountType"`
	DiscountValue types.Money          `db:"discount_value" json:"discountValue"`

	// Additional charges (JSONB), untaxed
	AdditionalCharges []billing.AdditionalCharge `db:"additional_charges" json:"additionalCharges,omitempty"`

	// Calculation snapshot
	Subtotal       types.Money `db:"subtotal" json:"subtotal"`
	CGST           types.Money `db:"cgst" json:"cgst"`
	SGST           types.Money `db:"sgst" json:"sgst"`
	IGST           types.Money `db:"igst" json:"igst"`
	TotalTax       types.Money `db:"total_tax" json:"totalTax"`
	DiscountAmount types.Money `db:"discount_amount" json:"discountAmount"`
	ChargesTotal   types.Money `db:"charges_total" json:"chargesTotal"`
	Total          types.Money `db:"total" json:"total"`

	// Settlement tracking
	AmountPaid types.Money `db:"amount_paid" json:"amountPaid"`
	Payments   []Payment   `db:"payments" json:"payments,omitempty"`

	// Derived on read (see DerivedStatus), never stored
	DisplayStatus Status `db:"-" json:"displayStatus,omitempty"`
}

// New creates a draft invoice for the given company and user.
func New(docType Type, companyID, userID id.ID) *Invoice {
	return &Invoice{
		Document: entity.NewDocument(companyID, userID),
		Type:     docType,
		Status:   StatusDraft,
		Items:    make([]billing.LineItem, 0),
	}
}

// DiscountSpec returns the user-entered discount as a billing spec.
func (inv *Invoice) DiscountSpec() billing.DiscountSpec {
	return billing.DiscountSpec{Type: inv.DiscountType, Value: inv.DiscountValue}
}

// ApplyCalculation copies a computed breakdown into the persisted
// snapshot fields. A nil calculation means the invoice has nothing to
// bill and cannot be saved.
func (inv *Invoice) ApplyCalculation(calc *billing.Calculation) error {
	if calc == nil {
		return apperror.NewNoCalculation()
	}

	inv.Subtotal = calc.Subtotal
	inv.CGST = calc.CGST
	inv.SGST = calc.SGST
	inv.IGST = calc.IGST
	inv.TotalTax = calc.TotalTax
	inv.DiscountAmount = calc.Discount
	inv.ChargesTotal = calc.AdditionalCharges
	inv.Total = calc.Total
	return nil
}

// BalanceDue returns the unpaid remainder.
func (inv *Invoice) BalanceDue() types.Money {
	return inv.Total.Sub(inv.AmountPaid)
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if !ValidType(inv.Type) {
		return apperror.NewValidation("invalid document type").
			WithDetail("field", "type").
			WithDetail("value", string(inv.Type))
	}

	if !ValidStatus(inv.Status) {
		return apperror.NewBusinessRule(apperror.CodeInvalidStatus, "invalid invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	if inv.BillTo.Name == "" {
		return apperror.NewValidation("bill-to name is required").
			WithDetail("field", "billTo.name")
	}

	if inv.BillTo.GSTIN != "" && !billing.ValidGSTIN(inv.BillTo.GSTIN) {
		return apperror.NewValidation("invalid bill-to GSTIN").
			WithDetail("field", "billTo.gstin")
	}

	if len(inv.Items) == 0 {
		return apperror.NewValidation("at least one line item is required").
			WithDetail("field", "items")
	}

	for i, item := range inv.Items {
		if item.Quantity.IsNegative() {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.Rate.IsNegative() {
			return apperror.NewValidation("rate cannot be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(types.Hundred) {
			return apperror.NewValidation("tax rate must be between 0 and 100").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	if inv.DiscountValue.IsNegative() {
		return apperror.NewValidation("discount cannot be negative").
			WithDetail("field", "discountValue")
	}

	return nil
}
