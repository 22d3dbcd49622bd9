// Package billing implements GST invoice math: GST-type determination,
// per-item tax splits, proportional discount allocation, and invoice totals.
package billing

import (
	"strings"

	"gstbill/internal/core/types"
)

// GSTType determines how a line item's tax is assigned.
type GSTType string

const (
	// GSTTypeSplit splits the tax 50/50 into CGST and SGST (intra-state supply).
	GSTTypeSplit GSTType = "CGST_SGST"
	// GSTTypeIGST assigns the full tax to IGST (inter-state supply).
	GSTTypeIGST GSTType = "IGST"
)

// DiscountType selects how DiscountSpec.Value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// LineItem is one billable invoice row. Amount fields are derived
// via Recalculate and never entered directly.
type LineItem struct {
	ProductID   string        `json:"productId,omitempty"`
	Description string        `json:"description"`
	HSNCode     string        `json:"hsnCode,omitempty"`
	Unit        string        `json:"unit,omitempty"`
	Quantity    types.Money   `json:"quantity"`
	Rate        types.Money   `json:"rate"`
	TaxRate     types.Percent `json:"taxRate"`

	Amount      types.Money `json:"amount"`
	TaxAmount   types.Money `json:"taxAmount"`
	TotalAmount types.Money `json:"totalAmount"`
}

// Recalculate derives Amount, TaxAmount and TotalAmount from
// Quantity, Rate and TaxRate. TaxAmount here is the pre-discount
// item tax used for row display; the invoice-level totals apply
// discount allocation first (see ComputeInvoiceTotal).
func (li *LineItem) Recalculate() {
	li.Amount = li.Quantity.Mul(li.Rate)
	li.TaxAmount = li.Amount.Mul(li.TaxRate).Div(types.Hundred)
	li.TotalAmount = li.Amount.Add(li.TaxAmount)
}

// DiscountSpec describes an invoice-level discount applied to the
// pre-tax subtotal. The value is not clamped to the subtotal.
type DiscountSpec struct {
	Type  DiscountType `json:"type"`
	Value types.Money  `json:"value"`
}

// Amount resolves the discount to a concrete value for the given subtotal.
func (d DiscountSpec) Amount(subtotal types.Money) types.Money {
	if d.Type == DiscountPercentage {
		return subtotal.Mul(d.Value).Div(types.Hundred)
	}
	return d.Value
}

// AdditionalCharge is a named amount added to the total after tax.
// Charges are not taxed.
type AdditionalCharge struct {
	Name   string      `json:"name"`
	Amount types.Money `json:"amount"`
}

// Calculation is the fully itemized result of ComputeInvoiceTotal.
// Invariants: TotalTax = CGST + SGST + IGST, and
// Total = (Subtotal - Discount) + TotalTax + AdditionalCharges.
type Calculation struct {
	Subtotal          types.Money `json:"subtotal"`
	CGST              types.Money `json:"cgst"`
	SGST              types.Money `json:"sgst"`
	IGST              types.Money `json:"igst"`
	TotalTax          types.Money `json:"totalTax"`
	Discount          types.Money `json:"discount"`
	AdditionalCharges types.Money `json:"additionalCharges"`
	Total             types.Money `json:"total"`
	GSTType           GSTType     `json:"gstType"`
}

// DetermineGSTType picks the GST type for a whole invoice from the
// issuer's state and the place of supply. States are compared
// case-insensitively after trimming. Missing state information
// defaults to inter-state (IGST).
func DetermineGSTType(issuerState, placeOfSupply string) GSTType {
	if issuerState == "" || placeOfSupply == "" {
		return GSTTypeIGST
	}
	a := strings.ToLower(strings.TrimSpace(issuerState))
	b := strings.ToLower(strings.TrimSpace(placeOfSupply))
	if a == b {
		return GSTTypeSplit
	}
	return GSTTypeIGST
}

// TaxSplit is the per-item tax assignment for a single taxable amount.
type TaxSplit struct {
	CGST  types.Money
	SGST  types.Money
	IGST  types.Money
	Total types.Money
}

// SplitItemTax computes the tax on a taxable amount and assigns it
// per the invoice's GST type.
func SplitItemTax(amount types.Money, taxRate types.Percent, gstType GSTType) TaxSplit {
	total := amount.Mul(taxRate).Div(types.Hundred)

	if gstType == GSTTypeSplit {
		half := total.Div(types.Two)
		return TaxSplit{CGST: half, SGST: half, IGST: types.Zero(), Total: total}
	}
	return TaxSplit{CGST: types.Zero(), SGST: types.Zero(), IGST: total, Total: total}
}

// ComputeInvoiceTotal computes the full invoice breakdown.
//
// The GST type is determined once for the whole invoice. The discount
// is allocated across items proportionally to each item's share of
// the subtotal, and tax is computed on the discounted item amounts.
// Additional charges are added after tax, untaxed.
//
// Returns nil when there is nothing to compute (no items, or a zero
// subtotal that would make discount allocation degenerate). Callers
// must treat a nil result as "cannot submit", not as a zero total.
func ComputeInvoiceTotal(
	items []LineItem,
	discount DiscountSpec,
	issuerState string,
	placeOfSupply string,
	additionalCharges []AdditionalCharge,
) *Calculation {
	if len(items) == 0 {
		return nil
	}

	subtotal := types.Zero()
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
	}
	if subtotal.IsZero() {
		return nil
	}

	discountAmount := discount.Amount(subtotal)
	gstType := DetermineGSTType(issuerState, placeOfSupply)

	cgst := types.Zero()
	sgst := types.Zero()
	igst := types.Zero()

	for _, item := range items {
		// item's taxable base after its proportional share of the discount
		share := item.Amount.Div(subtotal).Mul(discountAmount)
		taxable := item.Amount.Sub(share)

		split := SplitItemTax(taxable, item.TaxRate, gstType)
		cgst = cgst.Add(split.CGST)
		sgst = sgst.Add(split.SGST)
		igst = igst.Add(split.IGST)
	}

	totalTax := cgst.Add(sgst).Add(igst)

	extra := types.Zero()
	for _, charge := range additionalCharges {
		extra = extra.Add(charge.Amount)
	}

	total := subtotal.Sub(discountAmount).Add(totalTax).Add(extra)

	return &Calculation{
		Subtotal:          subtotal,
		CGST:              cgst,
		SGST:              sgst,
		IGST:              igst,
		TotalTax:          totalTax,
		Discount:          discountAmount,
		AdditionalCharges: extra,
		Total:             total,
		GSTType:           gstType,
	}
}
