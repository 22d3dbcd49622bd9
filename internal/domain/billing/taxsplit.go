package billing

import (
	"gstbill/internal/core/types"
)

// RoundingMethod selects how displayed tax values are rounded.
type RoundingMethod string

const (
	RoundingNone    RoundingMethod = "none"
	RoundingNearest RoundingMethod = "nearest"
	RoundingUp      RoundingMethod = "up"
	RoundingDown    RoundingMethod = "down"
)

// TaxSettings drives the display-oriented tax breakdown (ComputeTax).
// IncludeStateCode gates state-based GST-type detection; when off,
// everything goes to IGST regardless of states.
type TaxSettings struct {
	IncludeStateCode bool           `json:"includeStateCode" mapstructure:"include_state_code"`
	RoundingMethod   RoundingMethod `json:"roundingMethod" mapstructure:"rounding_method"`
	DecimalPlaces    int32          `json:"decimalPlaces" mapstructure:"decimal_places"`
}

// TaxBreakdown is the result of the settings-driven per-amount tax split.
type TaxBreakdown struct {
	CGST      types.Money `json:"cgst"`
	SGST      types.Money `json:"sgst"`
	IGST      types.Money `json:"igst"`
	TotalTax  types.Money `json:"totalTax"`
	TaxAmount types.Money `json:"taxAmount"`
}

// ComputeTax splits the tax on a single amount per the given settings.
//
// This is a separate codepath from ComputeInvoiceTotal and is kept
// deliberately distinct: it compares states exactly (no trimming or
// case folding), only consults them when IncludeStateCode is set, and
// applies the configured rounding to each component. It is used for
// settings-driven display, not for computing persisted invoice totals.
func ComputeTax(
	amount types.Money,
	taxRate types.Percent,
	settings TaxSettings,
	placeOfSupply string,
	companyState string,
) TaxBreakdown {
	taxAmount := amount.Mul(taxRate).Div(types.Hundred)

	cgst := types.Zero()
	sgst := types.Zero()
	igst := types.Zero()

	if settings.IncludeStateCode && placeOfSupply != "" && companyState != "" {
		if placeOfSupply != companyState {
			igst = taxAmount
		} else {
			cgst = taxAmount.Div(types.Two)
			sgst = taxAmount.Div(types.Two)
		}
	} else {
		igst = taxAmount
	}

	cgst = settings.round(cgst)
	sgst = settings.round(sgst)
	igst = settings.round(igst)
	totalTax := cgst.Add(sgst).Add(igst)

	return TaxBreakdown{
		CGST:      cgst,
		SGST:      sgst,
		IGST:      igst,
		TotalTax:  totalTax,
		TaxAmount: settings.round(taxAmount),
	}
}

func (s TaxSettings) round(value types.Money) types.Money {
	switch s.RoundingMethod {
	case RoundingNone:
		return value
	case RoundingUp:
		return value.RoundCeil(s.DecimalPlaces)
	case RoundingDown:
		return value.RoundFloor(s.DecimalPlaces)
	default: // nearest
		return value.Round(s.DecimalPlaces)
	}
}
