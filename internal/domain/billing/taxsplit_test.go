package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstbill/internal/core/types"
)

func TestComputeTax_StateCodeDisabled(t *testing.T) {
	settings := TaxSettings{IncludeStateCode: false, RoundingMethod: RoundingNone}

	// Even with matching states everything goes to IGST.
	breakdown := ComputeTax(types.MustMoney("1000"), types.MustMoney("18"), settings, "Karnataka", "Karnataka")

	assert.True(t, breakdown.CGST.IsZero())
	assert.True(t, breakdown.SGST.IsZero())
	assert.True(t, breakdown.IGST.Equal(types.MustMoney("180")))
	assert.True(t, breakdown.TaxAmount.Equal(types.MustMoney("180")))
}

func TestComputeTax_ExactStateComparison(t *testing.T) {
	settings := TaxSettings{IncludeStateCode: true, RoundingMethod: RoundingNone}

	// This codepath compares states byte-for-byte, so a case
	// difference is inter-state here.
	breakdown := ComputeTax(types.MustMoney("1000"), types.MustMoney("18"), settings, "karnataka", "Karnataka")
	assert.True(t, breakdown.IGST.Equal(types.MustMoney("180")), "igst = %s", breakdown.IGST)

	breakdown = ComputeTax(types.MustMoney("1000"), types.MustMoney("18"), settings, "Karnataka", "Karnataka")
	assert.True(t, breakdown.CGST.Equal(types.MustMoney("90")))
	assert.True(t, breakdown.SGST.Equal(types.MustMoney("90")))
	assert.True(t, breakdown.IGST.IsZero())
}

func TestComputeTax_MissingStates(t *testing.T) {
	settings := TaxSettings{IncludeStateCode: true, RoundingMethod: RoundingNone}

	breakdown := ComputeTax(types.MustMoney("500"), types.MustMoney("12"), settings, "", "Karnataka")
	assert.True(t, breakdown.IGST.Equal(types.MustMoney("60")))
}

func TestComputeTax_Rounding(t *testing.T) {
	// 333.33 * 18% = 59.9994; split halves are 29.9997.
	amount := types.MustMoney("333.33")
	rate := types.MustMoney("18")

	tests := []struct {
		name     string
		method   RoundingMethod
		places   int32
		wantCGST string
		wantTax  string
	}{
		{"none", RoundingNone, 2, "29.9997", "59.9994"},
		{"nearest", RoundingNearest, 2, "30.00", "60.00"},
		{"up", RoundingUp, 2, "30.00", "60.00"},
		{"down", RoundingDown, 2, "29.99", "59.99"},
		{"nearest to whole", RoundingNearest, 0, "30", "60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := TaxSettings{
				IncludeStateCode: true,
				RoundingMethod:   tt.method,
				DecimalPlaces:    tt.places,
			}
			breakdown := ComputeTax(amount, rate, settings, "Delhi", "Delhi")

			assert.True(t, breakdown.CGST.Equal(types.MustMoney(tt.wantCGST)),
				"cgst = %s, want %s", breakdown.CGST, tt.wantCGST)
			assert.True(t, breakdown.TaxAmount.Equal(types.MustMoney(tt.wantTax)),
				"taxAmount = %s, want %s", breakdown.TaxAmount, tt.wantTax)
			assert.True(t, breakdown.TotalTax.Equal(breakdown.CGST.Add(breakdown.SGST).Add(breakdown.IGST)))
		})
	}
}

func TestComputeTax_UnknownMethodRoundsNearest(t *testing.T) {
	settings := TaxSettings{IncludeStateCode: false, RoundingMethod: "bogus", DecimalPlaces: 2}

	breakdown := ComputeTax(types.MustMoney("333.33"), types.MustMoney("18"), settings, "", "")
	assert.True(t, breakdown.IGST.Equal(types.MustMoney("60.00")), "igst = %s", breakdown.IGST)
}
