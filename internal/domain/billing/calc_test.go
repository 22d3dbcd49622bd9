package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/core/types"
)

func item(qty, rate, taxRate string) LineItem {
	li := LineItem{
		Quantity: types.MustMoney(qty),
		Rate:     types.MustMoney(rate),
		TaxRate:  types.MustMoney(taxRate),
	}
	li.Recalculate()
	return li
}

func TestDetermineGSTType(t *testing.T) {
	tests := []struct {
		name          string
		issuerState   string
		placeOfSupply string
		want          GSTType
	}{
		{"same state", "Karnataka", "Karnataka", GSTTypeSplit},
		{"same state different case", "karnataka", "KARNATAKA", GSTTypeSplit},
		{"same state with whitespace", "  Karnataka ", "Karnataka", GSTTypeSplit},
		{"different states", "Karnataka", "Maharashtra", GSTTypeIGST},
		{"empty issuer state", "", "Karnataka", GSTTypeIGST},
		{"empty place of supply", "Karnataka", "", GSTTypeIGST},
		{"both empty", "", "", GSTTypeIGST},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineGSTType(tt.issuerState, tt.placeOfSupply))
		})
	}
}

func TestComputeInvoiceTotal_IntraStateSplit(t *testing.T) {
	items := []LineItem{
		item("2", "500", "18"),
		item("1", "1000", "12"),
	}

	calc := ComputeInvoiceTotal(items, DiscountSpec{}, "Karnataka", "Karnataka", nil)
	require.NotNil(t, calc)

	assert.Equal(t, GSTTypeSplit, calc.GSTType)
	assert.True(t, calc.IGST.IsZero(), "igst = %s", calc.IGST)
	assert.True(t, calc.CGST.Equal(calc.SGST), "cgst %s != sgst %s", calc.CGST, calc.SGST)
	assert.True(t, calc.TotalTax.Equal(calc.CGST.Add(calc.SGST)))

	// 1000*18% + 1000*12% = 180 + 120 = 300
	assert.True(t, calc.TotalTax.Equal(types.MustMoney("300")), "totalTax = %s", calc.TotalTax)
}

func TestComputeInvoiceTotal_InterStateIGST(t *testing.T) {
	items := []LineItem{
		item("2", "500", "18"),
		item("1", "1000", "12"),
	}

	calc := ComputeInvoiceTotal(items, DiscountSpec{}, "Karnataka", "Maharashtra", nil)
	require.NotNil(t, calc)

	assert.Equal(t, GSTTypeIGST, calc.GSTType)
	assert.True(t, calc.CGST.IsZero())
	assert.True(t, calc.SGST.IsZero())
	assert.True(t, calc.IGST.Equal(calc.TotalTax))
	assert.True(t, calc.IGST.Equal(types.MustMoney("300")), "igst = %s", calc.IGST)
}

func TestComputeInvoiceTotal_MissingStateDefaultsToIGST(t *testing.T) {
	items := []LineItem{item("1", "100", "18")}

	calc := ComputeInvoiceTotal(items, DiscountSpec{}, "", "Karnataka", nil)
	require.NotNil(t, calc)
	assert.Equal(t, GSTTypeIGST, calc.GSTType)
	assert.True(t, calc.IGST.Equal(types.MustMoney("18")))
}

func TestComputeInvoiceTotal_TotalIdentity(t *testing.T) {
	items := []LineItem{
		item("3", "333.33", "18"),
		item("1", "766.10", "5"),
		item("7", "12.49", "28"),
	}
	discount := DiscountSpec{Type: DiscountPercentage, Value: types.MustMoney("7.5")}
	charges := []AdditionalCharge{
		{Name: "Shipping", Amount: types.MustMoney("120")},
		{Name: "Handling", Amount: types.MustMoney("35.50")},
	}

	calc := ComputeInvoiceTotal(items, discount, "Tamil Nadu", "Kerala", charges)
	require.NotNil(t, calc)

	want := calc.Subtotal.Sub(calc.Discount).Add(calc.TotalTax).Add(calc.AdditionalCharges)
	assert.True(t, calc.Total.Equal(want), "total %s != identity %s", calc.Total, want)

	assert.True(t, calc.TotalTax.Equal(calc.CGST.Add(calc.SGST).Add(calc.IGST)))
	assert.True(t, calc.AdditionalCharges.Equal(types.MustMoney("155.50")))
}

func TestComputeInvoiceTotal_DiscountProportionality(t *testing.T) {
	items := []LineItem{
		item("1", "100", "18"),
		item("1", "300", "18"),
	}
	discount := DiscountSpec{Type: DiscountFixed, Value: types.MustMoney("40")}

	calc := ComputeInvoiceTotal(items, discount, "Delhi", "Delhi", nil)
	require.NotNil(t, calc)

	// Allocation: 100 gets 10, 300 gets 30. Taxable = 90 + 270 = 360.
	// Tax = 360 * 18% = 64.80, split 32.40 / 32.40.
	assert.True(t, calc.CGST.Equal(types.MustMoney("32.40")), "cgst = %s", calc.CGST)
	assert.True(t, calc.SGST.Equal(types.MustMoney("32.40")), "sgst = %s", calc.SGST)

	// Allocated shares sum back to the discount amount.
	allocated := types.Zero()
	for _, it := range items {
		allocated = allocated.Add(it.Amount.Div(calc.Subtotal).Mul(calc.Discount))
	}
	diff := allocated.Sub(calc.Discount).Abs()
	assert.True(t, diff.LessThan(types.MustMoney("0.000000001")), "diff = %s", diff)
}

func TestComputeInvoiceTotal_PercentageDiscount(t *testing.T) {
	items := []LineItem{item("1", "1000", "18")}
	discount := DiscountSpec{Type: DiscountPercentage, Value: types.MustMoney("10")}

	calc := ComputeInvoiceTotal(items, discount, "Goa", "Goa", nil)
	require.NotNil(t, calc)

	assert.True(t, calc.Discount.Equal(types.MustMoney("100")), "discount = %s", calc.Discount)
	// Taxable 900, tax 162, total 900 + 162 = 1062.
	assert.True(t, calc.TotalTax.Equal(types.MustMoney("162")), "totalTax = %s", calc.TotalTax)
	assert.True(t, calc.Total.Equal(types.MustMoney("1062")), "total = %s", calc.Total)
}

func TestComputeInvoiceTotal_DiscountNotClamped(t *testing.T) {
	items := []LineItem{item("1", "100", "18")}
	discount := DiscountSpec{Type: DiscountFixed, Value: types.MustMoney("150")}

	calc := ComputeInvoiceTotal(items, discount, "Goa", "Goa", nil)
	require.NotNil(t, calc)

	// Discounted subtotal goes negative and so does the taxable base.
	assert.True(t, calc.Discount.Equal(types.MustMoney("150")))
	assert.True(t, calc.TotalTax.Equal(types.MustMoney("-9")), "totalTax = %s", calc.TotalTax)
	assert.True(t, calc.Total.Equal(types.MustMoney("-59")), "total = %s", calc.Total)
}

func TestComputeInvoiceTotal_EmptyItems(t *testing.T) {
	calc := ComputeInvoiceTotal(nil, DiscountSpec{}, "Goa", "Goa", nil)
	assert.Nil(t, calc)
}

func TestComputeInvoiceTotal_ZeroSubtotal(t *testing.T) {
	items := []LineItem{item("0", "100", "18")}
	discount := DiscountSpec{Type: DiscountFixed, Value: types.MustMoney("50")}

	calc := ComputeInvoiceTotal(items, discount, "Goa", "Goa", nil)
	assert.Nil(t, calc)
}

func TestSplitItemTax(t *testing.T) {
	amount := types.MustMoney("1000")
	rate := types.MustMoney("18")

	split := SplitItemTax(amount, rate, GSTTypeSplit)
	assert.True(t, split.CGST.Equal(types.MustMoney("90")))
	assert.True(t, split.SGST.Equal(types.MustMoney("90")))
	assert.True(t, split.IGST.IsZero())
	assert.True(t, split.Total.Equal(types.MustMoney("180")))

	split = SplitItemTax(amount, rate, GSTTypeIGST)
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
	assert.True(t, split.IGST.Equal(types.MustMoney("180")))
}

func TestLineItemRecalculate(t *testing.T) {
	li := LineItem{
		Quantity: decimal.NewFromInt(3),
		Rate:     types.MustMoney("250.50"),
		TaxRate:  decimal.NewFromInt(18),
	}
	li.Recalculate()

	assert.True(t, li.Amount.Equal(types.MustMoney("751.50")), "amount = %s", li.Amount)
	assert.True(t, li.TaxAmount.Equal(types.MustMoney("135.27")), "taxAmount = %s", li.TaxAmount)
	assert.True(t, li.TotalAmount.Equal(types.MustMoney("886.77")), "totalAmount = %s", li.TotalAmount)
}
