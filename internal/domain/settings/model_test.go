package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/core/id"
	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/invoice"
)

func TestDefaults(t *testing.T) {
	userID := id.New()
	s := Defaults(userID)

	require.NoError(t, s.Validate(context.Background()))
	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, "INR", s.General.Currency)
	assert.Equal(t, "INV", s.Invoice.Prefix)
	assert.Equal(t, "PRO", s.Proforma.Prefix)
	assert.Equal(t, 30, s.Invoice.DueDays)
	assert.True(t, s.Tax.IncludeStateCode)
	assert.Equal(t, billing.RoundingNearest, s.Tax.RoundingMethod)
}

func TestSchemeForType(t *testing.T) {
	s := Defaults(id.New())

	assert.Equal(t, "INV", s.SchemeForType(invoice.TypeInvoice).Prefix)
	assert.Equal(t, "PRO", s.SchemeForType(invoice.TypeProforma).Prefix)

	// Unknown types fall back to the invoice scheme.
	assert.Equal(t, "INV", s.SchemeForType(invoice.Type("quote")).Prefix)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	s := Defaults(id.New())
	s.Invoice.Prefix = ""
	assert.Error(t, s.Validate(ctx))

	s = Defaults(id.New())
	s.Proforma.StartingNumber = 0
	assert.Error(t, s.Validate(ctx))

	s = Defaults(id.New())
	s.Tax.RoundingMethod = "banker"
	assert.Error(t, s.Validate(ctx))

	s = Defaults(id.New())
	s.Tax.DecimalPlaces = 9
	assert.Error(t, s.Validate(ctx))

	s = Defaults(id.Nil())
	assert.Error(t, s.Validate(ctx))
}
