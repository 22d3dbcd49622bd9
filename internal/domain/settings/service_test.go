package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/id"
	"gstbill/internal/core/types"
	"gstbill/internal/domain/billing"
)

type stubRepo struct {
	stored *Settings
}

func (r *stubRepo) GetByUser(ctx context.Context, userID id.ID) (*Settings, error) {
	if r.stored == nil {
		return nil, apperror.NewNotFound("settings", userID.String())
	}
	return r.stored, nil
}

func (r *stubRepo) Save(ctx context.Context, s *Settings) error {
	r.stored = s
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, userID id.ID) error {
	r.stored = nil
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestPreviewTax_DefaultSettings(t *testing.T) {
	svc := NewService(&stubRepo{}, passthroughTx{})

	// No stored row: defaults apply (18%, state codes on, nearest 2dp).
	got, err := svc.PreviewTax(context.Background(), id.New(), TaxPreviewInput{
		Amount:        types.MustMoney("999.99"),
		PlaceOfSupply: "Karnataka",
		CompanyState:  "Karnataka",
	})
	require.NoError(t, err)

	// 999.99 x 18% = 179.9982, halves round to 90.00 each.
	assert.True(t, got.CGST.Equal(types.MustMoney("90")), "cgst = %s", got.CGST)
	assert.True(t, got.SGST.Equal(types.MustMoney("90")), "sgst = %s", got.SGST)
	assert.True(t, got.IGST.IsZero())
	assert.True(t, got.TotalTax.Equal(types.MustMoney("180")))
}

func TestPreviewTax_RateOverrideInterState(t *testing.T) {
	svc := NewService(&stubRepo{}, passthroughTx{})

	rate := types.MustMoney("12")
	got, err := svc.PreviewTax(context.Background(), id.New(), TaxPreviewInput{
		Amount:        types.MustMoney("1000"),
		TaxRate:       &rate,
		PlaceOfSupply: "Karnataka",
		CompanyState:  "Maharashtra",
	})
	require.NoError(t, err)

	assert.True(t, got.CGST.IsZero())
	assert.True(t, got.SGST.IsZero())
	assert.True(t, got.IGST.Equal(types.MustMoney("120")), "igst = %s", got.IGST)
}

func TestPreviewTax_StoredRounding(t *testing.T) {
	userID := id.New()
	stored := Defaults(userID)
	stored.Tax.RoundingMethod = billing.RoundingDown
	stored.Tax.DecimalPlaces = 0

	svc := NewService(&stubRepo{stored: stored}, passthroughTx{})

	got, err := svc.PreviewTax(context.Background(), userID, TaxPreviewInput{
		Amount:        types.MustMoney("999.99"),
		PlaceOfSupply: "Karnataka",
		CompanyState:  "Karnataka",
	})
	require.NoError(t, err)

	// Halves of 179.9982 floor to 89 each.
	assert.True(t, got.CGST.Equal(types.MustMoney("89")), "cgst = %s", got.CGST)
	assert.True(t, got.SGST.Equal(types.MustMoney("89")))
	assert.True(t, got.TotalTax.Equal(types.MustMoney("178")))
}
