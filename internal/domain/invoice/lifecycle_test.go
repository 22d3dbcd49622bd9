package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/core/apperror"
	"gstbill/internal/core/id"
	"gstbill/internal/core/types"
)

func testInvoice(total string) *Invoice {
	inv := New(TypeInvoice, id.New(), id.New())
	inv.Status = StatusSent
	inv.Total = types.MustMoney(total)
	return inv
}

func TestRecordPayment_Accumulates(t *testing.T) {
	inv := testInvoice("1000")

	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("500")}))
	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("300")}))

	assert.True(t, inv.AmountPaid.Equal(types.MustMoney("800")), "amountPaid = %s", inv.AmountPaid)
	assert.Equal(t, StatusSent, inv.Status, "partial payment must not change status")
	assert.Len(t, inv.Payments, 2)

	// The payment that reaches the total promotes to paid.
	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("200")}))
	assert.True(t, inv.AmountPaid.Equal(types.MustMoney("1000")))
	assert.Equal(t, StatusPaid, inv.Status)
}

func TestRecordPayment_Overpayment(t *testing.T) {
	inv := testInvoice("1000")

	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("1200")}))

	assert.True(t, inv.AmountPaid.Equal(types.MustMoney("1200")))
	assert.Equal(t, StatusPaid, inv.Status)
}

func TestRecordPayment_RejectsNonPositive(t *testing.T) {
	inv := testInvoice("1000")

	err := inv.RecordPayment(Payment{Amount: types.Zero()})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	err = inv.RecordPayment(Payment{Amount: types.MustMoney("-50")})
	require.Error(t, err)

	assert.Empty(t, inv.Payments)
	assert.True(t, inv.AmountPaid.IsZero())
}

func TestRecordPayment_DefaultsDate(t *testing.T) {
	inv := testInvoice("100")

	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("10")}))
	assert.False(t, inv.Payments[0].Date.IsZero())

	given := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("10"), Date: given}))
	assert.Equal(t, given, inv.Payments[1].Date)
}

func TestRecordPayment_CancelledInvoiceFlipsToPaid(t *testing.T) {
	// Cancelled is not a terminal guard: a full payment promotes the
	// invoice to paid regardless.
	inv := testInvoice("100")
	inv.Status = StatusCancelled

	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("100")}))
	assert.Equal(t, StatusPaid, inv.Status)
}

func TestSetStatus_PaidSettlesBalance(t *testing.T) {
	inv := testInvoice("1000")
	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("400")}))
	require.Equal(t, StatusSent, inv.Status)

	require.NoError(t, inv.SetStatus(StatusPaid))

	assert.Equal(t, StatusPaid, inv.Status)
	assert.True(t, inv.AmountPaid.Equal(types.MustMoney("1000")), "amountPaid = %s", inv.AmountPaid)
	require.Len(t, inv.Payments, 2)

	auto := inv.Payments[1]
	assert.True(t, auto.Amount.Equal(types.MustMoney("600")), "auto amount = %s", auto.Amount)
	assert.Equal(t, "Auto", auto.Method)
	assert.Equal(t, "Marked as paid", auto.Note)
	assert.False(t, auto.Date.IsZero())
}

func TestSetStatus_PaidWithoutBalanceAddsNoPayment(t *testing.T) {
	inv := testInvoice("500")
	require.NoError(t, inv.RecordPayment(Payment{Amount: types.MustMoney("500")}))
	require.Len(t, inv.Payments, 1)

	require.NoError(t, inv.SetStatus(StatusPaid))
	assert.Len(t, inv.Payments, 1, "fully paid invoice needs no synthetic payment")
}

func TestSetStatus_FreeFormTransitions(t *testing.T) {
	inv := testInvoice("100")

	// No transition graph: every known status is reachable from every other.
	for _, from := range []Status{StatusDraft, StatusSent, StatusOverdue, StatusCancelled} {
		for _, to := range []Status{StatusDraft, StatusSent, StatusOverdue, StatusCancelled} {
			inv.Status = from
			require.NoError(t, inv.SetStatus(to))
			assert.Equal(t, to, inv.Status)
		}
	}
}

func TestSetStatus_RejectsUnknown(t *testing.T) {
	inv := testInvoice("100")

	err := inv.SetStatus(Status("archived"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidStatus, appErr.Code)
}

func TestApplyCalculation_NilMeansNoCalculation(t *testing.T) {
	inv := testInvoice("0")

	err := inv.ApplyCalculation(nil)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNoCalculation, appErr.Code)
}

func TestDerivedStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	inv := testInvoice("100")
	inv.DueDate = now.Add(24 * time.Hour)
	assert.Equal(t, StatusSent, inv.DerivedStatus(now))

	inv.DueDate = now.Add(-24 * time.Hour)
	assert.Equal(t, StatusOverdue, inv.DerivedStatus(now))

	// Paid wins over past-due.
	inv.Status = StatusPaid
	assert.Equal(t, StatusPaid, inv.DerivedStatus(now))

	// No due date set: stored status stands.
	inv.Status = StatusDraft
	inv.DueDate = time.Time{}
	assert.Equal(t, StatusDraft, inv.DerivedStatus(now))
}
