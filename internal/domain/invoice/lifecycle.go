package invoice

import (
	"time"

	"gstbill/internal/core/apperror"
)

// RecordPayment appends a payment and accumulates AmountPaid. When the
// accumulated amount reaches the total, the invoice is promoted to
// paid automatically. A cancelled invoice is not special-cased: a
// payment against it flips it to paid like any other.
//
// The caller persists the mutated invoice.
func (inv *Invoice) RecordPayment(p Payment) error {
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount")
	}

	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	inv.Payments = append(inv.Payments, p)
	inv.AmountPaid = inv.AmountPaid.Add(p.Amount)

	if inv.AmountPaid.GreaterThanOrEqual(inv.Total) {
		inv.Status = StatusPaid
	}

	return nil
}

// SetStatus moves the invoice to the given status. Any status may move
// to any other. Setting "paid" settles the invoice: if a balance
// remains, a synthetic payment for the remainder is appended and
// AmountPaid is set to the total, so paid always implies fully paid at
// the moment of transition.
func (inv *Invoice) SetStatus(newStatus Status) error {
	if !ValidStatus(newStatus) {
		return apperror.NewBusinessRule(apperror.CodeInvalidStatus, "unknown invoice status").
			WithDetail("status", string(newStatus))
	}

	if newStatus == StatusPaid {
		balance := inv.BalanceDue()
		if balance.IsPositive() {
			inv.Payments = append(inv.Payments, Payment{
				Amount: balance,
				Date:   time.Now().UTC(),
				Method: "Auto",
				Note:   "Marked as paid",
			})
			inv.AmountPaid = inv.Total
		}
	}

	inv.Status = newStatus
	return nil
}

// DerivedStatus returns the status to display at a point in time: paid
// stays paid, anything else past its due date reads as overdue. The
// stored status is not changed.
func (inv *Invoice) DerivedStatus(now time.Time) Status {
	if inv.Status == StatusPaid {
		return StatusPaid
	}
	if !inv.DueDate.IsZero() && now.After(inv.DueDate) {
		return StatusOverdue
	}
	return inv.Status
}
