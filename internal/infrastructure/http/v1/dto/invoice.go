package dto

import (
	"encoding/json"
	"time"

	"gstbill/internal/core/types"
	"gstbill/internal/domain/invoice"
)

// RecordPaymentRequest for POST /invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount types.Money `json:"amount" binding:"required"`
	Date   *time.Time  `json:"date"`
	Method string      `json:"method"`
	Note   string      `json:"note"`
}

// ToPayment converts the request into a domain payment. A missing date
// defaults to now.
func (r RecordPaymentRequest) ToPayment() invoice.Payment {
	date := time.Now().UTC()
	if r.Date != nil {
		date = *r.Date
	}
	return invoice.Payment{
		Amount: r.Amount,
		Date:   date,
		Method: r.Method,
		Note:   r.Note,
	}
}

// SetStatusRequest for POST /invoices/:id/status.
type SetStatusRequest struct {
	Status invoice.Status `json:"status" binding:"required"`
}

// NextNumberResponse for GET /invoices/next-number.
type NextNumberResponse struct {
	Number string `json:"number"`
}

// AuditEntryResponse is one change-history record of an invoice.
type AuditEntryResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	UserEmail string          `json:"userEmail,omitempty"`
	Changes   json.RawMessage `json:"changes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
