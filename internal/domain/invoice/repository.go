package invoice

import (
	"context"

	"gstbill/internal/core/id"
	"gstbill/internal/domain"
)

// Repository defines the interface for Invoice persistence.
type Repository interface {
	// Create inserts a new invoice with its line items and payments
	Create(ctx context.Context, inv *Invoice) error

	// GetByID retrieves an invoice by ID
	GetByID(ctx context.Context, id id.ID) (*Invoice, error)

	// Update overwrites an invoice (optimistic locking via version)
	Update(ctx context.Context, inv *Invoice) error

	// SetDeletionMark sets or clears the soft-delete mark
	SetDeletionMark(ctx context.Context, id id.ID, marked bool) error

	// List retrieves invoices with filtering and pagination
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error)

	// CountInYear counts a user's documents of one type dated within
	// the given calendar year. Soft-deleted invoices are excluded,
	// which is what makes the derived numbering reusable after a
	// delete.
	CountInYear(ctx context.Context, userID id.ID, docType Type, year int) (int, error)
}
