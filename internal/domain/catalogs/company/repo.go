package company

import (
	"context"

	"gstbill/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	domain.CatalogRepository[*Company]

	// FindByGSTIN retrieves a company by GSTIN (unique per user).
	FindByGSTIN(ctx context.Context, gstin string) (*Company, error)
}
