package product

import (
	"context"

	"gstbill/internal/core/id"
	"gstbill/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByIDs retrieves several products at once (line item resolution).
	FindByIDs(ctx context.Context, ids []id.ID) ([]*Product, error)
}
