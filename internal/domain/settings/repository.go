package settings

import (
	"context"

	"gstbill/internal/core/id"
)

// Repository defines the interface for Settings persistence.
// One row per user.
type Repository interface {
	// GetByUser retrieves a user's settings
	GetByUser(ctx context.Context, userID id.ID) (*Settings, error)

	// Save inserts or updates a user's settings
	Save(ctx context.Context, s *Settings) error

	// Delete removes a user's settings row (reset to defaults)
	Delete(ctx context.Context, userID id.ID) error
}
