package ports

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/region"
)

// RegionRepository defines the read contract for delivery regions.
type RegionRepository interface {
	// Get retrieves a region by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*region.Region, error)

	// GetAll retrieves every configured region.
	GetAll(ctx context.Context) ([]*region.Region, error)
}
