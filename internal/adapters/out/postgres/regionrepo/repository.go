package regionrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/region"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRegionRepository implements ports.RegionRepository using GORM.
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GORM region repository.
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// Get retrieves a region by ID.
func (r *GormRegionRepository) Get(ctx context.Context, id kernel.UUID) (*region.Region, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RegionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("region", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every configured region sorted by name.
func (r *GormRegionRepository) GetAll(ctx context.Context) ([]*region.Region, error) {
	var dtos []RegionDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	regions := make([]*region.Region, 0, len(dtos))
	for _, dto := range dtos {
		restored, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		regions = append(regions, restored)
	}

	return regions, nil
}
