// Package regionrepo maps delivery regions between their domain
// representation and the regions table.
package regionrepo

import (
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/region"

	"github.com/google/uuid"
)

// RegionDTO represents the database structure for delivery regions.
type RegionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:varchar(128)"`
	ChatID          string    `gorm:"type:varchar(64)"`
	TodayTopicID    string    `gorm:"type:varchar(64)"`
	TomorrowTopicID string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for region entities.
func (RegionDTO) TableName() string {
	return "regions"
}

func toDomain(dto RegionDTO) (*region.Region, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return region.NewRegion(id, dto.Name, dto.ChatID, dto.TodayTopicID, dto.TomorrowTopicID)
}
