// Package userrepo maps chat users between their domain representation and
// the users table. The table is reference data maintained out-of-band, so
// only read operations are implemented.
package userrepo

import (
	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for chat users.
type UserDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChatID      string     `gorm:"type:varchar(64);uniqueIndex"`
	DisplayName string     `gorm:"type:varchar(128)"`
	Role        string     `gorm:"type:varchar(16);index"`
	RegionID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

func toDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	var regionID *kernel.UUID
	if dto.RegionID != nil {
		rID, regionErr := kernel.UUIDFromBytes((*dto.RegionID)[:])
		if regionErr != nil {
			return nil, regionErr
		}
		regionID = &rID
	}

	return account.NewUser(id, dto.ChatID, dto.DisplayName, role, regionID)
}
