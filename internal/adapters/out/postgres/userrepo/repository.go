package userrepo

import (
	"context"
	"errors"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*account.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByChatID retrieves the user with the given chat-platform identity.
func (r *GormUserRepository) GetByChatID(ctx context.Context, chatID string) (*account.User, error) {
	if chatID == "" {
		return nil, errs.NewValueIsRequiredError("chat id")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "chat_id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", chatID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInRole retrieves all users holding the given role.
func (r *GormUserRepository) GetAllInRole(
	ctx context.Context,
	role account.Role,
) ([]*account.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "role = ?", role.String()).Error; err != nil {
		return nil, err
	}

	users := make([]*account.User, 0, len(dtos))
	for _, dto := range dtos {
		user, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
