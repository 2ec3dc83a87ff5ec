package ports

import (
	"context"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
)

// UserRepository defines the read contract for chat users. Users are
// reference data maintained out-of-band, so there are no write methods.
type UserRepository interface {
	// Get retrieves a user by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.User, error)

	// GetByChatID retrieves the user with the given chat-platform identity.
	GetByChatID(ctx context.Context, chatID string) (*account.User, error)

	// GetAllInRole retrieves all users holding the given role. Used to fan
	// out escalations and reports to operators and logists.
	GetAllInRole(ctx context.Context, role account.Role) ([]*account.User, error)
}
