package account

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// systemID is the fixed identifier recorded as the actor of automatic
// transitions. It is not a row in the users collection.
const systemID = "00000000-0000-0000-0000-000000000001"

// SystemActorID returns the well-known identifier used when the engine
// itself performs a transition (daily rollover).
func SystemActorID() kernel.UUID {
	id, err := kernel.UUIDFromString(systemID)
	if err != nil {
		panic(err) // constant, cannot fail
	}
	return id
}

// User is a reference-data entity describing a chat participant: operators,
// logists, admins and couriers. Users are created out-of-band and are
// read-only from the workflow engine's perspective.
type User struct {
	id          kernel.UUID
	chatID      string
	displayName string
	role        Role
	regionID    *kernel.UUID

	isConstructed bool
}

// NewUser creates a User. The chat identity is required because every user
// is addressed through the chat platform; regionID is optional and only
// meaningful for couriers and region-scoped operators.
func NewUser(
	id kernel.UUID,
	chatID string,
	displayName string,
	role Role,
	regionID *kernel.UUID,
) (*User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}
	if regionID != nil {
		if err := regionID.Validate(); err != nil {
			return nil, err
		}
	}

	return &User{
		id:            id,
		chatID:        chatID,
		displayName:   displayName,
		role:          role,
		regionID:      regionID,
		isConstructed: true,
	}, nil
}

// Validate ensures the User was created via NewUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID {
	return u.id
}

// ChatID returns the user's chat-platform identity.
func (u *User) ChatID() string {
	return u.chatID
}

// DisplayName returns the user's display name.
func (u *User) DisplayName() string {
	return u.displayName
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// RegionID returns the user's home region, or nil if not region-scoped.
func (u *User) RegionID() *kernel.UUID {
	return u.regionID
}
