package account

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Role determines which operations a user may perform on orders.
// Couriers are restricted by the ownership/claim rule; every other role is
// unrestricted. RoleSystem is reserved for automatic transitions (daily
// rollover) and is never assigned to a chat user.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleOperator creates orders and works the action queue.
	RoleOperator

	// RoleLogist receives reports and oversees regions.
	RoleLogist

	// RoleAdmin has full access.
	RoleAdmin

	// RoleCourier delivers orders. Couriers may only act on orders they own
	// or claim from the today queue.
	RoleCourier

	// RoleSystem marks automatic engine actions.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleOperator: "operator",
		RoleLogist:   "logist",
		RoleAdmin:    "admin",
		RoleCourier:  "courier",
		RoleSystem:   "system",
	}
}

// RoleFromString parses a wire name ("operator", "courier", ...) into a Role.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the Role is one of the known roles.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, or "unknown".
func (r Role) String() string {
	if name, ok := getRoleStrings()[r]; ok {
		return name
	}
	return "unknown"
}
