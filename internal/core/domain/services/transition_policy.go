package services

import (
	"fmt"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// TransitionPolicy decides whether an actor may perform a status transition
// on an order. It is the single authorization point of the engine: the
// transition graph itself is unrestricted, only the actor is gated.
//
// The rules form a small table keyed by role:
//
//	operator, logist, admin, system  -> any transition on any order
//	courier                          -> only orders they own, or the claim
//	                                    transition on a PUBLISHED_TODAY order
//
// Should graph restrictions ever be introduced, this policy is the place
// to add them.
type TransitionPolicy struct{}

// NewTransitionPolicy creates the authorization policy.
func NewTransitionPolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// unrestricted lists the roles allowed to perform any transition.
func unrestricted() map[account.Role]bool {
	return map[account.Role]bool{
		account.RoleOperator: true,
		account.RoleLogist:   true,
		account.RoleAdmin:    true,
		account.RoleSystem:   true,
	}
}

// Authorize returns nil when the actor may move the order to target, or a
// PermissionDenied error otherwise.
//
// Couriers acquire ownership through the claim: any transition on a
// PUBLISHED_TODAY order is permitted to them (the ASSIGNED transition is how
// the claim happens), after which only the owning courier may continue.
func (TransitionPolicy) Authorize(
	actorID kernel.UUID,
	actorRole account.Role,
	o *order.Order,
	target order.Status,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if unrestricted()[actorRole] {
		return nil
	}

	if actorRole == account.RoleCourier {
		if o.IsOwnedBy(actorID) || o.Status() == order.PublishedToday {
			return nil
		}
		return errs.NewPermissionDeniedErrorWithCause("courier",
			fmt.Errorf("order %s is not owned by courier %s and is not claimable", o.ID(), actorID))
	}

	return errs.NewPermissionDeniedErrorWithCause("actor",
		fmt.Errorf("role %s may not change order status", actorRole))
}
