package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

var ErrPublishQueuedOrdersCommandIsNotConstructed = errors.New(
	"PublishQueuedOrdersCommand must be created via NewPublishQueuedOrdersCommand constructor",
)

// PublishQueuedOrdersCommand triggers the daily rollover: every order parked
// in the tomorrow queue whose delivery date has arrived is published to the
// today queue. This is a parameterless batch operation run by the scheduler
// each morning.
type PublishQueuedOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewPublishQueuedOrdersCommand creates a command to run the daily rollover.
func NewPublishQueuedOrdersCommand() PublishQueuedOrdersCommand {
	return PublishQueuedOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *PublishQueuedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPublishQueuedOrdersCommandIsNotConstructed)
}
