package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

var ErrEscalateOverdueOrdersCommandIsNotConstructed = errors.New(
	"EscalateOverdueOrdersCommand must be created via NewEscalateOverdueOrdersCommand constructor",
)

// EscalateOverdueOrdersCommand triggers one SLA sweep: orders that have sat
// too long in an alertable status are raised to the people who can unblock
// them. This is a parameterless batch operation run by the scheduler.
type EscalateOverdueOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewEscalateOverdueOrdersCommand creates a command to run an SLA sweep.
func NewEscalateOverdueOrdersCommand() EscalateOverdueOrdersCommand {
	return EscalateOverdueOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *EscalateOverdueOrdersCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOverdueOrdersCommandIsNotConstructed)
}
