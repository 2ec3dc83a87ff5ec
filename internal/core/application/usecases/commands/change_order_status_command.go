package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a user's request to move an order to a
// new status, optionally with a machine-readable reason and a free-text note.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	actorID      kernel.UUID
	targetStatus order.Status
	reasonCode   order.ReasonCode
	note         string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition an order.
// The reason code may be ReasonNone; the note may be empty, in which case a
// default history note is recorded.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	targetStatus order.Status,
	reasonCode order.ReasonCode,
	note string,
) (ChangeOrderStatusCommand, error) {
	command := ChangeOrderStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActorID(actorID),
		command.setTargetStatus(targetStatus),
		command.setReasonCode(reasonCode),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user performing the transition.
func (c ChangeOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// TargetStatus returns the requested status.
func (c ChangeOrderStatusCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// ReasonCode returns the machine-readable reason, or ReasonNone.
func (c ChangeOrderStatusCommand) ReasonCode() order.ReasonCode {
	return c.reasonCode
}

// Note returns the free-text note, or "" to use the default history note.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *ChangeOrderStatusCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}

func (c *ChangeOrderStatusCommand) setReasonCode(reasonCode order.ReasonCode) error {
	if err := reasonCode.Validate(); err != nil {
		return err
	}

	c.reasonCode = reasonCode
	return nil
}
