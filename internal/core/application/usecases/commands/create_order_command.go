package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrTotalAmountIsNegative = errors.New("total amount must not be negative")
)

// CreateOrderCommand represents an operator's request to register a new order.
// The delivery date decides the initial queue: today's date publishes the order
// immediately, any later date parks it in the tomorrow queue.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customer       order.Customer
	items          []order.Item
	totalAmount    int64
	paymentType    order.PaymentType
	deliveryDate   kernel.Date
	timeWindowFrom string
	timeWindowTo   string
	regionID       kernel.UUID
	operatorID     kernel.UUID
	comment        string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, the customer contact, the payment type and the
// delivery date; the time window and comment are free text.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer order.Customer,
	items []order.Item,
	totalAmount int64,
	paymentType order.PaymentType,
	deliveryDate kernel.Date,
	timeWindowFrom string,
	timeWindowTo string,
	regionID kernel.UUID,
	operatorID kernel.UUID,
	comment string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		items:          items,
		timeWindowFrom: timeWindowFrom,
		timeWindowTo:   timeWindowTo,
		comment:        comment,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCustomer(customer),
		command.setTotalAmount(totalAmount),
		command.setPaymentType(paymentType),
		command.setDeliveryDate(deliveryDate),
		command.setRegionID(regionID),
		command.setOperatorID(operatorID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the delivery recipient's contact details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// TotalAmount returns the order total in minor currency units.
func (c CreateOrderCommand) TotalAmount() int64 {
	return c.totalAmount
}

// PaymentType returns how the customer intends to pay.
func (c CreateOrderCommand) PaymentType() order.PaymentType {
	return c.paymentType
}

// DeliveryDate returns the requested delivery date.
func (c CreateOrderCommand) DeliveryDate() kernel.Date {
	return c.deliveryDate
}

// TimeWindowFrom returns the start of the requested delivery window.
func (c CreateOrderCommand) TimeWindowFrom() string {
	return c.timeWindowFrom
}

// TimeWindowTo returns the end of the requested delivery window.
func (c CreateOrderCommand) TimeWindowTo() string {
	return c.timeWindowTo
}

// RegionID returns the delivery region.
func (c CreateOrderCommand) RegionID() kernel.UUID {
	return c.regionID
}

// OperatorID returns the operator registering the order.
func (c CreateOrderCommand) OperatorID() kernel.UUID {
	return c.operatorID
}

// Comment returns the free-text note attached at creation.
func (c CreateOrderCommand) Comment() string {
	return c.comment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(totalAmount int64) error {
	if totalAmount < 0 {
		return ErrTotalAmountIsNegative
	}

	c.totalAmount = totalAmount
	return nil
}

func (c *CreateOrderCommand) setPaymentType(paymentType order.PaymentType) error {
	if err := paymentType.Validate(); err != nil {
		return err
	}

	c.paymentType = paymentType
	return nil
}

func (c *CreateOrderCommand) setDeliveryDate(deliveryDate kernel.Date) error {
	if err := deliveryDate.Validate(); err != nil {
		return err
	}

	c.deliveryDate = deliveryDate
	return nil
}

func (c *CreateOrderCommand) setRegionID(regionID kernel.UUID) error {
	if err := regionID.Validate(); err != nil {
		return err
	}

	c.regionID = regionID
	return nil
}

func (c *CreateOrderCommand) setOperatorID(operatorID kernel.UUID) error {
	if err := operatorID.Validate(); err != nil {
		return err
	}

	c.operatorID = operatorID
	return nil
}
