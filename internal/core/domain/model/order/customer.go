package order

import (
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created
// via the NewCustomer constructor.
var ErrCustomerIsNotConstructed = errs.NewValueIsRequiredError(
	"customer must be created via NewCustomer constructor")

// Customer holds the delivery recipient's contact details. The phone number
// is free text in roughly E.164 form and is the duplicate-detection key
// together with the delivery date; comparison is exact string equality, no
// normalization.
type Customer struct { //nolint:recvcheck //using for validation
	name     string
	phone    string
	address  string
	landmark string

	guard guard.ConstructorGuard
}

// NewCustomer creates a Customer. The phone is required; name, address and
// landmark are free text and may be empty.
func NewCustomer(name string, phone string, address string, landmark string) (Customer, error) {
	if phone == "" {
		return Customer{}, errs.NewValueIsRequiredError("customer phone")
	}

	return Customer{
		name:     name,
		phone:    phone,
		address:  address,
		landmark: landmark,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer's phone number as entered.
func (c Customer) Phone() string {
	return c.phone
}

// Address returns the delivery address.
func (c Customer) Address() string {
	return c.address
}

// Landmark returns optional navigation hints near the address.
func (c Customer) Landmark() string {
	return c.landmark
}

// Validate checks that the Customer was created through the constructor.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ErrItemNameIsRequired is returned when an order line has no product name.
var ErrItemNameIsRequired = errors.New("item name is required")

// Item is one order line: a product name and a positive quantity.
type Item struct {
	name     string
	quantity int
}

// NewItem creates an order line. The name must be non-empty and the quantity
// positive.
func NewItem(name string, quantity int) (Item, error) {
	if name == "" {
		return Item{}, ErrItemNameIsRequired
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return Item{name: name, quantity: quantity}, nil
}

// Name returns the product name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}
