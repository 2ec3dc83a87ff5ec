package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// PaymentType is the method the customer pays with.
type PaymentType int

const (
	PaymentUnknown PaymentType = iota
	PaymentCash
	PaymentCard
	PaymentTransfer
)

func getPaymentTypeStrings() map[PaymentType]string {
	return map[PaymentType]string{
		PaymentCash:     "CASH",
		PaymentCard:     "CARD",
		PaymentTransfer: "TRANSFER",
	}
}

// PaymentTypeFromString parses a wire name into a PaymentType.
// The empty string defaults to CASH, matching the intake behavior.
func PaymentTypeFromString(s string) (PaymentType, error) {
	if s == "" {
		return PaymentCash, nil
	}
	for pt, name := range getPaymentTypeStrings() {
		if name == s {
			return pt, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentType",
		fmt.Errorf("%q is not a valid payment type", s))
}

// Validate checks that the PaymentType is one of the known methods.
func (p PaymentType) Validate() error {
	if _, ok := getPaymentTypeStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentType",
			fmt.Errorf("%d is not a valid payment type", p))
	}
	return nil
}

// String returns the wire name of the payment type.
func (p PaymentType) String() string {
	if name, ok := getPaymentTypeStrings()[p]; ok {
		return name
	}
	return "UNKNOWN"
}
