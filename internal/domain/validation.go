package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// MaxAmount caps any single monetary value the system accepts.
const MaxAmount = "1000000000000"

// ValidateAmount validates a monetary input value.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	max, err := decimal.NewFromString(MaxAmount)
	if err != nil {
		return err
	}

	if amount.GreaterThan(max) {
		return fmt.Errorf("%w: maximum is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// ValidateQuantity validates a line item quantity.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	return nil
}
