package bills

import (
	"errors"
	"fmt"

	"github.com/violet-vault/backend/internal/money"
)

var (
	ErrBillNotFound           = errors.New("bill not found")
	ErrEnvelopeNotFound       = errors.New("envelope not found")
	ErrEmptyEnvelopeReference = errors.New("bill payment requires an envelope")
	ErrNonPositiveAmount      = errors.New("payment amount must be greater than zero")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrDescriptionRequired    = errors.New("bill description is required")
)

// InsufficientFundsError is returned when the funding source of a payment
// holds less than the payment amount.
type InsufficientFundsError struct {
	Source    string
	Available float64
	Required  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s in %s: available %s, required %s",
		ErrInsufficientFunds,
		e.Source,
		money.Format(e.Available),
		money.Format(e.Required),
	)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}
