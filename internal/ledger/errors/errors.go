package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// ErrInvalidAmount covers amounts that cannot be parsed as money at all.
var ErrInvalidAmount = NewValidationError("invalid amount")

// Reference errors: the entity does not exist or is not owned by the caller.
var (
	ErrInvalidAccount  = errors.New("invalid account")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNotFound        = errors.New("not found")
)

// Conflict errors: the operation is well-formed but the ledger state
// forbids it. The prior state is left untouched.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("source and destination accounts cannot be the same")
	ErrOverSettlement    = errors.New("settle amount exceeds the remaining lending balance")
	ErrAlreadySettled    = errors.New("lending is already settled")
)
