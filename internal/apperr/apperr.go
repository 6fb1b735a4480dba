// Package apperr defines the domain error taxonomy shared by storage,
// services, and handlers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidStatus     = errors.New("invalid response status")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// SettlementError wraps a storage failure that aborted a settlement. The
// settlement is all-or-nothing, so a SettlementError means no mutation was
// applied.
type SettlementError struct {
	Step  string
	Cause error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed during '%s': %v", e.Step, e.Cause)
}

func (e *SettlementError) Unwrap() error {
	return e.Cause
}

func NewSettlementError(step string, cause error) error {
	return &SettlementError{Step: step, Cause: cause}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrRequestNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken)
}

func IsInsufficientFunds(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrInvalidStatus)
}
