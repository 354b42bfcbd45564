package bank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/client"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("bank: not found")
	ErrAlreadyExists = errors.New("bank: already exists")
	ErrInvalidInput  = errors.New("bank: invalid input")

	// Registry errors
	ErrDuplicateClient = errors.New("bank: client already registered")
	ErrClientNotFound  = errors.New("bank: client not found")
	ErrAccountNotFound = errors.New("bank: account not found")

	// Account rule errors, defined next to the rules that raise them.
	ErrInvalidAmount           = account.ErrInvalidAmount
	ErrInsufficientFunds       = account.ErrInsufficientFunds
	ErrOverdraftLimitExceeded  = account.ErrOverdraftLimitExceeded
	ErrWithdrawalLimitExceeded = account.ErrWithdrawalLimitExceeded
	ErrUnknownAccountKind      = account.ErrUnknownKind
	ErrAmountOverflow          = types.ErrAmountOverflow

	// Transaction errors
	ErrUnknownTransactionKind = transaction.ErrUnknownKind
	ErrForeignAccount         = client.ErrForeignAccount

	// Store errors
	ErrStoreNotReady = errors.New("bank: store not ready")
	ErrStoreClosed   = errors.New("bank: store is closed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("bank: validation failed for %s: %s", e.Field, e.Message)
}

// Is lets errors.Is match a ValidationError against ErrInvalidInput.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "bank: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("bank: %d errors occurred: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e MultiError) Unwrap() []error { return e.Errors }

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNotFound returns true if the error is a lookup failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsRuleViolation returns true if an account rejected a transaction.
// Rule violations are deterministic; retrying them is pointless.
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrOverdraftLimitExceeded) ||
		errors.Is(err, ErrWithdrawalLimitExceeded) ||
		errors.Is(err, ErrAmountOverflow)
}
