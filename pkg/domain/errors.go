package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrInactiveAccount is returned when an operation targets an account or client that is not ACTIVE
	ErrInactiveAccount = errors.New("the bank account is not active")
	// ErrInvalidTransaction is returned for non-positive amounts, self transfers and forbidden corrections
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrInsufficientFunds is returned when an amount exceeds the balance or the withdrawal limit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDniAlreadyExists is returned when a DNI is already registered
	ErrDniAlreadyExists = errors.New("dni already exists")
	// ErrEmailDuplicate is returned when an email is already registered
	ErrEmailDuplicate = errors.New("email already registered")

	// ErrInvalidStatus is returned when a status or type token cannot be parsed
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidDateRange is returned when a date filter starts after it ends
	ErrInvalidDateRange = errors.New("invalid date range")
	// ErrInvalidAmount is returned when an amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")
)

var sentinels = []error{
	ErrNotFound,
	ErrAlreadyExists,
	ErrInactiveAccount,
	ErrInvalidTransaction,
	ErrInsufficientFunds,
	ErrDniAlreadyExists,
	ErrEmailDuplicate,
	ErrInvalidStatus,
	ErrInvalidDateRange,
	ErrInvalidAmount,
}

// IsDomainError reports whether err wraps one of the sentinels above.
func IsDomainError(err error) bool {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
