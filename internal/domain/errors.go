package domain

import "errors"

// Input errors: malformed or out-of-domain arguments, detected before any
// lock is taken or row written.
var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrCurrencyMismatch   = errors.New("currency does not match account currency")
	ErrSameAccount        = errors.New("cannot transfer to same account")
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrAccountNotFound    = errors.New("account not found")
)

// Business-rule errors: detected under lock, the unit of work leaves a failed
// transaction with zero entries.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotActive  = errors.New("account is not active")
)

// State errors.
var (
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotPending = errors.New("transaction status already terminal")
	ErrInvalidAccountStatus  = errors.New("invalid account status")
)

// IsInputError reports whether err belongs to the input-error class of the
// taxonomy. Callers fail fast on these; retrying with the same arguments
// cannot succeed.
func IsInputError(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount,
		ErrInvalidCurrency,
		ErrCurrencyMismatch,
		ErrSameAccount,
		ErrInvalidAccountType,
		ErrAccountNotFound,
		ErrInvalidAccountStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsBusinessError reports whether err is a policy rejection rather than a
// malformed request or an infrastructure failure.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrAccountNotActive)
}
