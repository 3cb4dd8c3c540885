package domain

import "time"

// AccountType classifies an account.
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// Valid reports whether the account type is known.
func (t AccountType) Valid() bool {
	return t == AccountTypeChecking || t == AccountTypeSavings
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Valid reports whether the status is known.
func (s AccountStatus) Valid() bool {
	return s == AccountStatusActive || s == AccountStatusFrozen || s == AccountStatusClosed
}

// Account represents a ledger account. It deliberately carries no balance
// field: the balance is always derived by folding over the account's entries.
type Account struct {
	ID        string
	UserID    string
	Type      AccountType
	Currency  string
	Status    AccountStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanOperate checks that the account accepts new ledger operations.
func (a *Account) CanOperate() error {
	if a.Status != AccountStatusActive {
		return ErrAccountNotActive
	}
	return nil
}
