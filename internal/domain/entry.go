package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType marks which side of the books an entry sits on.
type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

// Entry is a single immutable ledger entry. Entries are append-only: once
// persisted they are never updated or deleted, and the repository contract
// exposes no operation that could do either.
type Entry struct {
	ID            string
	AccountID     string
	TransactionID string
	Type          EntryType
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// Signed returns the entry amount with credits positive and debits negative,
// the orientation used when folding a balance.
func (e *Entry) Signed() decimal.Decimal {
	if e.Type == EntryTypeDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// BalanceOf folds a set of entries into a balance: sum(credit) - sum(debit).
func BalanceOf(entries []*Entry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.Signed())
	}
	return balance
}
