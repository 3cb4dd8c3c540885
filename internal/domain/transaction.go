package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the kind of money movement.
type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus is the state of a transaction. A transaction starts
// pending and transitions exactly once to a terminal state.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Terminal reports whether the status is final.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// Transaction records one requested money movement. The source account is nil
// for deposits and the destination is nil for withdrawals (the counterparty is
// external to the ledger).
type Transaction struct {
	ID                   string
	Type                 TransactionType
	SourceAccountID      *string
	DestinationAccountID *string
	Amount               decimal.Decimal
	Currency             string
	Status               TransactionStatus
	Description          string
	CreatedAt            time.Time
}

// MarkCompleted transitions the transaction from pending to completed.
func (t *Transaction) MarkCompleted() error {
	return t.transition(TransactionStatusCompleted)
}

// MarkFailed transitions the transaction from pending to failed.
func (t *Transaction) MarkFailed() error {
	return t.transition(TransactionStatusFailed)
}

func (t *Transaction) transition(to TransactionStatus) error {
	if t.Status != TransactionStatusPending {
		return ErrTransactionNotPending
	}
	t.Status = to
	return nil
}
