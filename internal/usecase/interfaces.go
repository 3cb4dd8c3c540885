package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDsForUpdate acquires exclusive row locks on the given accounts
	// inside tx. Implementations must acquire locks in ascending id order
	// regardless of input order; this canonical ordering is what makes
	// concurrent multi-account operations deadlock-free.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	// UpdateStatus writes the single pending->terminal transition. It must be
	// called inside the same unit of work that appends the entries.
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// EntryRepository defines data access for ledger entries. The interface is
// append-only: there is no update or delete operation, and none may be added.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entries ...*domain.Entry) error
	// BalanceOf derives the account balance as sum(credit) - sum(debit) over
	// the entries visible in the given transactional snapshot. A nil tx reads
	// committed state only. Balances are never cached anywhere.
	BalanceOf(ctx context.Context, tx Transaction, accountID string) (decimal.Decimal, error)
	// ListByAccount returns the full entry history ordered by creation time
	// ascending.
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error)
	ListByAccountPage(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
}

// LedgerRepository defines ledger-wide audit queries.
type LedgerRepository interface {
	// UnbalancedTransactions returns ids of completed transactions whose
	// entries are not exactly one debit and one credit of equal amount.
	UnbalancedTransactions(ctx context.Context) ([]string, error)
	// OverdrawnAccounts returns ids of accounts whose derived balance is
	// negative.
	OverdrawnAccounts(ctx context.Context) ([]string, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction (the atomic unit of work).
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs a unit of work after transient store failures such as
// serialization errors. Business and input errors are never retried.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage at the API boundary.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
