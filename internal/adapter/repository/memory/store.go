// Package memory provides an in-process store backend with the same
// transactional contract as the PostgreSQL one: writes stage inside a unit
// of work, account locks are acquired in ascending id order, and nothing
// becomes visible before Commit. It backs the CLI's standalone mode and the
// concurrency tests.
package memory

import (
	"context"
	"sync"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// Store holds the in-process ledger state. The repository interfaces are
// served by the views returned from Accounts, Transactions, Entries, Outbox
// and Ledger; Store itself is the transaction manager.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
	entries      []*domain.Entry
	outbox       []*domain.OutboxEvent

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
		locks:        make(map[string]*sync.Mutex),
	}
}

// Accounts returns the usecase.AccountRepository view.
func (s *Store) Accounts() *AccountStore {
	return &AccountStore{s: s}
}

// Transactions returns the usecase.TransactionRepository view.
func (s *Store) Transactions() *TransactionStore {
	return &TransactionStore{s: s}
}

// Entries returns the usecase.EntryRepository view.
func (s *Store) Entries() *EntryStore {
	return &EntryStore{s: s}
}

// Outbox returns the usecase.OutboxRepository view.
func (s *Store) Outbox() *OutboxStore {
	return &OutboxStore{s: s}
}

// Ledger returns the usecase.LedgerRepository view.
func (s *Store) Ledger() *LedgerStore {
	return &LedgerStore{s: s}
}

func (s *Store) lockFor(accountID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	l, ok := s.locks[accountID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountID] = l
	}

	return l
}

// Begin starts a unit of work.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &memTx{
		store:        s,
		stagedStatus: make(map[string]domain.TransactionStatus),
	}, nil
}

// memTx stages writes until Commit. It also owns the account locks taken by
// GetByIDsForUpdate; Commit and Rollback both release them.
type memTx struct {
	store *Store

	held          []string
	stagedTxns    []*domain.Transaction
	stagedStatus  map[string]domain.TransactionStatus
	stagedEntries []*domain.Entry
	stagedEvents  []*domain.OutboxEvent
	done          bool
}

// Commit applies the staged writes and releases the account locks.
func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	s := t.store
	s.mu.Lock()
	for _, txn := range t.stagedTxns {
		s.transactions[txn.ID] = txn
	}
	for id, status := range t.stagedStatus {
		if txn, ok := s.transactions[id]; ok {
			txn.Status = status
		}
	}
	s.entries = append(s.entries, t.stagedEntries...)
	s.outbox = append(s.outbox, t.stagedEvents...)
	s.mu.Unlock()

	t.releaseLocks()

	return nil
}

// Rollback discards the staged writes and releases the account locks.
func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true

	t.releaseLocks()

	return nil
}

func (t *memTx) releaseLocks() {
	// Release in reverse acquisition order.
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.lockFor(t.held[i]).Unlock()
	}
	t.held = nil
}

func asMemTx(tx usecase.Transaction) *memTx {
	if tx == nil {
		return nil
	}

	return tx.(*memTx)
}
