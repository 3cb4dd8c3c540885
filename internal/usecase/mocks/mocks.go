package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateStatusFunc      func(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Status = status
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	UpdateStatusFunc func(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *txn
	m.transactions[txn.ID] = &stored
	return nil
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	txn.Status = status
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Transaction
	for _, txn := range m.transactions {
		if (txn.SourceAccountID != nil && *txn.SourceAccountID == accountID) ||
			(txn.DestinationAccountID != nil && *txn.DestinationAccountID == accountID) {
			result = append(result, txn)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// MockEntryRepository is a mock implementation of EntryRepository. Entries are
// held in an append-only slice; the default BalanceOf folds over it.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc    func(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error
	BalanceOfFunc func(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entries...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockEntryRepository) BalanceOf(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.BalanceOf(m.forAccount(accountID)), nil
}

func (m *MockEntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forAccount(accountID), nil
}

func (m *MockEntryRepository) ListByAccountPage(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	all, _ := m.ListByAccount(ctx, accountID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *MockEntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Entry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ForAccount returns the recorded entries for an account, oldest first.
func (m *MockEntryRepository) ForAccount(accountID string) []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forAccount(accountID)
}

func (m *MockEntryRepository) forAccount(accountID string) []*domain.Entry {
	var result []*domain.Entry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}
	return result
}

// All returns every recorded entry.
func (m *MockEntryRepository) All() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Entry(nil), m.entries...)
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	UnbalancedTransactionsFunc func(ctx context.Context) ([]string, error)
	OverdrawnAccountsFunc      func(ctx context.Context) ([]string, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) UnbalancedTransactions(ctx context.Context) ([]string, error) {
	if m.UnbalancedTransactionsFunc != nil {
		return m.UnbalancedTransactionsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLedgerRepository) OverdrawnAccounts(ctx context.Context) ([]string, error) {
	if m.OverdrawnAccountsFunc != nil {
		return m.OverdrawnAccountsFunc(ctx)
	}
	return nil, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			result = append(result, e)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return fmt.Errorf("outbox event %s not found", id)
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns every recorded outbox event.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	mu      sync.Mutex
	started []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.started = append(m.started, tx)
	return tx, nil
}

// Started returns every transaction handed out so far.
func (m *MockTransactionManager) Started() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTransaction(nil), m.started...)
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// MockRetrier is a pass-through Retrier.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}
