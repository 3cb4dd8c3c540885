package memory

import (
	"context"
	"sort"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// TransactionStore implements usecase.TransactionRepository.
type TransactionStore struct {
	s *Store
}

// Create stages a transaction row in the unit of work.
func (r *TransactionStore) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	t := asMemTx(tx)

	cp := *txn
	t.stagedTxns = append(t.stagedTxns, &cp)

	return nil
}

// UpdateStatus stages the pending to terminal transition.
func (r *TransactionStore) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus) error {
	t := asMemTx(tx)

	for _, staged := range t.stagedTxns {
		if staged.ID == id {
			if staged.Status != domain.TransactionStatusPending {
				return domain.ErrTransactionNotPending
			}
			staged.Status = status
			t.stagedStatus[id] = status
			return nil
		}
	}

	r.s.mu.RLock()
	stored, ok := r.s.transactions[id]
	r.s.mu.RUnlock()

	if !ok {
		return domain.ErrTransactionNotFound
	}
	if stored.Status != domain.TransactionStatusPending {
		return domain.ErrTransactionNotPending
	}

	t.stagedStatus[id] = status

	return nil
}

// GetByID retrieves a committed transaction by ID.
func (r *TransactionStore) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	txn, ok := r.s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	cp := *txn

	return &cp, nil
}

// ListByAccount lists committed transactions touching an account, newest
// first.
func (r *TransactionStore) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*domain.Transaction
	for _, txn := range r.s.transactions {
		if touches(txn, accountID) {
			cp := *txn
			matched = append(matched, &cp)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return nil, nil
	}

	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], nil
}

func touches(txn *domain.Transaction, accountID string) bool {
	if txn.SourceAccountID != nil && *txn.SourceAccountID == accountID {
		return true
	}
	if txn.DestinationAccountID != nil && *txn.DestinationAccountID == accountID {
		return true
	}

	return false
}
