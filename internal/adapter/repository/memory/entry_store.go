package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// EntryStore implements usecase.EntryRepository.
type EntryStore struct {
	s *Store
}

// Create stages entries in the unit of work.
func (r *EntryStore) Create(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error {
	t := asMemTx(tx)

	for _, entry := range entries {
		cp := *entry
		t.stagedEntries = append(t.stagedEntries, &cp)
	}

	return nil
}

// BalanceOf folds sum(credit) - sum(debit) over the account's committed
// entries plus anything staged in the given unit of work. Callers holding
// the account lock therefore see every earlier writer's entries.
func (r *EntryStore) BalanceOf(ctx context.Context, tx usecase.Transaction, accountID string) (decimal.Decimal, error) {
	balance := decimal.Zero

	r.s.mu.RLock()
	for _, entry := range r.s.entries {
		if entry.AccountID == accountID {
			balance = balance.Add(entry.Signed())
		}
	}
	r.s.mu.RUnlock()

	if t := asMemTx(tx); t != nil {
		for _, entry := range t.stagedEntries {
			if entry.AccountID == accountID {
				balance = balance.Add(entry.Signed())
			}
		}
	}

	return balance, nil
}

// ListByAccount returns the account's committed entry history, oldest first.
func (r *EntryStore) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []*domain.Entry
	for _, entry := range r.s.entries {
		if entry.AccountID == accountID {
			cp := *entry
			entries = append(entries, &cp)
		}
	}

	sortEntries(entries)

	return entries, nil
}

// ListByAccountPage returns one page of the account's entry history, oldest
// first.
func (r *EntryStore) ListByAccountPage(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	entries, err := r.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if offset >= len(entries) {
		return nil, nil
	}

	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}

	return entries[offset:end], nil
}

// GetByTransaction retrieves the committed entries of one transaction.
func (r *EntryStore) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var entries []*domain.Entry
	for _, entry := range r.s.entries {
		if entry.TransactionID == transactionID {
			cp := *entry
			entries = append(entries, &cp)
		}
	}

	sortEntries(entries)

	return entries, nil
}

func sortEntries(entries []*domain.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
