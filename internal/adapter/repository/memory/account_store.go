package memory

import (
	"context"
	"sort"
	"time"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// AccountStore implements usecase.AccountRepository.
type AccountStore struct {
	s *Store
}

// Create creates a new account.
func (r *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *account
	r.s.accounts[account.ID] = &cp

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cp := *account

	return &cp, nil
}

// GetByIDsForUpdate locks the given accounts for the duration of the unit
// of work. Locks are taken in ascending id order regardless of input order.
func (r *AccountStore) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	t := asMemTx(tx)

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	for _, id := range sorted {
		r.s.lockFor(id).Lock()
		t.held = append(t.held, id)
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		account, ok := r.s.accounts[id]
		if !ok {
			continue
		}
		cp := *account
		accounts = append(accounts, &cp)
	}

	return accounts, nil
}

// UpdateStatus updates the lifecycle status of an account.
func (r *AccountStore) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.Status = status
	account.UpdatedAt = updatedAt

	return nil
}

// List lists accounts with pagination, newest first.
func (r *AccountStore) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*domain.Account, 0, len(r.s.accounts))
	for _, account := range r.s.accounts {
		cp := *account
		all = append(all, &cp)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	return all[offset:end], nil
}
