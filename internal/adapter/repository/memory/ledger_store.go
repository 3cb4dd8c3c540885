package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
)

// LedgerStore implements usecase.LedgerRepository.
type LedgerStore struct {
	s *Store
}

// UnbalancedTransactions returns ids of terminal transactions whose entries
// do not match their type.
func (r *LedgerStore) UnbalancedTransactions(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byTxn := make(map[string][]*domain.Entry)
	for _, entry := range r.s.entries {
		byTxn[entry.TransactionID] = append(byTxn[entry.TransactionID], entry)
	}

	var ids []string
	for _, txn := range r.s.transactions {
		if !txn.Status.Terminal() {
			continue
		}
		if !balanced(txn, byTxn[txn.ID]) {
			ids = append(ids, txn.ID)
		}
	}

	sort.Strings(ids)

	return ids, nil
}

// OverdrawnAccounts returns ids of accounts whose derived balance is
// negative.
func (r *LedgerStore) OverdrawnAccounts(ctx context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	balances := make(map[string]decimal.Decimal)
	for _, entry := range r.s.entries {
		balances[entry.AccountID] = balances[entry.AccountID].Add(entry.Signed())
	}

	var ids []string
	for accountID, balance := range balances {
		if balance.IsNegative() {
			ids = append(ids, accountID)
		}
	}

	sort.Strings(ids)

	return ids, nil
}

func balanced(txn *domain.Transaction, entries []*domain.Entry) bool {
	if txn.Status == domain.TransactionStatusFailed {
		return len(entries) == 0
	}

	var debits, credits int
	for _, entry := range entries {
		if !entry.Amount.Equal(txn.Amount) {
			return false
		}
		switch entry.Type {
		case domain.EntryTypeDebit:
			debits++
		case domain.EntryTypeCredit:
			credits++
		}
	}

	switch txn.Type {
	case domain.TransactionTypeTransfer:
		return debits == 1 && credits == 1
	case domain.TransactionTypeDeposit:
		return debits == 0 && credits == 1
	case domain.TransactionTypeWithdrawal:
		return debits == 1 && credits == 0
	default:
		return false
	}
}
