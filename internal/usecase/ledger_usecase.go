package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when a scan of the entry store finds
	// a violated invariant.
	ErrInconsistentLedger = errors.New("ledger is inconsistent")
)

// LedgerUseCase audits ledger-wide invariants: every completed transaction is
// balanced (exactly one debit and one credit of equal amount) and no account
// has a negative derived balance.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// ConsistencyReport describes the outcome of an invariant scan.
type ConsistencyReport struct {
	Consistent             bool     `json:"consistent"`
	UnbalancedTransactions []string `json:"unbalanced_transactions,omitempty"`
	OverdrawnAccounts      []string `json:"overdrawn_accounts,omitempty"`
}

// CheckConsistency scans the entry store for invariant violations. Both
// checks are pure reads over immutable entries.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	unbalanced, err := uc.ledgerRepo.UnbalancedTransactions(ctx)
	if err != nil {
		return nil, err
	}

	overdrawn, err := uc.ledgerRepo.OverdrawnAccounts(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		Consistent:             len(unbalanced) == 0 && len(overdrawn) == 0,
		UnbalancedTransactions: unbalanced,
		OverdrawnAccounts:      overdrawn,
	}

	if !report.Consistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
