package usecase

import (
	"context"

	"github.com/finvault/ledger/internal/domain"
)

// EntryUseCase serves read access to the append-only entry history.
type EntryUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// GetLedger returns the complete entry history of an account, oldest first.
func (uc *EntryUseCase) GetLedger(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.entryRepo.ListByAccount(ctx, accountID)
}

// GetLedgerPageInput represents input for a paginated ledger read.
type GetLedgerPageInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// GetLedgerPage returns a page of an account's entry history, oldest first.
func (uc *EntryUseCase) GetLedgerPage(ctx context.Context, input GetLedgerPageInput) ([]*domain.Entry, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByAccountPage(ctx, input.AccountID, limit, offset)
}

// GetEntriesByTransaction returns the entries written by one transaction.
func (uc *EntryUseCase) GetEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return uc.entryRepo.GetByTransaction(ctx, transactionID)
}
