package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle and account-scoped reads.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase. The metrics argument may be
// nil.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository, m *metrics.Metrics, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     m,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	UserID   string
	Type     domain.AccountType
	Currency string
}

// CreateAccount creates a new active account with an empty ledger.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if input.Type == "" {
		input.Type = domain.AccountTypeChecking
	}

	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAccountType, input.Type)
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Type:      input.Type,
		Currency:  strings.ToUpper(strings.TrimSpace(input.Currency)),
		Status:    domain.AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetBalance derives the current balance from the account's entries. It never
// reads a stored balance because none exists.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	if _, err := uc.accountRepo.GetByID(ctx, id); err != nil {
		return decimal.Zero, err
	}

	return uc.entryRepo.BalanceOf(ctx, nil, id)
}

// UpdateStatusInput represents input for an account status change.
type UpdateStatusInput struct {
	AccountID string
	Status    domain.AccountStatus
}

// UpdateStatus changes the lifecycle status of an account. Frozen and closed
// accounts reject new ledger operations; their history stays readable.
func (uc *AccountUseCase) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Account, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAccountStatus, input.Status)
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accountRepo.UpdateStatus(ctx, account.ID, input.Status, now); err != nil {
		return nil, err
	}

	account.Status = input.Status
	account.UpdatedAt = now

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues("status_" + string(input.Status)).Inc()
	}

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}
