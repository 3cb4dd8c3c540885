package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
	"github.com/finvault/ledger/internal/usecase/mocks"
)

func newAccountUseCase() (*usecase.AccountUseCase, *mocks.MockAccountRepository, *mocks.MockEntryRepository) {
	accountRepo := mocks.NewMockAccountRepository()
	entryRepo := mocks.NewMockEntryRepository()
	uc := usecase.NewAccountUseCase(accountRepo, entryRepo, nil, mocks.NewMockIDGenerator())
	return uc, accountRepo, entryRepo
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateAccountInput
		errorType   error
		expectError bool
		wantType    domain.AccountType
	}{
		{
			name:     "create checking account",
			input:    usecase.CreateAccountInput{UserID: "user-1", Type: domain.AccountTypeChecking, Currency: "USD"},
			wantType: domain.AccountTypeChecking,
		},
		{
			name:     "create savings account",
			input:    usecase.CreateAccountInput{UserID: "user-1", Type: domain.AccountTypeSavings, Currency: "EUR"},
			wantType: domain.AccountTypeSavings,
		},
		{
			name:     "default to checking when type omitted",
			input:    usecase.CreateAccountInput{UserID: "user-1", Currency: "USD"},
			wantType: domain.AccountTypeChecking,
		},
		{
			name:     "normalize lowercase currency",
			input:    usecase.CreateAccountInput{UserID: "user-1", Currency: "usd"},
			wantType: domain.AccountTypeChecking,
		},
		{
			name:        "reject unknown account type",
			input:       usecase.CreateAccountInput{UserID: "user-1", Type: "premium", Currency: "USD"},
			expectError: true,
			errorType:   domain.ErrInvalidAccountType,
		},
		{
			name:        "reject unknown currency",
			input:       usecase.CreateAccountInput{UserID: "user-1", Currency: "XYZ"},
			expectError: true,
			errorType:   domain.ErrInvalidCurrency,
		},
		{
			name:        "reject empty currency",
			input:       usecase.CreateAccountInput{UserID: "user-1"},
			expectError: true,
			errorType:   domain.ErrInvalidCurrency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newAccountUseCase()

			account, err := uc.CreateAccount(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, account.Type)
			}
			if account.Status != domain.AccountStatusActive {
				t.Errorf("expected active status, got %s", account.Status)
			}
			if account.Currency != "USD" && account.Currency != "EUR" {
				t.Errorf("expected normalized currency, got %q", account.Currency)
			}
			if account.ID == "" {
				t.Error("expected generated ID")
			}
		})
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	uc, accountRepo, entryRepo := newAccountUseCase()

	now := time.Now().UTC()
	_ = accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-1", UserID: "user-1", Type: domain.AccountTypeChecking,
		Currency: "USD", Status: domain.AccountStatusActive, CreatedAt: now, UpdatedAt: now,
	})

	t.Run("new account has zero balance", func(t *testing.T) {
		balance, err := uc.GetBalance(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !balance.IsZero() {
			t.Errorf("expected zero balance, got %s", balance)
		}
	})

	t.Run("balance is the fold over entries", func(t *testing.T) {
		_ = entryRepo.Create(context.Background(), nil,
			&domain.Entry{ID: "e-1", AccountID: "acc-1", TransactionID: "t-1", Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(500), CreatedAt: now},
			&domain.Entry{ID: "e-2", AccountID: "acc-1", TransactionID: "t-2", Type: domain.EntryTypeDebit, Amount: decimal.RequireFromString("120.50"), CreatedAt: now},
		)

		balance, err := uc.GetBalance(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !balance.Equal(decimal.RequireFromString("379.50")) {
			t.Errorf("expected 379.50, got %s", balance)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := uc.GetBalance(context.Background(), "missing")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestAccountUseCase_UpdateStatus(t *testing.T) {
	uc, accountRepo, _ := newAccountUseCase()

	now := time.Now().UTC()
	_ = accountRepo.Create(context.Background(), &domain.Account{
		ID: "acc-1", UserID: "user-1", Type: domain.AccountTypeChecking,
		Currency: "USD", Status: domain.AccountStatusActive, CreatedAt: now, UpdatedAt: now,
	})

	t.Run("freeze account", func(t *testing.T) {
		account, err := uc.UpdateStatus(context.Background(), usecase.UpdateStatusInput{
			AccountID: "acc-1",
			Status:    domain.AccountStatusFrozen,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.Status != domain.AccountStatusFrozen {
			t.Errorf("expected frozen, got %s", account.Status)
		}

		stored, _ := accountRepo.GetByID(context.Background(), "acc-1")
		if stored.Status != domain.AccountStatusFrozen {
			t.Errorf("expected persisted frozen status, got %s", stored.Status)
		}
	})

	t.Run("reject unknown status", func(t *testing.T) {
		_, err := uc.UpdateStatus(context.Background(), usecase.UpdateStatusInput{
			AccountID: "acc-1",
			Status:    "suspended",
		})
		if !errors.Is(err, domain.ErrInvalidAccountStatus) {
			t.Fatalf("expected ErrInvalidAccountStatus, got %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := uc.UpdateStatus(context.Background(), usecase.UpdateStatusInput{
			AccountID: "missing",
			Status:    domain.AccountStatusClosed,
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
