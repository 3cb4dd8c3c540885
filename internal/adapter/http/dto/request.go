package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	UserID   string `json:"user_id"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:   r.UserID,
		Type:     domain.AccountType(r.Type),
		Currency: r.Currency,
	}
}

// UpdateAccountStatusRequest represents a request to change account status.
type UpdateAccountStatusRequest struct {
	Status string `json:"status"`
}

// DepositRequest represents a request to deposit into an account.
type DepositRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
	}
}

// WithdrawalRequest represents a request to withdraw from an account.
type WithdrawalRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawalRequest) ToUseCaseInput() usecase.WithdrawalInput {
	return usecase.WithdrawalInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Description: r.Description,
	}
}

// TransferRequest represents a request to transfer between accounts.
type TransferRequest struct {
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	Description          string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID,
		Amount:               r.Amount,
		Currency:             r.Currency,
		Description:          r.Description,
	}
}
