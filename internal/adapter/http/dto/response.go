package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses. The balance is
// derived from entries at read time; it is not a stored field.
type AccountResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      string           `json:"type"`
	Currency  string           `json:"currency"`
	Status    string           `json:"status"`
	Balance   *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Type:      string(a.Type),
		Currency:  a.Currency,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountWithBalance converts a domain account plus its derived balance.
func AccountWithBalance(a *domain.Account, balance decimal.Decimal) *AccountResponse {
	resp := AccountFromDomain(a)
	resp.Balance = &balance

	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// BalanceResponse represents a derived balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID                   string           `json:"id"`
	Type                 string           `json:"type"`
	SourceAccountID      *string          `json:"source_account_id,omitempty"`
	DestinationAccountID *string          `json:"destination_account_id,omitempty"`
	Amount               decimal.Decimal  `json:"amount"`
	Currency             string           `json:"currency"`
	Status               string           `json:"status"`
	Description          string           `json:"description,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	Entries              []*EntryResponse `json:"entries,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                   t.ID,
		Type:                 string(t.Type),
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Amount:               t.Amount,
		Currency:             t.Currency,
		Status:               string(t.Status),
		Description:          t.Description,
		CreatedAt:            t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		AccountID:     e.AccountID,
		TransactionID: e.TransactionID,
		Type:          string(e.Type),
		Amount:        e.Amount,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// LedgerResponse represents an account's entry history.
type LedgerResponse struct {
	AccountID string           `json:"account_id"`
	Entries   []*EntryResponse `json:"entries"`
	Total     int64            `json:"total"`
}

// ListAccountsResponse represents a paginated list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListTransactionsResponse represents a paginated list of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ConsistencyResponse represents the outcome of a ledger audit.
type ConsistencyResponse struct {
	Consistent             bool     `json:"consistent"`
	UnbalancedTransactions []string `json:"unbalanced_transactions,omitempty"`
	OverdrawnAccounts      []string `json:"overdrawn_accounts,omitempty"`
}

// ConsistencyFromReport converts a usecase report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Consistent:             r.Consistent,
		UnbalancedTransactions: r.UnbalancedTransactions,
		OverdrawnAccounts:      r.OverdrawnAccounts,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
