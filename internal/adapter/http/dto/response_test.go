package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/domain"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        "acc-1",
		UserID:    "user-1",
		Type:      domain.AccountTypeSavings,
		Currency:  "USD",
		Status:    domain.AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Type != "savings" || resp.Status != "active" {
		t.Fatalf("unexpected account response: %+v", resp)
	}
	if resp.Balance != nil {
		t.Fatal("plain account response must not carry a balance")
	}

	// The balance key is omitted entirely unless derived for this response.
	raw, _ := json.Marshal(resp)
	if jsonHasKey(t, raw, "balance") {
		t.Fatalf("expected no balance key in %s", raw)
	}

	with := AccountWithBalance(account, decimal.RequireFromString("123.45"))
	if with.Balance == nil || !with.Balance.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("unexpected balance: %+v", with.Balance)
	}
}

func jsonHasKey(t *testing.T, raw []byte, key string) bool {
	t.Helper()

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	_, ok := m[key]
	return ok
}

func TestTransactionFromDomain(t *testing.T) {
	now := time.Now()
	source := "acc-1"
	dest := "acc-2"

	txn := &domain.Transaction{
		ID:                   "txn-1",
		Type:                 domain.TransactionTypeTransfer,
		SourceAccountID:      &source,
		DestinationAccountID: &dest,
		Amount:               decimal.NewFromInt(100),
		Currency:             "USD",
		Status:               domain.TransactionStatusCompleted,
		CreatedAt:            now,
	}

	resp := TransactionFromDomain(txn)
	if resp.Type != "transfer" || resp.Status != "completed" {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}
	if *resp.SourceAccountID != "acc-1" || *resp.DestinationAccountID != "acc-2" {
		t.Fatalf("account refs lost: %+v", resp)
	}

	// Deposits have no source; the key must be omitted, not null.
	deposit := &domain.Transaction{
		ID:                   "txn-2",
		Type:                 domain.TransactionTypeDeposit,
		DestinationAccountID: &dest,
		Amount:               decimal.NewFromInt(50),
		Currency:             "USD",
		Status:               domain.TransactionStatusCompleted,
		CreatedAt:            now,
	}

	raw, _ := json.Marshal(TransactionFromDomain(deposit))
	if jsonHasKey(t, raw, "source_account_id") {
		t.Fatalf("expected source_account_id omitted in %s", raw)
	}
}

func TestEntriesFromDomain(t *testing.T) {
	entries := []*domain.Entry{
		{ID: "e-1", AccountID: "acc-1", TransactionID: "txn-1", Type: domain.EntryTypeDebit, Amount: decimal.NewFromInt(10)},
		{ID: "e-2", AccountID: "acc-2", TransactionID: "txn-1", Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(10)},
	}

	resp := EntriesFromDomain(entries)
	if len(resp) != 2 || resp[0].Type != "debit" || resp[1].Type != "credit" {
		t.Fatalf("unexpected entries: %+v", resp)
	}
}
