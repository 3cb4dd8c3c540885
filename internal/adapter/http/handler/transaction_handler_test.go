package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/adapter/http/dto"
	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

type transactionServiceStub struct {
	depositFn  func(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	withdrawFn func(ctx context.Context, input usecase.WithdrawalInput) (*domain.Transaction, error)
	transferFn func(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	getFn      func(ctx context.Context, id string) (*domain.Transaction, error)
	listFn     func(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error)
}

func (s *transactionServiceStub) Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
	return s.depositFn(ctx, input)
}

func (s *transactionServiceStub) Withdraw(ctx context.Context, input usecase.WithdrawalInput) (*domain.Transaction, error) {
	return s.withdrawFn(ctx, input)
}

func (s *transactionServiceStub) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
	return s.transferFn(ctx, input)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func (s *transactionServiceStub) ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

type entryReaderStub struct {
	entriesFn func(ctx context.Context, transactionID string) ([]*domain.Entry, error)
}

func (s *entryReaderStub) GetEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	if s.entriesFn != nil {
		return s.entriesFn(ctx, transactionID)
	}
	return nil, nil
}

func completedTransaction(txnType domain.TransactionType) *domain.Transaction {
	source := "acc-1"
	return &domain.Transaction{
		ID:              "txn-1",
		Type:            txnType,
		SourceAccountID: &source,
		Amount:          decimal.NewFromInt(100),
		Currency:        "USD",
		Status:          domain.TransactionStatusCompleted,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestTransactionHandler_Deposit_Success(t *testing.T) {
	var captured usecase.DepositInput
	h := NewTransactionHandler(&transactionServiceStub{
		depositFn: func(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
			captured = input
			return completedTransaction(domain.TransactionTypeDeposit), nil
		},
	}, &entryReaderStub{})

	body, _ := json.Marshal(dto.DepositRequest{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(100),
		Currency:  "USD",
	})
	req := httptest.NewRequest(http.MethodPost, "/deposits", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Deposit(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.AccountID != "acc-1" {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestTransactionHandler_Withdraw_InsufficientFundsReturnsFailedTransaction(t *testing.T) {
	failed := completedTransaction(domain.TransactionTypeWithdrawal)
	failed.Status = domain.TransactionStatusFailed

	h := NewTransactionHandler(&transactionServiceStub{
		withdrawFn: func(ctx context.Context, input usecase.WithdrawalInput) (*domain.Transaction, error) {
			return failed, domain.ErrInsufficientFunds
		},
	}, &entryReaderStub{})

	body, _ := json.Marshal(dto.WithdrawalRequest{
		AccountID: "acc-1",
		Amount:    decimal.NewFromInt(600),
		Currency:  "USD",
	})
	req := httptest.NewRequest(http.MethodPost, "/withdrawals", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Withdraw(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Status != "failed" {
		t.Fatalf("expected failed transaction in body, got %+v", resp)
	}
}

func TestTransactionHandler_Transfer_FrozenAccountConflict(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
			return nil, domain.ErrAccountNotActive
		},
	}, &entryReaderStub{})

	body, _ := json.Marshal(dto.TransferRequest{
		SourceAccountID:      "acc-1",
		DestinationAccountID: "acc-2",
		Amount:               decimal.NewFromInt(10),
		Currency:             "USD",
	})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Transfer(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTransactionHandler_Transfer_InvalidBody(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{}, &entryReaderStub{})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	h.Transfer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransactionHandler_Get_IncludesEntries(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return completedTransaction(domain.TransactionTypeTransfer), nil
		},
	}, &entryReaderStub{
		entriesFn: func(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
			return []*domain.Entry{
				{ID: "e-1", AccountID: "acc-1", TransactionID: transactionID, Type: domain.EntryTypeDebit, Amount: decimal.NewFromInt(100)},
				{ID: "e-2", AccountID: "acc-2", TransactionID: transactionID, Type: domain.EntryTypeCredit, Amount: decimal.NewFromInt(100)},
			}, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/transactions/txn-1", nil), "id", "txn-1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Entries))
	}
}

func TestTransactionHandler_Get_NotFound(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
	}, &entryReaderStub{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/transactions/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
