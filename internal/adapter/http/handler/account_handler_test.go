package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finvault/ledger/internal/adapter/http/dto"
	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

type accountServiceStub struct {
	createFn       func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn          func(ctx context.Context, id string) (*domain.Account, error)
	getBalanceFn   func(ctx context.Context, id string) (decimal.Decimal, error)
	updateStatusFn func(ctx context.Context, input usecase.UpdateStatusInput) (*domain.Account, error)
	listFn         func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.getBalanceFn(ctx, id)
}

func (s *accountServiceStub) UpdateStatus(ctx context.Context, input usecase.UpdateStatusInput) (*domain.Account, error) {
	return s.updateStatusFn(ctx, input)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testAccount() *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:        "acc-1",
		UserID:    "user-1",
		Type:      domain.AccountTypeChecking,
		Currency:  "USD",
		Status:    domain.AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateAccountInput
	h := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return testAccount(), nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		UserID:   "user-1",
		Type:     "checking",
		Currency: "USD",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.UserID != "user-1" || captured.Type != domain.AccountTypeChecking {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.ID != "acc-1" || resp.Status != "active" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Balance != nil {
		t.Fatal("create response must not carry a balance")
	}
}

func TestAccountHandler_Create_InvalidCurrency(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrInvalidCurrency
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader([]byte(`{"user_id":"u","currency":"XYZ"}`)))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_IncludesDerivedBalance(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return testAccount(), nil
		},
		getBalanceFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.RequireFromString("379.50"), nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil), "id", "acc-1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Balance == nil || !resp.Balance.Equal(decimal.RequireFromString("379.50")) {
		t.Fatalf("expected derived balance 379.50, got %+v", resp.Balance)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_UpdateStatus(t *testing.T) {
	var captured usecase.UpdateStatusInput
	h := NewAccountHandler(&accountServiceStub{
		updateStatusFn: func(ctx context.Context, input usecase.UpdateStatusInput) (*domain.Account, error) {
			captured = input
			account := testAccount()
			account.Status = input.Status
			return account, nil
		},
	})

	req := withURLParam(
		httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/status", bytes.NewReader([]byte(`{"status":"frozen"}`))),
		"id", "acc-1",
	)
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Status != domain.AccountStatusFrozen {
		t.Fatalf("expected frozen, got %s", captured.Status)
	}
}

func TestAccountHandler_GetBalance(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return testAccount(), nil
		},
		getBalanceFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.NewFromInt(400), nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balance", nil), "id", "acc-1")
	rec := httptest.NewRecorder()
	h.GetBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(400)) || resp.Currency != "USD" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
