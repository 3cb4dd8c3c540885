package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finvault/ledger/internal/adapter/http/dto"
	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawalInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error)
}

// EntryReader reads the entries a transaction wrote.
type EntryReader interface {
	GetEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
}

// TransactionHandler handles deposit, withdrawal and transfer requests.
type TransactionHandler struct {
	transactionUC TransactionService
	entryUC       EntryReader
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, entryUC EntryReader) *TransactionHandler {
	return &TransactionHandler{
		transactionUC: transactionUC,
		entryUC:       entryUC,
	}
}

// Deposit credits an account from outside the system.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.Deposit(r.Context(), req.ToUseCaseInput())
	h.writeOutcome(w, txn, err, "failed to deposit")
}

// Withdraw debits an account, rejecting overdrafts.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.Withdraw(r.Context(), req.ToUseCaseInput())
	h.writeOutcome(w, txn, err, "failed to withdraw")
}

// Transfer moves funds between two accounts atomically.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.Transfer(r.Context(), req.ToUseCaseInput())
	h.writeOutcome(w, txn, err, "failed to transfer")
}

// writeOutcome renders a terminal transaction. An insufficient funds
// rejection still produced a durable failed transaction, so it is returned
// in the 422 body.
func (h *TransactionHandler) writeOutcome(w http.ResponseWriter, txn *domain.Transaction, err error, message string) {
	if err == nil {
		writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
		return
	}

	if errors.Is(err, domain.ErrInsufficientFunds) && txn != nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.TransactionFromDomain(txn))
		return
	}

	writeError(w, mapDomainError(err), message, err.Error())
}

// Get retrieves a transaction together with its entries.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	entries, err := h.entryUC.GetEntriesByTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entries", err.Error())
		return
	}

	resp := dto.TransactionFromDomain(txn)
	resp.Entries = dto.EntriesFromDomain(entries)

	writeJSON(w, http.StatusOK, resp)
}

// ListByAccount lists the transactions touching an account, newest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.transactionUC.ListTransactionsByAccount(r.Context(), usecase.ListTransactionsByAccountInput{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}
