package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finvault/ledger/internal/adapter/http/dto"
	"github.com/finvault/ledger/internal/domain"
	"github.com/finvault/ledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// EntryService reads account entry history.
type EntryService interface {
	GetLedgerPage(ctx context.Context, input usecase.GetLedgerPageInput) ([]*domain.Entry, error)
}

// LedgerHandler serves entry history and ledger-wide audits.
type LedgerHandler struct {
	ledgerUC LedgerService
	entryUC  EntryService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, entryUC EntryService) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: ledgerUC,
		entryUC:  entryUC,
	}
}

// GetAccountLedger returns an account's entry history, oldest first.
func (h *LedgerHandler) GetAccountLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	entries, err := h.entryUC.GetLedgerPage(r.Context(), usecase.GetLedgerPageInput{
		AccountID: id,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerResponse{
		AccountID: id,
		Entries:   dto.EntriesFromDomain(entries),
		Total:     int64(len(entries)),
	})
}

// CheckConsistency runs the whole-ledger invariant audit. An inconsistent
// ledger is reported with 200 and consistent=false; it is a finding, not a
// request failure.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		writeError(w, http.StatusInternalServerError, "failed to audit ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
