package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"khata/internal/core"
)

// handleListTransactions returns the day-grouped listing, optionally
// restricted by ?range=weekly|monthly|yearly or pinned to ?date=YYYY-MM-DD.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mode, err := core.ParseRangeMode(r.URL.Query().Get("range"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	f := core.Filter{Mode: mode}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		f = core.Filter{Mode: core.RangeDay, Day: day}
	}

	groups, err := s.ledger.Transactions(ctx, f, s.now())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"range": string(f.Mode),
		"days":  buildDayGroups(groups),
	})
}

type createTransactionRequest struct {
	Kind     string  `json:"kind"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Notes    string  `json:"notes"`
}

// handleCreateTransaction appends a new expense or income entry.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var kind core.Kind
	switch req.Kind {
	case string(core.Expense), "":
		kind = core.Expense
	case string(core.Income):
		kind = core.Income
	default:
		writeError(w, http.StatusBadRequest, "kind must be 'expense' or 'income'")
		return
	}

	tx, err := s.ledger.Add(ctx, kind, req.Amount, sanitizeInput(req.Category), sanitizeInput(req.Notes), s.now())
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrEmptyCategory) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(ctx, "Failed to create transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, buildTransaction(tx))
}

// handleDeleteTransaction removes a transaction by id. Unknown ids are a
// no-op, so deletion always answers 204.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to delete transaction", "transaction_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
