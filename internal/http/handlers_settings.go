package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"khata/internal/core"
	"khata/internal/services"
)

// handleGetCurrency returns the stored display currency and its symbol.
func (s *Server) handleGetCurrency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code, err := s.ledger.Currency(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load currency", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load currency")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"currency": code,
		"symbol":   core.SymbolFor(code),
	})
}

type putCurrencyRequest struct {
	Currency string `json:"currency"`
}

// handlePutCurrency stores a new display currency preference.
func (s *Server) handlePutCurrency(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req putCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.ledger.SetCurrency(ctx, req.Currency); err != nil {
		if errors.Is(err, services.ErrUnknownCurrency) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(ctx, "Failed to store currency", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store currency")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"currency": req.Currency,
		"symbol":   core.SymbolFor(req.Currency),
	})
}
