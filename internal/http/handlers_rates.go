package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"khata/internal/rates"
)

// handleConvert answers ?amount=&from=&to= with the live exchange rate and
// the converted amount. Display-only: nothing in the ledger changes.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if s.rates == nil {
		writeError(w, http.StatusServiceUnavailable, "currency conversion not configured")
		return
	}

	q := r.URL.Query()
	amount, err := strconv.ParseFloat(q.Get("amount"), 64)
	if err != nil || amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	from, to := q.Get("from"), q.Get("to")

	rate, converted, err := s.rates.Convert(ctx, amount, from, to)
	if err != nil {
		if errors.Is(err, rates.ErrBadCurrency) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(ctx, "Currency conversion failed", "from", from, "to", to, "error", err)
		writeError(w, http.StatusBadGateway, "exchange rate unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from":      from,
		"to":        to,
		"amount":    amount,
		"rate":      rate,
		"converted": converted,
	})
}
