package http

import (
	"log/slog"
	"net/http"

	"khata/internal/core"
)

// handleDashboard returns running totals and the expense category
// breakdown over the whole ledger.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, breakdown, err := s.ledger.Dashboard(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to compute dashboard", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	currency, err := s.ledger.Currency(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load currency", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load currency")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"summary":    buildSummary(summary),
		"categories": buildCategoryTotals(breakdown),
		"currency":   currency,
		"symbol":     core.SymbolFor(currency),
	})
}
