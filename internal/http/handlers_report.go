package http

import (
	"errors"
	"log/slog"
	"net/http"

	"khata/internal/core"
)

// handleReport renders the shareable text report over the full ledger.
// An empty ledger answers 404 so clients can tell "nothing to share" from
// a real failure.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	title, body, err := s.ledger.Report(ctx, s.now())
	if errors.Is(err, core.ErrNoTransactions) {
		writeError(w, http.StatusNotFound, "no transactions to report")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build report", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"title":  title,
		"report": body,
	})
}
