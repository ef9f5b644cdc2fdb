package sheets

import (
	"context"

	"khata/internal/core"
)

// Ports for outbound report/export adapters.
type (
	// ReportWriter replaces the report sheet contents with a freshly
	// rendered ledger report.
	ReportWriter interface {
		WriteReport(ctx context.Context, title string, lines []string) error
	}

	// RowAppender appends a single transaction as a spreadsheet row and
	// returns an opaque row reference.
	RowAppender interface {
		AppendTransaction(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	}
)
