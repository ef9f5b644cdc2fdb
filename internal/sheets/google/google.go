// Package google exports ledger data to a Google Spreadsheet using a
// service account.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"khata/internal/core"
	ports "khata/internal/sheets"
)

// Options configures the spreadsheet target and credentials. Exactly one
// of CredentialsJSON or CredentialsFile must be set.
type Options struct {
	SpreadsheetID   string
	ReportSheet     string
	CredentialsJSON string
	CredentialsFile string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	reportSheet   string
}

// Ensure interface conformance
var (
	_ ports.ReportWriter = (*Client)(nil)
	_ ports.RowAppender  = (*Client)(nil)
)

// New creates a Sheets client from explicit options.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheet := strings.TrimSpace(opts.ReportSheet)
	if sheet == "" {
		sheet = "Report"
	}

	credentials, err := resolveCredentials(opts)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets client ready",
		"spreadsheet_id", opts.SpreadsheetID,
		"report_sheet", sheet)

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		reportSheet:   sheet,
	}, nil
}

func resolveCredentials(opts Options) ([]byte, error) {
	inline := strings.TrimSpace(opts.CredentialsJSON)
	file := strings.TrimSpace(opts.CredentialsFile)

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// WriteReport clears the report sheet and writes the rendered report, one
// line per row in column A.
func (c *Client) WriteReport(ctx context.Context, title string, lines []string) error {
	_, err := c.svc.Spreadsheets.Values.
		Clear(c.spreadsheetID, c.reportSheet, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear report sheet: %w", err)
	}

	values := make([][]interface{}, 0, len(lines))
	for _, line := range lines {
		values = append(values, []interface{}{line})
	}

	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, c.reportSheet+"!A1", &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write report sheet: %w", err)
	}

	slog.InfoContext(ctx, "Report exported to Google Sheets",
		"title", title,
		"rows", len(values))
	return nil
}

// AppendTransaction appends one transaction row to the report sheet's log
// area and returns the updated range as row reference.
func (c *Client) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	row := []interface{}{tx.Date, string(tx.Kind), tx.Amount, tx.Category, tx.Notes, tx.ID}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.reportSheet+"!A1", &gsheet.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append transaction row: %w", err)
	}

	rowRef := ""
	if resp.Updates != nil {
		rowRef = resp.Updates.UpdatedRange
	}
	return rowRef, nil
}
