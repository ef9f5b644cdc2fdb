package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"khata/internal/core"
	"khata/internal/rates"
	"khata/internal/services"
	"khata/internal/storage"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ledger := services.NewLedgerService(storage.NewCollections(storage.NewMemoryStore()), nil)
	s := NewServer(":0", ledger, nil)
	s.now = func() time.Time { return testNow }
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)

	if rec := doRequest(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}
}

func TestCreateTransactionAndDashboard(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/transactions",
		`{"kind":"income","amount":1250.5,"category":"Salary","notes":"march"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d body %s", rec.Code, rec.Body.String())
	}
	var created transactionJSON
	decodeBody(t, rec, &created)
	if created.ID == "" || created.Kind != "income" || created.Amount != 1250.5 {
		t.Fatalf("created = %+v", created)
	}

	rec = doRequest(s, http.MethodPost, "/transactions",
		`{"kind":"expense","amount":55.25,"category":"Groceries"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense = %d", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard = %d", rec.Code)
	}
	var dash struct {
		Summary    summaryJSON         `json:"summary"`
		Categories []categoryTotalJSON `json:"categories"`
		Currency   string              `json:"currency"`
		Symbol     string              `json:"symbol"`
	}
	decodeBody(t, rec, &dash)
	if dash.Summary.TotalIncome != 1250.5 || dash.Summary.TotalExpense != 55.25 {
		t.Fatalf("summary = %+v", dash.Summary)
	}
	if dash.Summary.Balance != 1195.25 || dash.Summary.Count != 2 {
		t.Fatalf("summary = %+v", dash.Summary)
	}
	if len(dash.Categories) != 1 || dash.Categories[0].Name != "Groceries" {
		t.Fatalf("categories = %+v", dash.Categories)
	}
	if dash.Currency != core.DefaultCurrency || dash.Symbol != "₹" {
		t.Fatalf("currency = %s symbol = %s", dash.Currency, dash.Symbol)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"negative amount", `{"kind":"expense","amount":-5,"category":"X"}`},
		{"blank category", `{"kind":"expense","amount":5,"category":"   "}`},
		{"unknown kind", `{"kind":"loan","amount":5,"category":"X"}`},
		{"malformed json", `{not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(s, http.MethodPost, "/transactions", tt.body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestListTransactionsFiltered(t *testing.T) {
	s := newTestServer(t)

	// Seed directly through the service to control dates.
	ctx := context.Background()
	mustAdd := func(kind core.Kind, amount float64, category string, at time.Time) {
		t.Helper()
		if _, err := s.ledger.Add(ctx, kind, amount, category, "", at); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	mustAdd(core.Expense, 10, "Recent", testNow.AddDate(0, 0, -2))
	mustAdd(core.Expense, 20, "LastYear", testNow.AddDate(-1, 0, 0))

	rec := doRequest(s, http.MethodGet, "/transactions?range=monthly", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	var listing struct {
		Range string         `json:"range"`
		Days  []dayGroupJSON `json:"days"`
	}
	decodeBody(t, rec, &listing)
	if listing.Range != "monthly" {
		t.Fatalf("range = %q", listing.Range)
	}
	if len(listing.Days) != 1 || listing.Days[0].Transactions[0].Category != "Recent" {
		t.Fatalf("days = %+v", listing.Days)
	}

	rec = doRequest(s, http.MethodGet, "/transactions?date=2024-03-13", "")
	decodeBody(t, rec, &listing)
	if len(listing.Days) != 1 || listing.Days[0].Label != "13/03/2024" {
		t.Fatalf("date filter days = %+v", listing.Days)
	}

	if rec := doRequest(s, http.MethodGet, "/transactions?range=fortnight", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown range = %d, want 400", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/transactions?date=13-03-2024", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date = %d, want 400", rec.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/transactions",
		`{"kind":"expense","amount":30,"category":"Snacks"}`)
	var created transactionJSON
	decodeBody(t, rec, &created)

	if rec := doRequest(s, http.MethodDelete, "/transactions/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/dashboard", "")
	var dash struct {
		Summary summaryJSON `json:"summary"`
	}
	decodeBody(t, rec, &dash)
	if dash.Summary.Count != 0 || dash.Summary.TotalExpense != 0 {
		t.Fatalf("summary after delete = %+v", dash.Summary)
	}

	// Unknown id stays a no-op.
	if rec := doRequest(s, http.MethodDelete, "/transactions/nope", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete unknown = %d", rec.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	s := newTestServer(t)

	if rec := doRequest(s, http.MethodGet, "/report", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("empty report = %d, want 404", rec.Code)
	}

	doRequest(s, http.MethodPost, "/transactions",
		`{"kind":"expense","amount":55.25,"category":"Groceries"}`)

	rec := doRequest(s, http.MethodGet, "/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("report = %d", rec.Code)
	}
	var report struct {
		Title  string `json:"title"`
		Report string `json:"report"`
	}
	decodeBody(t, rec, &report)
	if report.Title != "Ledger Report - 15 Mar 2024" {
		t.Fatalf("title = %q", report.Title)
	}
	if !strings.Contains(report.Report, "Groceries") || !strings.Contains(report.Report, "-- end of report --") {
		t.Fatalf("report body = %q", report.Report)
	}
}

func TestCurrencySettings(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/settings/currency", "")
	var got map[string]string
	decodeBody(t, rec, &got)
	if got["currency"] != core.DefaultCurrency || got["symbol"] != "₹" {
		t.Fatalf("default currency = %+v", got)
	}

	rec = doRequest(s, http.MethodPut, "/settings/currency", `{"currency":"USD"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put currency = %d", rec.Code)
	}
	rec = doRequest(s, http.MethodGet, "/settings/currency", "")
	decodeBody(t, rec, &got)
	if got["currency"] != "USD" || got["symbol"] != "$" {
		t.Fatalf("updated currency = %+v", got)
	}

	if rec := doRequest(s, http.MethodPut, "/settings/currency", `{"currency":"XYZ"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown currency = %d, want 400", rec.Code)
	}
}

func TestConvertEndpoint(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v6/latest/USD" {
			_, _ = w.Write([]byte(`{"result":"success","rates":{"INR":83.0}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	ledger := services.NewLedgerService(storage.NewCollections(storage.NewMemoryStore()), nil)
	s := NewServer(":0", ledger, rates.NewClient(upstream.URL))
	defer s.rateLimiter.stop()

	rec := doRequest(s, http.MethodGet, "/rates/convert?amount=10&from=USD&to=INR", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("convert = %d body %s", rec.Code, rec.Body.String())
	}
	var conv struct {
		Rate      float64 `json:"rate"`
		Converted float64 `json:"converted"`
	}
	decodeBody(t, rec, &conv)
	if conv.Rate != 83.0 || conv.Converted != 830.0 {
		t.Fatalf("conversion = %+v", conv)
	}

	if rec := doRequest(s, http.MethodGet, "/rates/convert?amount=abc&from=USD&to=INR", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad amount = %d", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/rates/convert?amount=1&from=US&to=INR", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad code = %d", rec.Code)
	}
}

func TestConvertNotConfigured(t *testing.T) {
	s := newTestServer(t)
	if rec := doRequest(s, http.MethodGet, "/rates/convert?amount=1&from=USD&to=INR", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("convert without client = %d, want 503", rec.Code)
	}
}
