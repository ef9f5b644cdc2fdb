// Package rates fetches live exchange rates for the currency converter.
// Conversion here is display-only: stored ledger amounts are never
// converted between currencies.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"khata/internal/cache"
)

var (
	ErrRateUnavailable = errors.New("exchange rate unavailable")
	ErrBadCurrency     = errors.New("invalid currency code")
)

// Client talks to an open.er-api.com compatible endpoint. Rate tables are
// cached per base currency for a short TTL so repeated conversions do not
// hammer the upstream.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.LRUCache[map[string]float64]
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cache:      cache.NewLRUCache[map[string]float64](16, 5*time.Minute),
	}
}

// ratesResponse is the upstream wire format.
type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func validCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Rates returns the rate table for a base currency, from cache when fresh.
func (c *Client) Rates(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if !validCode(base) {
		return nil, fmt.Errorf("%w: %q", ErrBadCurrency, base)
	}

	if rates, ok := c.cache.Get(base); ok {
		return rates, nil
	}

	url := fmt.Sprintf("%s/v6/latest/%s", c.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream status %d", ErrRateUnavailable, resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}
	if parsed.Result != "success" || len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("%w: upstream result %q", ErrRateUnavailable, parsed.Result)
	}

	c.cache.Set(base, parsed.Rates)
	slog.DebugContext(ctx, "Fetched exchange rates", "base", base, "currencies", len(parsed.Rates))
	return parsed.Rates, nil
}

// Convert returns the rate from one currency to another and the converted
// amount.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (rate, converted float64, err error) {
	to = strings.ToUpper(strings.TrimSpace(to))
	if !validCode(to) {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadCurrency, to)
	}

	rates, err := c.Rates(ctx, from)
	if err != nil {
		return 0, 0, err
	}
	rate, ok := rates[to]
	if !ok {
		return 0, 0, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, to)
	}
	return rate, amount * rate, nil
}
