// Package fx converts transaction amounts into the base currency. Conversion
// happens once, at insert time; the stored base amount is frozen and never
// recomputed when rates move later.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// nbpRatesURL is the National Bank of Poland mid-rate endpoint.
const nbpRatesURL = "https://api.nbp.pl/api/exchangerates/rates/a/%s/?format=json"

// Rates holds the current conversion table into the base currency.
type Rates struct {
	base   string
	client *http.Client

	mu    sync.RWMutex
	table map[string]decimal.Decimal
}

// NewRates creates a table seeded with fixed fallback rates, used when the
// rate service is unreachable.
func NewRates(base string) *Rates {
	return &Rates{
		base:   strings.ToUpper(base),
		client: &http.Client{},
		table: map[string]decimal.Decimal{
			"EUR": decimal.NewFromFloat(4.30),
			"USD": decimal.NewFromFloat(3.95),
			"GBP": decimal.NewFromFloat(5.05),
			"CHF": decimal.NewFromFloat(4.45),
		},
	}
}

// Base returns the base currency code.
func (r *Rates) Base() string {
	return r.base
}

// Convert returns amount expressed in the base currency, rounded to two
// decimal places. Base-currency amounts pass through unchanged.
func (r *Rates) Convert(amount float64, currency string) (float64, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" || code == r.base {
		return decimal.NewFromFloat(amount).Round(2).InexactFloat64(), nil
	}

	r.mu.RLock()
	rate, ok := r.table[code]
	r.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("fx.Convert: no rate for currency %q", currency)
	}

	converted := decimal.NewFromFloat(amount).Mul(rate).Round(2)
	return converted.InexactFloat64(), nil
}

type nbpResponse struct {
	Rates []struct {
		Mid float64 `json:"mid"`
	} `json:"rates"`
}

// Refresh fetches the current mid rate for one currency and updates the
// table. Already-stored transactions keep their frozen base amounts.
func (r *Rates) Refresh(ctx context.Context, currency string) error {
	code := strings.ToUpper(strings.TrimSpace(currency))
	url := fmt.Sprintf(nbpRatesURL, strings.ToLower(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("fx.Refresh: build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("fx.Refresh: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fx.Refresh: status %d for %s", resp.StatusCode, code)
	}

	var parsed nbpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("fx.Refresh: decode response: %w", err)
	}
	if len(parsed.Rates) == 0 || parsed.Rates[0].Mid <= 0 {
		return fmt.Errorf("fx.Refresh: no usable rate for %s", code)
	}

	r.mu.Lock()
	r.table[code] = decimal.NewFromFloat(parsed.Rates[0].Mid)
	r.mu.Unlock()
	return nil
}
