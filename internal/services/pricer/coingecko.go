package pricer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dripfolio/dripfolio/internal/domain"
)

const (
	coinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	coinGeckoTimeout = 15 * time.Second

	// CoinGecko wants dd-mm-yyyy for the history endpoint.
	coinGeckoDateLayout = "02-01-2006"
)

// CoinGeckoPricer resolves prices from the CoinGecko public API. It serves
// both current prices (/simple/price) and day-precision historical prices
// (/coins/{id}/history). The vs-currency for historical lookups is fixed at
// construction because the history endpoint returns every currency at once
// and the contract only names the coin and the date.
type CoinGeckoPricer struct {
	baseURL    string
	apiKey     string
	currency   string
	httpClient *http.Client
}

// CoinGeckoOption configures the pricer.
type CoinGeckoOption func(*CoinGeckoPricer)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) CoinGeckoOption {
	return func(p *CoinGeckoPricer) {
		p.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) CoinGeckoOption {
	return func(p *CoinGeckoPricer) {
		p.httpClient = client
	}
}

// NewCoinGeckoPricer creates a CoinGecko-backed pricer. currency is the
// vs-currency slug used for historical lookups (e.g. "eur").
func NewCoinGeckoPricer(apiKey, currency string, opts ...CoinGeckoOption) *CoinGeckoPricer {
	p := &CoinGeckoPricer{
		baseURL:    coinGeckoBaseURL,
		apiKey:     apiKey,
		currency:   domain.NormalizeSlug(currency),
		httpClient: &http.Client{Timeout: coinGeckoTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetCurrentPrice fetches today's price of coin in currency. Upstream
// failures and unknown coins come back as ok=false, never as a panic or a
// fatal error: a missing current price degrades to zero value downstream.
func (p *CoinGeckoPricer) GetCurrentPrice(ctx context.Context, coin, currency string) (decimal.Decimal, bool, error) {
	coin = domain.NormalizeSlug(coin)
	currency = domain.NormalizeSlug(currency)

	endpoint := fmt.Sprintf("%s/simple/price?vs_currencies=%s&ids=%s",
		p.baseURL, url.QueryEscape(currency), url.QueryEscape(coin))

	var payload map[string]map[string]decimal.Decimal
	if err := p.getJSON(ctx, endpoint, &payload); err != nil {
		return decimal.Zero, false, err
	}

	quote, ok := payload[coin]
	if !ok {
		return decimal.Zero, false, nil
	}
	price, ok := quote[currency]
	if !ok {
		return decimal.Zero, false, nil
	}
	return price, true, nil
}

type coinGeckoHistoryResponse struct {
	MarketData *struct {
		CurrentPrice map[string]decimal.Decimal `json:"current_price"`
	} `json:"market_data"`
}

// GetHistoricalPrice fetches the price of coin on the given calendar day,
// in the pricer's configured currency.
func (p *CoinGeckoPricer) GetHistoricalPrice(ctx context.Context, coin string, date time.Time) (decimal.Decimal, error) {
	coin = domain.NormalizeSlug(coin)

	endpoint := fmt.Sprintf("%s/coins/%s/history?date=%s&localization=false",
		p.baseURL, url.PathEscape(coin), date.Format(coinGeckoDateLayout))

	var payload coinGeckoHistoryResponse
	if err := p.getJSON(ctx, endpoint, &payload); err != nil {
		return decimal.Zero, err
	}

	if payload.MarketData == nil {
		return decimal.Zero, fmt.Errorf("no market data for %s on %s", coin, date.Format(coinGeckoDateLayout))
	}
	price, ok := payload.MarketData.CurrentPrice[p.currency]
	if !ok {
		return decimal.Zero, fmt.Errorf("no %s price for %s on %s", p.currency, coin, date.Format(coinGeckoDateLayout))
	}
	return price, nil
}

func (p *CoinGeckoPricer) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "build CoinGecko request")
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "CoinGecko request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("CoinGecko returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode CoinGecko response")
	}
	return nil
}
