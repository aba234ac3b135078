package investment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrQuoteUnavailable = errors.New("quote unavailable")

// QuoteClient resolves the current market price of a single asset.
type QuoteClient interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// YahooClient fetches stock quotes from the Yahoo Finance quote endpoint.
type YahooClient struct {
	baseURL string
	client  *http.Client
}

func NewYahooClient(baseURL string) *YahooClient {
	return &YahooClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *YahooClient) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(symbol)
	reqURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build quote request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warnf("Yahoo quote request for %s failed: %v", symbol, err)
		return decimal.Zero, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: Yahoo returned status %d for %s", ErrQuoteUnavailable, resp.StatusCode, symbol)
	}

	var payload struct {
		QuoteResponse struct {
			Result []struct {
				RegularMarketPrice json.Number `json:"regularMarketPrice"`
			} `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode quote response: %v", ErrQuoteUnavailable, err)
	}
	if len(payload.QuoteResponse.Result) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no quote for %s", ErrQuoteUnavailable, symbol)
	}
	price, err := decimal.NewFromString(payload.QuoteResponse.Result[0].RegularMarketPrice.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed price %q", ErrQuoteUnavailable, payload.QuoteResponse.Result[0].RegularMarketPrice.String())
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price for %s", ErrQuoteUnavailable, symbol)
	}
	return price, nil
}

// CoinGeckoClient fetches crypto prices from the CoinGecko coins endpoint.
// Symbols are CoinGecko coin ids such as "bitcoin".
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CoinGeckoClient) Quote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id := strings.ToLower(strings.TrimSpace(symbol))
	reqURL := fmt.Sprintf("%s/api/v3/coins/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build quote request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warnf("CoinGecko request for %s failed: %v", id, err)
		return decimal.Zero, fmt.Errorf("%w: %v", ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: CoinGecko returned status %d for %s", ErrQuoteUnavailable, resp.StatusCode, id)
	}

	var payload struct {
		MarketData struct {
			CurrentPrice map[string]json.Number `json:"current_price"`
		} `json:"market_data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode coin response: %v", ErrQuoteUnavailable, err)
	}
	raw, ok := payload.MarketData.CurrentPrice["usd"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no USD price for %s", ErrQuoteUnavailable, id)
	}
	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed price %q", ErrQuoteUnavailable, raw.String())
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive price for %s", ErrQuoteUnavailable, id)
	}
	return price, nil
}
