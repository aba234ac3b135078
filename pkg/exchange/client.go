package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrRateUnavailable = errors.New("exchange rate unavailable")

// RateClient resolves the rate for converting one unit of from into to.
type RateClient interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// RateAPIClient fetches rates from exchangerate-api, which serves a JSON
// document of rates against a base currency.
type RateAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewRateAPIClient(baseURL string) *RateAPIClient {
	return &RateAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *RateAPIClient) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.ToUpper(from))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warnf("Rate API request failed: %v", err)
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: rate API returned status %d", ErrRateUnavailable, resp.StatusCode)
	}

	var payload struct {
		Rates map[string]json.Number `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to decode rate response: %v", ErrRateUnavailable, err)
	}
	raw, ok := payload.Rates[strings.ToUpper(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s", ErrRateUnavailable, to)
	}
	rate, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed rate %q", ErrRateUnavailable, raw.String())
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate for %s", ErrRateUnavailable, to)
	}
	return rate, nil
}

// CBRClient fetches the Central Bank of Russia daily rates XML and derives
// cross rates through the ruble.
type CBRClient struct {
	url    string
	client *http.Client
}

func NewCBRClient(url string) *CBRClient {
	return &CBRClient{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *CBRClient) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build CBR request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warnf("CBR request failed: %v", err)
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: CBR returned status %d", ErrRateUnavailable, resp.StatusCode)
	}

	doc := etree.NewDocument()
	// the feed declares windows-1251; the elements we read are ASCII
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to parse CBR XML: %v", ErrRateUnavailable, err)
	}

	rubPerUnit := map[string]decimal.Decimal{"RUB": decimal.NewFromInt(1)}
	for _, valute := range doc.FindElements("//ValCurs/Valute") {
		code := valute.SelectElement("CharCode")
		nominal := valute.SelectElement("Nominal")
		value := valute.SelectElement("Value")
		if code == nil || nominal == nil || value == nil {
			continue
		}
		// CBR uses a comma as the decimal separator
		rate, err := decimal.NewFromString(strings.ReplaceAll(value.Text(), ",", "."))
		if err != nil {
			continue
		}
		nom, err := decimal.NewFromString(nominal.Text())
		if err != nil || nom.IsZero() {
			continue
		}
		rubPerUnit[strings.ToUpper(code.Text())] = rate.Div(nom)
	}

	fromRub, ok := rubPerUnit[strings.ToUpper(from)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: CBR has no rate for %s", ErrRateUnavailable, from)
	}
	toRub, ok := rubPerUnit[strings.ToUpper(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: CBR has no rate for %s", ErrRateUnavailable, to)
	}
	return fromRub.Div(toRub), nil
}
