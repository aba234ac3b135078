package investment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooClient_Quote(t *testing.T) {
	t.Run("should return the regular market price", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v7/finance/quote", r.URL.Path)
			assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
			w.Write([]byte(`{"quoteResponse":{"result":[{"regularMarketPrice":227.63}]}}`))
		}))
		defer server.Close()
		client := NewYahooClient(server.URL)

		// when
		price, err := client.Quote(context.Background(), "aapl")

		// then
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.RequireFromString("227.63")), "price %s", price)
	})

	t.Run("should fail when the symbol is unknown", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteResponse":{"result":[]}}`))
		}))
		defer server.Close()
		client := NewYahooClient(server.URL)

		// when
		_, err := client.Quote(context.Background(), "NOPE")

		// then
		assert.ErrorIs(t, err, ErrQuoteUnavailable)
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()
		client := NewYahooClient(server.URL)

		// when
		_, err := client.Quote(context.Background(), "AAPL")

		// then
		assert.ErrorIs(t, err, ErrQuoteUnavailable)
	})
}

func TestCoinGeckoClient_Quote(t *testing.T) {
	t.Run("should return the current USD price of the coin", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/coins/bitcoin", r.URL.Path)
			w.Write([]byte(`{"market_data":{"current_price":{"usd":50123.45,"eur":46000.1}}}`))
		}))
		defer server.Close()
		client := NewCoinGeckoClient(server.URL)

		// when
		price, err := client.Quote(context.Background(), "Bitcoin")

		// then
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.RequireFromString("50123.45")), "price %s", price)
	})

	t.Run("should fail when the USD price is missing", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"market_data":{"current_price":{"eur":46000.1}}}`))
		}))
		defer server.Close()
		client := NewCoinGeckoClient(server.URL)

		// when
		_, err := client.Quote(context.Background(), "bitcoin")

		// then
		assert.ErrorIs(t, err, ErrQuoteUnavailable)
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()
		client := NewCoinGeckoClient(server.URL)

		// when
		_, err := client.Quote(context.Background(), "dogless-coin")

		// then
		assert.ErrorIs(t, err, ErrQuoteUnavailable)
	})
}
