package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RSanjanaS/APP-development-C2G/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_Convert(t *testing.T) {
	feePercent := decimal.NewFromInt(2)

	t.Run("should apply the rate and deduct the fee", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		primary := &StubRateClient{RateValue: decimal.RequireFromString("0.012")}
		service := NewService(primary, nil, NewRepository(db), test_utils.TestUserProvider{}, feePercent)

		// when
		conversion, err := service.Convert(context.Background(), "INR", "USD", decimal.NewFromInt(10000))

		// then
		require.NoError(t, err)
		// gross 120, fee 2.40, net 117.60
		assert.True(t, conversion.Fee.Equal(decimal.RequireFromString("2.4")), "fee %s", conversion.Fee)
		assert.True(t, conversion.Converted.Equal(decimal.RequireFromString("117.6")), "converted %s", conversion.Converted)
	})

	t.Run("should fall back to the secondary source when the primary fails", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		primary := &StubRateClient{Err: ErrRateUnavailable}
		fallback := &StubRateClient{RateValue: decimal.RequireFromString("0.011")}
		service := NewService(primary, fallback, NewRepository(db), test_utils.TestUserProvider{}, feePercent)

		// when
		conversion, err := service.Convert(context.Background(), "INR", "USD", decimal.NewFromInt(1000))

		// then
		require.NoError(t, err)
		assert.True(t, conversion.Rate.Equal(decimal.RequireFromString("0.011")))
	})

	t.Run("should fail when both sources are down", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		primary := &StubRateClient{Err: ErrRateUnavailable}
		fallback := &StubRateClient{Err: ErrRateUnavailable}
		service := NewService(primary, fallback, NewRepository(db), test_utils.TestUserProvider{}, feePercent)

		// when
		_, err := service.Convert(context.Background(), "INR", "USD", decimal.NewFromInt(1000))

		// then
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		service := NewService(&StubRateClient{}, nil, NewRepository(db), test_utils.TestUserProvider{}, feePercent)

		// when
		_, err := service.Convert(context.Background(), "INR", "USD", decimal.Zero)

		// then
		assert.ErrorIs(t, err, ErrConversionInvalid)
	})

	t.Run("should record conversions in the history, newest first", func(t *testing.T) {
		// given
		db := test_utils.SetupTestDB(t)
		primary := &StubRateClient{RateValue: decimal.RequireFromString("0.012")}
		service := NewService(primary, nil, NewRepository(db), test_utils.TestUserProvider{}, feePercent)
		_, err := service.Convert(context.Background(), "INR", "USD", decimal.NewFromInt(100))
		require.NoError(t, err)
		_, err = service.Convert(context.Background(), "INR", "EUR", decimal.NewFromInt(200))
		require.NoError(t, err)

		// when
		history, err := service.History(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, "EUR", history[0].To)
		assert.Equal(t, "USD", history[1].To)
	})
}

func TestRateAPIClient(t *testing.T) {
	t.Run("should extract the requested rate", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/INR", r.URL.Path)
			w.Write([]byte(`{"base":"INR","rates":{"USD":0.012,"EUR":0.011}}`))
		}))
		defer server.Close()
		client := NewRateAPIClient(server.URL)

		// when
		rate, err := client.Rate(context.Background(), "INR", "USD")

		// then
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("0.012")))
	})

	t.Run("should report an unknown target currency", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"base":"INR","rates":{"USD":0.012}}`))
		}))
		defer server.Close()
		client := NewRateAPIClient(server.URL)

		// when
		_, err := client.Rate(context.Background(), "INR", "XYZ")

		// then
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("should report an upstream error status", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()
		client := NewRateAPIClient(server.URL)

		// when
		_, err := client.Rate(context.Background(), "INR", "USD")

		// then
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})
}

func TestCBRClient(t *testing.T) {
	cbrXML := `<?xml version="1.0" encoding="windows-1251"?>
<ValCurs Date="01.09.2026" name="Foreign Currency Market">
  <Valute ID="R01235">
    <NumCode>840</NumCode>
    <CharCode>USD</CharCode>
    <Nominal>1</Nominal>
    <Name>Доллар США</Name>
    <Value>90,0000</Value>
  </Valute>
  <Valute ID="R01270">
    <NumCode>356</NumCode>
    <CharCode>INR</CharCode>
    <Nominal>100</Nominal>
    <Name>Индийских рупий</Name>
    <Value>108,0000</Value>
  </Valute>
</ValCurs>`

	t.Run("should derive cross rates through the ruble", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(cbrXML))
		}))
		defer server.Close()
		client := NewCBRClient(server.URL)

		// when
		rate, err := client.Rate(context.Background(), "INR", "USD")

		// then
		require.NoError(t, err)
		// 1 INR = 1.08 RUB, 1 USD = 90 RUB, so 1 INR = 0.012 USD
		assert.True(t, rate.Equal(decimal.RequireFromString("0.012")), "got %s", rate)
	})

	t.Run("should convert to rubles directly", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(cbrXML))
		}))
		defer server.Close()
		client := NewCBRClient(server.URL)

		// when
		rate, err := client.Rate(context.Background(), "USD", "RUB")

		// then
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.NewFromInt(90)))
	})

	t.Run("should report a currency the feed does not carry", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(cbrXML))
		}))
		defer server.Close()
		client := NewCBRClient(server.URL)

		// when
		_, err := client.Rate(context.Background(), "INR", "GBP")

		// then
		assert.ErrorIs(t, err, ErrRateUnavailable)
	})
}
