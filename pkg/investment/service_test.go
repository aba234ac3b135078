package investment

import (
	"context"
	"testing"

	"github.com/RSanjanaS/APP-development-C2G/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, stocks, crypto QuoteClient) *ServiceImpl {
	t.Helper()
	db := test_utils.SetupTestDB(t)
	return NewService(NewRepository(db), stocks, crypto, test_utils.TestUserProvider{})
}

func stockHolding(symbol string, quantity, buyPrice string) Holding {
	return Holding{
		Symbol:   symbol,
		Type:     AssetStock,
		Quantity: decimal.RequireFromString(quantity),
		BuyPrice: decimal.RequireFromString(buyPrice),
	}
}

func TestServiceImpl_AddHolding(t *testing.T) {
	t.Run("should store a holding and assign an id", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})

		// when
		created, err := service.AddHolding(context.Background(), stockHolding("AAPL", "10", "150"))

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		holdings, err := service.ListHoldings(context.Background())
		require.NoError(t, err)
		require.Len(t, holdings, 1)
		assert.Equal(t, "AAPL", holdings[0].Symbol)
		assert.True(t, holdings[0].Quantity.Equal(decimal.NewFromInt(10)))
	})

	t.Run("should default the name to the symbol", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})

		// when
		created, err := service.AddHolding(context.Background(), stockHolding("TSLA", "1", "200"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "TSLA", created.Name)
	})

	t.Run("should reject a holding without a symbol", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})

		// when
		_, err := service.AddHolding(context.Background(), stockHolding("  ", "1", "200"))

		// then
		assert.ErrorIs(t, err, ErrHoldingInvalid)
	})

	t.Run("should reject a non-positive quantity", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})

		// when
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "0", "150"))

		// then
		assert.ErrorIs(t, err, ErrHoldingInvalid)
	})

	t.Run("should reject an unknown asset type", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})
		holding := stockHolding("GLD", "1", "100")
		holding.Type = "commodity"

		// when
		_, err := service.AddHolding(context.Background(), holding)

		// then
		assert.ErrorIs(t, err, ErrHoldingInvalid)
	})
}

func TestServiceImpl_DeleteHolding(t *testing.T) {
	t.Run("should remove a stored holding", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})
		created, err := service.AddHolding(context.Background(), stockHolding("AAPL", "10", "150"))
		require.NoError(t, err)

		// when
		err = service.DeleteHolding(context.Background(), created.Id)

		// then
		require.NoError(t, err)
		holdings, err := service.ListHoldings(context.Background())
		require.NoError(t, err)
		assert.Empty(t, holdings)
	})

	t.Run("should report an unknown holding", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})

		// when
		err := service.DeleteHolding(context.Background(), 42)

		// then
		assert.ErrorIs(t, err, ErrHoldingNotFound)
	})
}

func TestServiceImpl_Portfolio(t *testing.T) {
	t.Run("should value each holding at its current price", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(200),
		}}
		service := setup(t, stocks, &StubQuoteClient{})
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "10", "150"))
		require.NoError(t, err)

		// when
		portfolio, err := service.Portfolio(context.Background(), "", "")

		// then
		require.NoError(t, err)
		require.Len(t, portfolio.Positions, 1)
		position := portfolio.Positions[0]
		assert.True(t, position.Value.Equal(decimal.NewFromInt(2000)), "value %s", position.Value)
		assert.True(t, position.GainLoss.Equal(decimal.NewFromInt(500)), "gain %s", position.GainLoss)
		assert.True(t, portfolio.TotalValue.Equal(decimal.NewFromInt(2000)))
		assert.True(t, portfolio.TotalInvested.Equal(decimal.NewFromInt(1500)))
		assert.True(t, portfolio.GainLoss.Equal(decimal.NewFromInt(500)))
	})

	t.Run("should quote crypto holdings through the crypto client", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Prices: map[string]decimal.Decimal{}}
		crypto := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"bitcoin": decimal.NewFromInt(50000),
		}}
		service := setup(t, stocks, crypto)
		_, err := service.AddHolding(context.Background(), Holding{
			Symbol:   "bitcoin",
			Type:     AssetCrypto,
			Quantity: decimal.RequireFromString("0.5"),
			BuyPrice: decimal.NewFromInt(40000),
		})
		require.NoError(t, err)

		// when
		portfolio, err := service.Portfolio(context.Background(), "", "")

		// then
		require.NoError(t, err)
		require.Len(t, portfolio.Positions, 1)
		assert.True(t, portfolio.Positions[0].Value.Equal(decimal.NewFromInt(25000)))
		assert.Zero(t, stocks.Calls)
		assert.Equal(t, 1, crypto.Calls)
	})

	t.Run("should compute the allocation breakdown in percent of total value", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(300),
		}}
		crypto := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"bitcoin": decimal.NewFromInt(100),
		}}
		service := setup(t, stocks, crypto)
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "1", "250"))
		require.NoError(t, err)
		_, err = service.AddHolding(context.Background(), Holding{
			Symbol:   "bitcoin",
			Type:     AssetCrypto,
			Quantity: decimal.NewFromInt(1),
			BuyPrice: decimal.NewFromInt(80),
		})
		require.NoError(t, err)

		// when
		portfolio, err := service.Portfolio(context.Background(), "", "")

		// then
		require.NoError(t, err)
		assert.True(t, portfolio.Allocation[AssetStock].Equal(decimal.RequireFromString("75")),
			"stock share %s", portfolio.Allocation[AssetStock])
		assert.True(t, portfolio.Allocation[AssetCrypto].Equal(decimal.RequireFromString("25")),
			"crypto share %s", portfolio.Allocation[AssetCrypto])
	})

	t.Run("should filter positions by asset type but keep totals over all holdings", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(300),
		}}
		crypto := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"bitcoin": decimal.NewFromInt(100),
		}}
		service := setup(t, stocks, crypto)
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "1", "250"))
		require.NoError(t, err)
		_, err = service.AddHolding(context.Background(), Holding{
			Symbol:   "bitcoin",
			Type:     AssetCrypto,
			Quantity: decimal.NewFromInt(1),
			BuyPrice: decimal.NewFromInt(80),
		})
		require.NoError(t, err)

		// when
		portfolio, err := service.Portfolio(context.Background(), AssetCrypto, "")

		// then
		require.NoError(t, err)
		require.Len(t, portfolio.Positions, 1)
		assert.Equal(t, "bitcoin", portfolio.Positions[0].Symbol)
		assert.True(t, portfolio.TotalValue.Equal(decimal.NewFromInt(400)))
	})

	t.Run("should sort positions by price descending", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(200),
			"TSLA": decimal.NewFromInt(500),
		}}
		service := setup(t, stocks, &StubQuoteClient{})
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "1", "150"))
		require.NoError(t, err)
		_, err = service.AddHolding(context.Background(), stockHolding("TSLA", "1", "400"))
		require.NoError(t, err)

		// when
		portfolio, err := service.Portfolio(context.Background(), "", SortByPrice)

		// then
		require.NoError(t, err)
		require.Len(t, portfolio.Positions, 2)
		assert.Equal(t, "TSLA", portfolio.Positions[0].Symbol)
		assert.Equal(t, "AAPL", portfolio.Positions[1].Symbol)
	})

	t.Run("should sort positions by gain descending", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Prices: map[string]decimal.Decimal{
			"AAPL": decimal.NewFromInt(200),
			"TSLA": decimal.NewFromInt(500),
		}}
		service := setup(t, stocks, &StubQuoteClient{})
		// AAPL gains 100, TSLA loses 100
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "1", "100"))
		require.NoError(t, err)
		_, err = service.AddHolding(context.Background(), stockHolding("TSLA", "1", "600"))
		require.NoError(t, err)

		// when
		portfolio, err := service.Portfolio(context.Background(), "", SortByGain)

		// then
		require.NoError(t, err)
		require.Len(t, portfolio.Positions, 2)
		assert.Equal(t, "AAPL", portfolio.Positions[0].Symbol)
		assert.Equal(t, "TSLA", portfolio.Positions[1].Symbol)
	})

	t.Run("should fail when any quote is unavailable", func(t *testing.T) {
		// given
		stocks := &StubQuoteClient{Err: ErrQuoteUnavailable}
		service := setup(t, stocks, &StubQuoteClient{})
		_, err := service.AddHolding(context.Background(), stockHolding("AAPL", "1", "100"))
		require.NoError(t, err)

		// when
		_, err = service.Portfolio(context.Background(), "", "")

		// then
		assert.ErrorIs(t, err, ErrQuoteUnavailable)
	})

	t.Run("should return an empty portfolio when nothing is held", func(t *testing.T) {
		// given
		service := setup(t, &StubQuoteClient{}, &StubQuoteClient{})

		// when
		portfolio, err := service.Portfolio(context.Background(), "", "")

		// then
		require.NoError(t, err)
		assert.Empty(t, portfolio.Positions)
		assert.True(t, portfolio.TotalValue.IsZero())
		assert.Empty(t, portfolio.Allocation)
	})
}
