package investment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type StubQuoteClient struct {
	Prices map[string]decimal.Decimal
	Err    error
	Calls  int
}

func (s *StubQuoteClient) Quote(_ context.Context, symbol string) (decimal.Decimal, error) {
	s.Calls++
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	price, ok := s.Prices[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no quote for %s", ErrQuoteUnavailable, symbol)
	}
	return price, nil
}
