package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

type StubRateClient struct {
	RateValue decimal.Decimal
	Err       error
	Calls     int
}

func (s *StubRateClient) Rate(_ context.Context, _, _ string) (decimal.Decimal, error) {
	s.Calls++
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	return s.RateValue, nil
}
