package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is a month's worth of transfers with per-category totals.
type Statement struct {
	From          time.Time
	To            time.Time
	Lines         []Line
	CategoryTotal map[string]decimal.Decimal
	Total         decimal.Decimal
}

type Line struct {
	Date         time.Time
	Counterparty string
	Category     string
	Amount       decimal.Decimal
}
