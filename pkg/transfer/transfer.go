package transfer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transfer struct {
	Id           int
	Counterparty string
	Amount       decimal.Decimal
	Category     string
	CreatedAt    time.Time
}
