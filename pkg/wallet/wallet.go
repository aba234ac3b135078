package wallet

import "github.com/shopspring/decimal"

type Card struct {
	Id           int
	MaskedNumber string
	Brand        string
	Balance      decimal.Decimal
	Color        string
}
