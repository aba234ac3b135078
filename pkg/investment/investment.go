package investment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrHoldingInvalid = errors.New("holding is invalid")

type AssetType string

const (
	AssetStock  AssetType = "stock"
	AssetCrypto AssetType = "crypto"
)

// Holding is an asset the user owns: a quantity bought at a price. Stocks are
// identified by their ticker symbol, crypto assets by their CoinGecko id.
type Holding struct {
	Id       int
	Symbol   string
	Name     string
	Type     AssetType
	Quantity decimal.Decimal
	BuyPrice decimal.Decimal
}

func (h *Holding) Validate() error {
	h.Symbol = strings.TrimSpace(h.Symbol)
	if h.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrHoldingInvalid)
	}
	if h.Name == "" {
		h.Name = h.Symbol
	}
	switch h.Type {
	case AssetStock, AssetCrypto:
	default:
		return fmt.Errorf("%w: unknown asset type %q", ErrHoldingInvalid, h.Type)
	}
	if !h.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive", ErrHoldingInvalid)
	}
	if h.BuyPrice.IsNegative() {
		return fmt.Errorf("%w: buy price cannot be negative", ErrHoldingInvalid)
	}
	return nil
}

// Cost is the amount originally invested in the holding.
func (h Holding) Cost() decimal.Decimal {
	return h.Quantity.Mul(h.BuyPrice)
}

// Position is a holding valued at its current market price.
type Position struct {
	Holding
	Price    decimal.Decimal
	Value    decimal.Decimal
	GainLoss decimal.Decimal
}

// Portfolio aggregates every position of the user. Totals always cover all
// holdings even when the position list was filtered by asset type.
type Portfolio struct {
	Positions     []Position
	TotalValue    decimal.Decimal
	TotalInvested decimal.Decimal
	GainLoss      decimal.Decimal
	Allocation    map[AssetType]decimal.Decimal
}
