package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
)

type Table string

const (
	TableListings     Table = "listings"
	TableOffers       Table = "offers"
	TableBids         Table = "bids"
	TableMarketEvents Table = "market_events"
	TableBalances     Table = "balances"
	TableAllowances   Table = "allowances"
	TableTokens       Table = "tokens"
	TableWhitelists   Table = "whitelists"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type Symbol string

func (s Symbol) IsEmpty() bool {
	return len(s) == 0
}

// Price is a unit price denominated in a payment token. Amount is kept as a
// decimal string so it round-trips through bson/json without precision loss.
type Price struct {
	Symbol Symbol `json:"symbol" bson:"symbol"`
	Amount string `json:"amount" bson:"amount"`
}

func NewPrice(symbol Symbol, amount decimal.Decimal) Price {
	return Price{Symbol: symbol, Amount: amount.String()}
}

func (p Price) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return decimal.Zero, ErrInvalidNumberFormat
	}
	return d, nil
}

func (p Price) IsZero() bool {
	if len(p.Amount) == 0 {
		return true
	}
	d, err := p.Decimal()
	return err == nil && d.IsZero()
}

func (p Price) Equals(o Price) bool {
	if p.Symbol != o.Symbol {
		return false
	}
	a, err := p.Decimal()
	if err != nil {
		return false
	}
	b, err := o.Decimal()
	if err != nil {
		return false
	}
	return a.Equal(b)
}

// TxRunner runs a function inside a storage transaction. Every state-changing
// request executes all of its mutations through one TxRunner call so a failed
// precondition leaves the stores untouched.
type TxRunner interface {
	RunWithTransaction(ctx.Ctx, func(ctx.Ctx) error) error
}
