package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type TokenInfo struct {
	Symbol      domain.Symbol  `json:"symbol" bson:"symbol"`
	Issuer      domain.Address `json:"issuer" bson:"issuer"`
	Supply      int64          `json:"supply" bson:"supply"`
	TotalSupply int64          `json:"totalSupply" bson:"totalSupply"`
}

// Balance is one (owner, symbol) account row. Amount is a decimal string for
// lossless bson round-trips, the same convention as domain.Price.
type Balance struct {
	Owner  domain.Address `json:"owner" bson:"owner"`
	Symbol domain.Symbol  `json:"symbol" bson:"symbol"`
	Amount string         `json:"amount" bson:"amount"`
}

// AllowanceEntry records how much of owner's balance a spender may move.
type AllowanceEntry struct {
	Owner   domain.Address `json:"owner" bson:"owner"`
	Spender domain.Address `json:"spender" bson:"spender"`
	Symbol  domain.Symbol  `json:"symbol" bson:"symbol"`
	Amount  string         `json:"amount" bson:"amount"`
}

// PatchableAllowance carries the updatable fields of an AllowanceEntry. Nil
// fields are left untouched.
type PatchableAllowance struct {
	Amount *string `bson:"amount,omitempty"`
}

// Service is the asset ledger collaborator. Calls are synchronous and any
// error fails the whole request, the engine never retries.
type Service interface {
	Transfer(ctx ctx.Ctx, from, to domain.Address, symbol domain.Symbol, amount decimal.Decimal) error
	// TransferFrom moves amount out of from's balance using the allowance
	// granted to spender.
	TransferFrom(ctx ctx.Ctx, spender, from, to domain.Address, symbol domain.Symbol, amount decimal.Decimal) error
	BalanceOf(ctx ctx.Ctx, owner domain.Address, symbol domain.Symbol) (decimal.Decimal, error)
	Allowance(ctx ctx.Ctx, owner, spender domain.Address, symbol domain.Symbol) (decimal.Decimal, error)
	TokenInfo(ctx ctx.Ctx, symbol domain.Symbol) (*TokenInfo, error)
}
