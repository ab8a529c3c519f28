package offer

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// Offer is a standing buy-side commitment recorded when no immediate match
// occurs. Offers for the same (symbol, from, to) with identical price and
// expiry are merged by summing quantity; quantity never persists at zero.
type Offer struct {
	Symbol     domain.Symbol  `json:"symbol" bson:"symbol"`
	From       domain.Address `json:"from" bson:"from"`
	To         domain.Address `json:"to" bson:"to"`
	Price      domain.Price   `json:"price" bson:"price"`
	Quantity   int64          `json:"quantity" bson:"quantity"`
	ExpireTime time.Time      `json:"expireTime" bson:"expireTime"`
}

func (o *Offer) LowerCase() {
	o.From = o.From.ToLower()
	o.To = o.To.ToLower()
}

func (o *Offer) ToId() Id {
	return Id{
		Symbol:      o.Symbol,
		From:        o.From,
		To:          o.To,
		PriceSymbol: o.Price.Symbol,
		PriceAmount: o.Price.Amount,
		ExpireTime:  o.ExpireTime,
	}
}

func (o *Offer) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpireTime)
}

type Id struct {
	Symbol      domain.Symbol  `bson:"symbol"`
	From        domain.Address `bson:"from"`
	To          domain.Address `bson:"to"`
	PriceSymbol domain.Symbol  `bson:"price.symbol"`
	PriceAmount string         `bson:"price.amount"`
	ExpireTime  time.Time      `bson:"expireTime"`
}

type FindAllOptions struct {
	Symbol       *domain.Symbol
	From         *domain.Address
	To           *domain.Address
	ExpireTimeLT *time.Time
	Offset       *int32
	Limit        *int32
	Sort         *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithSymbol(symbol domain.Symbol) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Symbol = &symbol
		return nil
	}
}

func WithFrom(from domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		lowered := from.ToLower()
		options.From = &lowered
		return nil
	}
}

func WithTo(to domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		lowered := to.ToLower()
		options.To = &lowered
		return nil
	}
}

func WithExpireTimeLT(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ExpireTimeLT = &t
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithSort(sort string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Sort = &sort
		return nil
	}
}

type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
	FindOne(ctx ctx.Ctx, id Id) (*Offer, error)
	Upsert(ctx ctx.Ctx, offer *Offer) error
	// IncQuantity adjusts quantity by delta and returns the updated offer
	IncQuantity(ctx ctx.Ctx, id Id, delta int64) (*Offer, error)
	Remove(ctx ctx.Ctx, id Id) error
	RemoveAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) error
}

// Bid is an auction-specific offer, exactly one live per (symbol, bidder).
// A superseding bid overwrites the previous one. PaidEarnest marks that the
// one-time earnest deposit has been collected from this bidder.
type Bid struct {
	Symbol      domain.Symbol  `json:"symbol" bson:"symbol"`
	Bidder      domain.Address `json:"bidder" bson:"bidder"`
	Price       domain.Price   `json:"price" bson:"price"`
	ExpireTime  time.Time      `json:"expireTime" bson:"expireTime"`
	PaidEarnest bool           `json:"paidEarnest" bson:"paidEarnest"`
}

func (b *Bid) ToId() BidId {
	return BidId{Symbol: b.Symbol, Bidder: b.Bidder}
}

type BidId struct {
	Symbol domain.Symbol  `bson:"symbol"`
	Bidder domain.Address `bson:"bidder"`
}

type BidRepo interface {
	FindAll(ctx ctx.Ctx, symbol domain.Symbol) ([]*Bid, error)
	FindOne(ctx ctx.Ctx, id BidId) (*Bid, error)
	Upsert(ctx ctx.Ctx, bid *Bid) error
	Remove(ctx ctx.Ctx, id BidId) error
	RemoveAll(ctx ctx.Ctx, symbol domain.Symbol) error
}

type UseCase interface {
	// Upsert merges quantity into an identical standing offer or inserts a
	// new one, emitting OfferAdded or OfferChanged accordingly.
	Upsert(ctx ctx.Ctx, o *Offer, now time.Time) error
	// TakeQuantity consumes matched units, removing the offer at zero.
	TakeQuantity(ctx ctx.Ctx, o *Offer, quantity int64, now time.Time) error
	// CancelIndices removes the caller's offers addressed by index into the
	// expiry-ordered (symbol, from[, to]) offer list. Unknown indices no-op.
	CancelIndices(ctx ctx.Ctx, symbol domain.Symbol, from domain.Address, to *domain.Address, indices []int, now time.Time) error
	// PurgeExpired removes offers of (symbol, from) already expired at now.
	// Matching nothing is a no-op, not an error.
	PurgeExpired(ctx ctx.Ctx, symbol domain.Symbol, from domain.Address, now time.Time) error
	GetOffers(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Offer, error)
}
