package exchange

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/domain/offer"
)

// Cfg is the marketplace configuration injected at construction. It is never
// read through ambient state.
type Cfg struct {
	FeeRateBp          int64
	FeeReceiver        domain.Address
	Admin              domain.Address
	DefaultOfferExpire time.Duration
}

type ListFixedPriceRequest struct {
	Symbol   domain.Symbol
	Owner    domain.Address
	Price    domain.Price
	Quantity int64
	Window   *listing.Window
}

type ListEnglishAuctionRequest struct {
	Symbol        domain.Symbol
	Owner         domain.Address
	StartingPrice domain.Price
	EarnestMoney  domain.Price
	Quantity      int64
	Window        *listing.Window
}

type ListDutchAuctionRequest struct {
	Symbol        domain.Symbol
	Owner         domain.Address
	StartingPrice domain.Price
	EndingPrice   domain.Price
	Quantity      int64
	Window        *listing.Window
}

type DelistRequest struct {
	Symbol   domain.Symbol
	Owner    domain.Address
	Price    *domain.Price
	Quantity int64
}

type MakeOfferRequest struct {
	Symbol   domain.Symbol
	From     domain.Address
	// To is the target seller; resolved to the asset issuer when empty.
	To         domain.Address
	Price      domain.Price
	Quantity   int64
	ExpireTime time.Time
}

type CancelOfferRequest struct {
	Symbol domain.Symbol
	Caller domain.Address
	// OfferFrom is the offer owner; differs from Caller only on the admin
	// expired-offer purge path.
	OfferFrom domain.Address
	To        *domain.Address
	Indices   []int
	CancelBid bool
}

type DealRequest struct {
	Symbol    domain.Symbol
	Seller    domain.Address
	OfferFrom domain.Address
	Price     domain.Price
	Quantity  int64
}

// AuctionInfo describes a live auction listing plus derived pricing.
type AuctionInfo struct {
	Listing *listing.Listing `json:"listing"`
	// highest standing bid, nil when nobody has bid yet
	HighestBid *domain.Price `json:"highestBid,omitempty"`
	// current acceptable price: dutch curve price, or english minimum bid
	CurrentPrice domain.Price `json:"currentPrice"`
}

// UseCase sequences the listing store, offer store, allow-list gate, matcher
// and settlement per request. Each entry point is one state-changing
// operation reading the current time once.
type UseCase interface {
	ListWithFixedPrice(ctx ctx.Ctx, req *ListFixedPriceRequest) error
	ListWithEnglishAuction(ctx ctx.Ctx, req *ListEnglishAuctionRequest) error
	ListWithDutchAuction(ctx ctx.Ctx, req *ListDutchAuctionRequest) error
	Delist(ctx ctx.Ctx, req *DelistRequest) error
	MakeOffer(ctx ctx.Ctx, req *MakeOfferRequest) error
	CancelOffer(ctx ctx.Ctx, req *CancelOfferRequest) error
	Deal(ctx ctx.Ctx, req *DealRequest) error

	GetAuctionInfo(ctx ctx.Ctx, symbol domain.Symbol, owner domain.Address) (*AuctionInfo, error)
	GetBids(ctx ctx.Ctx, symbol domain.Symbol) ([]*offer.Bid, error)
}
