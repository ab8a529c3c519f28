package listing

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type ListType string

const (
	ListTypeFixedPrice     ListType = "fixedPrice"
	ListTypeEnglishAuction ListType = "englishAuction"
	ListTypeDutchAuction   ListType = "dutchAuction"
)

// Listing is one active sell-side commitment. A listing with zero remaining
// quantity never persists, it is removed instead.
type Listing struct {
	Symbol   domain.Symbol  `json:"symbol" bson:"symbol"`
	Owner    domain.Address `json:"owner" bson:"owner"`
	ListType ListType       `json:"listType" bson:"listType"`
	Price    domain.Price   `json:"price" bson:"price"`
	Quantity int64          `json:"quantity" bson:"quantity"`
	Window   `bson:",inline"`
	// dutch auction floor price
	EndingPrice domain.Price `json:"endingPrice,omitempty" bson:"endingPrice,omitempty"`
	// english auction one-time deposit charged on a bidder's first bid
	EarnestMoney domain.Price `json:"earnestMoney,omitempty" bson:"earnestMoney,omitempty"`
}

func (l *Listing) LowerCase() {
	l.Owner = l.Owner.ToLower()
}

func (l *Listing) ToId() Id {
	return Id{
		Symbol:          l.Symbol,
		Owner:           l.Owner,
		PriceSymbol:     l.Price.Symbol,
		PriceAmount:     l.Price.Amount,
		StartTime:       l.StartTime,
		PublicTime:      l.PublicTime,
		DurationHours:   l.DurationHours,
		DurationMinutes: l.DurationMinutes,
	}
}

func (l *Listing) IsAuction() bool {
	return l.ListType == ListTypeEnglishAuction || l.ListType == ListTypeDutchAuction
}

// EndTime is the moment the listing's window closes.
func (l *Listing) EndTime() time.Time {
	return l.StartTime.Add(l.Duration())
}

// Id is the merge key. Listings for the same (owner, price, window) are
// merged by quantity instead of appended.
type Id struct {
	Symbol          domain.Symbol  `bson:"symbol"`
	Owner           domain.Address `bson:"owner"`
	PriceSymbol     domain.Symbol  `bson:"price.symbol"`
	PriceAmount     string         `bson:"price.amount"`
	StartTime       time.Time      `bson:"startTime"`
	PublicTime      time.Time      `bson:"publicTime"`
	DurationHours   int64          `bson:"durationHours"`
	DurationMinutes int64          `bson:"durationMinutes"`
}

type FindAllOptions struct {
	Symbol      *domain.Symbol
	Owner       *domain.Address
	ListType    *ListType
	PriceSymbol *domain.Symbol
	Offset      *int32
	Limit       *int32
	Sort        *string
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

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		lowered := owner.ToLower()
		options.Owner = &lowered
		return nil
	}
}

func WithListType(listType ListType) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ListType = &listType
		return nil
	}
}

func WithPriceSymbol(symbol domain.Symbol) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.PriceSymbol = &symbol
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
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	Upsert(ctx ctx.Ctx, listing *Listing) error
	// IncQuantity adjusts remaining quantity by delta and returns the updated listing
	IncQuantity(ctx ctx.Ctx, id Id, delta int64) (*Listing, error)
	Remove(ctx ctx.Ctx, id Id) error
	RemoveAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) error
}

type UseCase interface {
	// List validates and normalizes the listing, merging quantity into an
	// identical (owner, price, window) fixed-price listing when one exists.
	List(ctx ctx.Ctx, l *Listing, now time.Time) error
	// Delist removes quantity from the listing matching the exact price,
	// removing the whole record when quantity covers the remainder.
	Delist(ctx ctx.Ctx, symbol domain.Symbol, owner domain.Address, price domain.Price, quantity int64, now time.Time) error
	// TakeQuantity consumes matched units, removing the listing at zero.
	TakeQuantity(ctx ctx.Ctx, l *Listing, quantity int64, now time.Time) error
	GetListings(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}
