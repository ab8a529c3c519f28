package exchange

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type EventType string

const (
	EventListedNFTAdded   EventType = "ListedNFTAdded"
	EventListedNFTChanged EventType = "ListedNFTChanged"
	EventListedNFTRemoved EventType = "ListedNFTRemoved"
	EventOfferAdded       EventType = "OfferAdded"
	EventOfferChanged     EventType = "OfferChanged"
	EventOfferRemoved     EventType = "OfferRemoved"
	EventSold             EventType = "Sold"
	EventBidPlaced        EventType = "BidPlaced"
)

// Event is one emitted marketplace event. For Sold events both legs are
// recorded: Quantity units of Symbol against PayAmount of Price.Symbol, with
// ServiceFee already deducted from the seller proceeds.
type Event struct {
	Id       string         `json:"id" bson:"id"`
	Type     EventType      `json:"type" bson:"type"`
	Symbol   domain.Symbol  `json:"symbol" bson:"symbol"`
	Owner    domain.Address `json:"owner,omitempty" bson:"owner,omitempty"`
	From     domain.Address `json:"from,omitempty" bson:"from,omitempty"`
	To       domain.Address `json:"to,omitempty" bson:"to,omitempty"`
	Price    domain.Price   `json:"price,omitempty" bson:"price,omitempty"`
	Quantity int64          `json:"quantity,omitempty" bson:"quantity,omitempty"`
	// total payment of the sold deal, in Price.Symbol
	PayAmount string `json:"payAmount,omitempty" bson:"payAmount,omitempty"`
	// marketplace fee withheld from PayAmount
	ServiceFee string    `json:"serviceFee,omitempty" bson:"serviceFee,omitempty"`
	Time       time.Time `json:"time" bson:"time"`
}

type EventFindAllOptions struct {
	Symbol *domain.Symbol
	Type   *EventType
	Offset *int32
	Limit  *int32
}

type EventFindAllOptionsFunc func(*EventFindAllOptions) error

func GetEventFindAllOptions(opts ...EventFindAllOptionsFunc) (EventFindAllOptions, error) {
	res := EventFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func EventWithSymbol(symbol domain.Symbol) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Symbol = &symbol
		return nil
	}
}

func EventWithType(t EventType) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Type = &t
		return nil
	}
}

func EventWithPagination(offset int32, limit int32) EventFindAllOptionsFunc {
	return func(options *EventFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type EventRepo interface {
	Insert(ctx ctx.Ctx, event *Event) error
	FindAll(ctx ctx.Ctx, opts ...EventFindAllOptionsFunc) ([]*Event, error)
}
