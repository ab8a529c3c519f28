package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
	"github.com/x-xyz/marketplace/domain/listing"
)

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	EventRepo   exchange.EventRepo
}

type impl struct {
	listingRepo listing.Repo
	eventRepo   exchange.EventRepo
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo: cfg.ListingRepo,
		eventRepo:   cfg.EventRepo,
	}
}

func (im *impl) List(ctx ctx.Ctx, l *listing.Listing, now time.Time) error {
	price, err := l.Price.Decimal()
	if err != nil {
		return err
	}
	if !price.IsPositive() {
		return domain.ErrInvalidPrice
	}
	if l.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	l.LowerCase()
	l.Window = listing.NormalizeWindow(&l.Window, now)

	existing, err := im.listingRepo.FindOne(ctx, l.ToId())
	if err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  l.ToId(),
		}).Error("listingRepo.FindOne failed")
		return err
	}

	if existing != nil {
		// a live auction record must go through Delist, upserting over it
		// would drop its bids and earnest accounting
		if existing.IsAuction() {
			return domain.ErrAuctionInProgress
		}
		if l.IsAuction() {
			return domain.ErrConflict
		}
		// identical (owner, price, window) listing, merge by quantity
		updated, err := im.listingRepo.IncQuantity(ctx, l.ToId(), l.Quantity)
		if err != nil {
			return err
		}
		return im.emit(ctx, exchange.EventListedNFTChanged, updated, now)
	}

	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return err
	}
	return im.emit(ctx, exchange.EventListedNFTAdded, l, now)
}

func (im *impl) Delist(ctx ctx.Ctx, symbol domain.Symbol, owner domain.Address, price domain.Price, quantity int64, now time.Time) error {
	listings, err := im.listingRepo.FindAll(ctx, listing.WithSymbol(symbol), listing.WithOwner(owner))
	if err != nil {
		return err
	}

	for _, l := range listings {
		if !l.Price.Equals(price) {
			continue
		}
		if quantity >= l.Quantity || l.IsAuction() {
			if err := im.listingRepo.Remove(ctx, l.ToId()); err != nil {
				return err
			}
			return im.emit(ctx, exchange.EventListedNFTRemoved, l, now)
		}
		updated, err := im.listingRepo.IncQuantity(ctx, l.ToId(), -quantity)
		if err != nil {
			return err
		}
		return im.emit(ctx, exchange.EventListedNFTChanged, updated, now)
	}

	return domain.ErrListingNotFound
}

func (im *impl) TakeQuantity(ctx ctx.Ctx, l *listing.Listing, quantity int64, now time.Time) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if quantity > l.Quantity {
		return domain.ErrInvalidQuantity
	}

	if quantity == l.Quantity {
		// a listing never persists with zero remaining quantity
		if err := im.listingRepo.Remove(ctx, l.ToId()); err != nil {
			return err
		}
		l.Quantity = 0
		return im.emit(ctx, exchange.EventListedNFTRemoved, l, now)
	}

	updated, err := im.listingRepo.IncQuantity(ctx, l.ToId(), -quantity)
	if err != nil {
		return err
	}
	l.Quantity = updated.Quantity
	return im.emit(ctx, exchange.EventListedNFTChanged, updated, now)
}

func (im *impl) GetListings(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	res, err := im.listingRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("listingRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) emit(ctx ctx.Ctx, typ exchange.EventType, l *listing.Listing, now time.Time) error {
	event := &exchange.Event{
		Id:       uuid.NewString(),
		Type:     typ,
		Symbol:   l.Symbol,
		Owner:    l.Owner,
		Price:    l.Price,
		Quantity: l.Quantity,
		Time:     now,
	}
	if err := im.eventRepo.Insert(ctx, event); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": event,
		}).Error("eventRepo.Insert failed")
		return err
	}
	return nil
}
