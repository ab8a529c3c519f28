package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
	"github.com/x-xyz/marketplace/domain/offer"
)

type OfferUseCaseCfg struct {
	OfferRepo offer.Repo
	EventRepo exchange.EventRepo
}

type impl struct {
	offerRepo offer.Repo
	eventRepo exchange.EventRepo
}

func New(cfg *OfferUseCaseCfg) offer.UseCase {
	return &impl{
		offerRepo: cfg.OfferRepo,
		eventRepo: cfg.EventRepo,
	}
}

func (im *impl) Upsert(ctx ctx.Ctx, o *offer.Offer, now time.Time) error {
	if o.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	o.LowerCase()

	existing, err := im.offerRepo.FindOne(ctx, o.ToId())
	if err != nil && err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  o.ToId(),
		}).Error("offerRepo.FindOne failed")
		return err
	}

	if existing != nil {
		// identical (from, to, price, expiry) offer, merge by quantity
		updated, err := im.offerRepo.IncQuantity(ctx, o.ToId(), o.Quantity)
		if err != nil {
			return err
		}
		return im.emit(ctx, exchange.EventOfferChanged, updated, now)
	}

	if err := im.offerRepo.Upsert(ctx, o); err != nil {
		return err
	}
	return im.emit(ctx, exchange.EventOfferAdded, o, now)
}

func (im *impl) TakeQuantity(ctx ctx.Ctx, o *offer.Offer, quantity int64, now time.Time) error {
	if quantity <= 0 || quantity > o.Quantity {
		return domain.ErrInvalidQuantity
	}

	if quantity == o.Quantity {
		// an offer never persists with zero quantity
		if err := im.offerRepo.Remove(ctx, o.ToId()); err != nil {
			return err
		}
		o.Quantity = 0
		return im.emit(ctx, exchange.EventOfferRemoved, o, now)
	}

	updated, err := im.offerRepo.IncQuantity(ctx, o.ToId(), -quantity)
	if err != nil {
		return err
	}
	o.Quantity = updated.Quantity
	return im.emit(ctx, exchange.EventOfferChanged, updated, now)
}

func (im *impl) CancelIndices(ctx ctx.Ctx, symbol domain.Symbol, from domain.Address, to *domain.Address, indices []int, now time.Time) error {
	opts := []offer.FindAllOptionsFunc{
		offer.WithSymbol(symbol),
		offer.WithFrom(from),
	}
	if to != nil {
		opts = append(opts, offer.WithTo(*to))
	}

	offers, err := im.offerRepo.FindAll(ctx, opts...)
	if err != nil {
		return err
	}

	for _, idx := range indices {
		if idx < 0 || idx >= len(offers) {
			continue
		}
		o := offers[idx]
		if err := im.offerRepo.Remove(ctx, o.ToId()); err != nil {
			return err
		}
		if err := im.emit(ctx, exchange.EventOfferRemoved, o, now); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) PurgeExpired(ctx ctx.Ctx, symbol domain.Symbol, from domain.Address, now time.Time) error {
	offers, err := im.offerRepo.FindAll(ctx,
		offer.WithSymbol(symbol),
		offer.WithFrom(from),
		offer.WithExpireTimeLT(now),
	)
	if err != nil {
		return err
	}

	// matching nothing is a no-op, not an error
	for _, o := range offers {
		if err := im.offerRepo.Remove(ctx, o.ToId()); err != nil {
			return err
		}
		if err := im.emit(ctx, exchange.EventOfferRemoved, o, now); err != nil {
			return err
		}
	}
	return nil
}

func (im *impl) GetOffers(ctx ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	res, err := im.offerRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("offerRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) emit(ctx ctx.Ctx, typ exchange.EventType, o *offer.Offer, now time.Time) error {
	event := &exchange.Event{
		Id:       uuid.NewString(),
		Type:     typ,
		Symbol:   o.Symbol,
		From:     o.From,
		To:       o.To,
		Price:    o.Price,
		Quantity: o.Quantity,
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
