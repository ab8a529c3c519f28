package usecase

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/whitelist"
)

type PriceGateCfg struct {
	Whitelist whitelist.Service
}

type impl struct {
	whitelist whitelist.Service
}

func New(cfg *PriceGateCfg) whitelist.PriceGate {
	return &impl{
		whitelist: cfg.Whitelist,
	}
}

func (im *impl) EntitledPrice(ctx ctx.Ctx, symbol domain.Symbol, seller, caller domain.Address) (*domain.Price, error) {
	listId := whitelist.ProjectId(symbol, seller)

	available, err := im.whitelist.IsAvailable(ctx, listId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"listId": listId,
		}).Error("whitelist.IsAvailable failed")
		return nil, err
	}
	if !available {
		return nil, nil
	}

	ok, err := im.whitelist.IsAddressInWhitelist(ctx, caller, listId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"listId": listId,
			"caller": caller,
		}).Error("whitelist.IsAddressInWhitelist failed")
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	tag, err := im.whitelist.PriceTagFor(ctx, caller, listId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"listId": listId,
			"caller": caller,
		}).Error("whitelist.PriceTagFor failed")
		return nil, err
	}
	return tag, nil
}

func (im *impl) Consume(ctx ctx.Ctx, caller domain.Address, symbol domain.Symbol, seller domain.Address) error {
	listId := whitelist.ProjectId(symbol, seller)
	if err := im.whitelist.Consume(ctx, caller, listId); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"listId": listId,
			"caller": caller,
		}).Error("whitelist.Consume failed")
		return err
	}
	return nil
}
