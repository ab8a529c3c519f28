package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) exchange.EventRepo {
	return &impl{q}
}

func (im *impl) Insert(ctx ctx.Ctx, event *exchange.Event) error {
	if err := im.q.Insert(ctx, domain.TableMarketEvents, event); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": event,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...exchange.EventFindAllOptionsFunc) ([]*exchange.Event, error) {
	options, err := exchange.GetEventFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if options.Symbol != nil {
		query["symbol"] = *options.Symbol
	}
	if options.Type != nil {
		query["type"] = *options.Type
	}

	offset := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}

	limit := 0
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*exchange.Event{}
	if err := im.q.Search(ctx, domain.TableMarketEvents, offset, limit, "-time", query, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
