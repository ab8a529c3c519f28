package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/offer"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type offerRepo struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) offer.Repo {
	return &offerRepo{q}
}

func (im *offerRepo) makeQuery(options offer.FindAllOptions) bson.M {
	query := bson.M{}

	if options.Symbol != nil {
		query["symbol"] = *options.Symbol
	}

	if options.From != nil {
		query["from"] = *options.From
	}

	if options.To != nil {
		query["to"] = *options.To
	}

	if options.ExpireTimeLT != nil {
		query["expireTime"] = bson.M{"$lt": *options.ExpireTimeLT}
	}

	return query
}

func (im *offerRepo) makeSelector(id offer.Id) bson.M {
	return bson.M{
		"symbol":       id.Symbol,
		"from":         id.From,
		"to":           id.To,
		"price.symbol": id.PriceSymbol,
		"price.amount": id.PriceAmount,
		"expireTime":   id.ExpireTime,
	}
}

func (im *offerRepo) FindAll(ctx ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := im.makeQuery(options)

	offset := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}

	limit := 0
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	sort := "expireTime"
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*offer.Offer{}
	if err := im.q.Search(ctx, domain.TableOffers, offset, limit, sort, query, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *offerRepo) FindOne(ctx ctx.Ctx, id offer.Id) (*offer.Offer, error) {
	res := offer.Offer{}
	if err := im.q.FindOne(ctx, domain.TableOffers, im.makeSelector(id), &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *offerRepo) Upsert(ctx ctx.Ctx, o *offer.Offer) error {
	o.LowerCase()
	if err := im.q.Upsert(ctx, domain.TableOffers, im.makeSelector(o.ToId()), o); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"offer": o,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *offerRepo) IncQuantity(ctx ctx.Ctx, id offer.Id, delta int64) (*offer.Offer, error) {
	res := offer.Offer{}
	if err := im.q.Increment(ctx, domain.TableOffers, im.makeSelector(id), &res, "quantity", delta); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"id":    id,
			"delta": delta,
		}).Error("q.Increment failed")
		return nil, err
	}
	return &res, nil
}

func (im *offerRepo) Remove(ctx ctx.Ctx, id offer.Id) error {
	if err := im.q.Remove(ctx, domain.TableOffers, im.makeSelector(id)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *offerRepo) RemoveAll(ctx ctx.Ctx, opts ...offer.FindAllOptionsFunc) error {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return err
	}
	query := im.makeQuery(options)

	if _, err := im.q.RemoveAll(ctx, domain.TableOffers, query); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
