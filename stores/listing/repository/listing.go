package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) listing.Repo {
	return &impl{q}
}

func (im *impl) makeQuery(options listing.FindAllOptions) bson.M {
	query := bson.M{}

	if options.Symbol != nil {
		query["symbol"] = *options.Symbol
	}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.ListType != nil {
		query["listType"] = *options.ListType
	}

	if options.PriceSymbol != nil {
		query["price.symbol"] = *options.PriceSymbol
	}

	return query
}

func (im *impl) makeSelector(id listing.Id) bson.M {
	return bson.M{
		"symbol":          id.Symbol,
		"owner":           id.Owner,
		"price.symbol":    id.PriceSymbol,
		"price.amount":    id.PriceAmount,
		"startTime":       id.StartTime,
		"publicTime":      id.PublicTime,
		"durationHours":   id.DurationHours,
		"durationMinutes": id.DurationMinutes,
	}
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
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

	sort := "startTime"
	if options.Sort != nil {
		sort = *options.Sort
	}

	res := []*listing.Listing{}
	if err := im.q.Search(ctx, domain.TableListings, offset, limit, sort, query, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	res := listing.Listing{}
	if err := im.q.FindOne(ctx, domain.TableListings, im.makeSelector(id), &res); err == query.ErrNotFound {
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

func (im *impl) Upsert(ctx ctx.Ctx, l *listing.Listing) error {
	l.LowerCase()
	if err := im.q.Upsert(ctx, domain.TableListings, im.makeSelector(l.ToId()), l); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"listing": l,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *impl) IncQuantity(ctx ctx.Ctx, id listing.Id, delta int64) (*listing.Listing, error) {
	res := listing.Listing{}
	if err := im.q.Increment(ctx, domain.TableListings, im.makeSelector(id), &res, "quantity", delta); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"id":    id,
			"delta": delta,
		}).Error("q.Increment failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) Remove(ctx ctx.Ctx, id listing.Id) error {
	if err := im.q.Remove(ctx, domain.TableListings, im.makeSelector(id)); err == query.ErrNotFound {
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

func (im *impl) RemoveAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) error {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return err
	}
	query := im.makeQuery(options)

	if _, err := im.q.RemoveAll(ctx, domain.TableListings, query); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
