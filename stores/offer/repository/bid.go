package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/offer"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type bidRepo struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) offer.BidRepo {
	return &bidRepo{q}
}

func (im *bidRepo) makeSelector(id offer.BidId) bson.M {
	return bson.M{
		"symbol": id.Symbol,
		"bidder": id.Bidder,
	}
}

func (im *bidRepo) FindAll(ctx ctx.Ctx, symbol domain.Symbol) ([]*offer.Bid, error) {
	res := []*offer.Bid{}
	if err := im.q.Search(ctx, domain.TableBids, 0, 0, "bidder", bson.M{"symbol": symbol}, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"symbol": symbol,
		}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (im *bidRepo) FindOne(ctx ctx.Ctx, id offer.BidId) (*offer.Bid, error) {
	res := offer.Bid{}
	if err := im.q.FindOne(ctx, domain.TableBids, im.makeSelector(id), &res); err == query.ErrNotFound {
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

func (im *bidRepo) Upsert(ctx ctx.Ctx, bid *offer.Bid) error {
	bid.Bidder = bid.Bidder.ToLower()
	if err := im.q.Upsert(ctx, domain.TableBids, im.makeSelector(bid.ToId()), bid); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": bid,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *bidRepo) Remove(ctx ctx.Ctx, id offer.BidId) error {
	if err := im.q.Remove(ctx, domain.TableBids, im.makeSelector(id)); err == query.ErrNotFound {
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

func (im *bidRepo) RemoveAll(ctx ctx.Ctx, symbol domain.Symbol) error {
	if _, err := im.q.RemoveAll(ctx, domain.TableBids, bson.M{"symbol": symbol}); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"symbol": symbol,
		}).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
