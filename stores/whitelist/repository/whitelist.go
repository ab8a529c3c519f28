package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/whitelist"
	"github.com/x-xyz/marketplace/service/query"
)

type impl struct {
	q query.Mongo
}

// New returns a mongo backed allow-list. A list is available while it still
// holds unconsumed entries; consuming an entitlement removes its entry.
func New(q query.Mongo) whitelist.Service {
	return &impl{q}
}

func (im *impl) selector(address domain.Address, listId string) bson.M {
	return bson.M{"listId": listId, "address": address.ToLower()}
}

func (im *impl) IsAddressInWhitelist(ctx ctx.Ctx, address domain.Address, listId string) (bool, error) {
	n, err := im.q.Count(ctx, domain.TableWhitelists, im.selector(address, listId))
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"listId":  listId,
			"address": address,
		}).Error("q.Count failed")
		return false, err
	}
	return n > 0, nil
}

func (im *impl) PriceTagFor(ctx ctx.Ctx, address domain.Address, listId string) (*domain.Price, error) {
	res := whitelist.Entry{}
	if err := im.q.FindOne(ctx, domain.TableWhitelists, im.selector(address, listId), &res); err == query.ErrNotFound {
		return nil, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"listId":  listId,
			"address": address,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res.Price, nil
}

func (im *impl) Consume(ctx ctx.Ctx, address domain.Address, listId string) error {
	if err := im.q.Remove(ctx, domain.TableWhitelists, im.selector(address, listId)); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"listId":  listId,
			"address": address,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}

func (im *impl) IsAvailable(ctx ctx.Ctx, listId string) (bool, error) {
	n, err := im.q.Count(ctx, domain.TableWhitelists, bson.M{"listId": listId})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"listId": listId,
		}).Error("q.Count failed")
		return false, err
	}
	return n > 0, nil
}
