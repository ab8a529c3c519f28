package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
)

var basisPointDenominator = decimal.NewFromInt(10000)

// performDeal executes one matched deal: the payment leg net of the service
// fee, the fee leg, then the asset leg. It is the only place value moves.
// Any failing leg fails the request, the surrounding transaction guarantees
// no partial settlement is observable.
func (im *impl) performDeal(ctx ctx.Ctx, buyer, seller domain.Address, symbol domain.Symbol, quantity int64, price domain.Price, now time.Time) error {
	unit, err := price.Decimal()
	if err != nil {
		return err
	}

	total := unit.Mul(decimal.NewFromInt(quantity))
	serviceFee := total.Mul(decimal.NewFromInt(im.cfg.FeeRateBp)).Div(basisPointDenominator)
	net := total.Sub(serviceFee)

	if err := im.ledger.Transfer(ctx, buyer, seller, price.Symbol, net); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"buyer":  buyer,
			"seller": seller,
			"amount": net,
		}).Error("ledger.Transfer payment leg failed")
		return err
	}

	if serviceFee.IsPositive() && !buyer.Equals(im.cfg.FeeReceiver) {
		if err := im.ledger.Transfer(ctx, buyer, im.cfg.FeeReceiver, price.Symbol, serviceFee); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"buyer":  buyer,
				"amount": serviceFee,
			}).Error("ledger.Transfer fee leg failed")
			return err
		}
	}

	if err := im.ledger.Transfer(ctx, seller, buyer, symbol, decimal.NewFromInt(quantity)); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"buyer":    buyer,
			"seller":   seller,
			"symbol":   symbol,
			"quantity": quantity,
		}).Error("ledger.Transfer asset leg failed")
		return err
	}

	event := &exchange.Event{
		Id:         uuid.NewString(),
		Type:       exchange.EventSold,
		Symbol:     symbol,
		Owner:      seller,
		From:       buyer,
		To:         seller,
		Price:      price,
		Quantity:   quantity,
		PayAmount:  total.String(),
		ServiceFee: serviceFee.String(),
		Time:       now,
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
