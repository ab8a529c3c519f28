package repository

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/ptr"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/ledger"
	"github.com/x-xyz/marketplace/service/query"
)

type impl struct {
	q query.Mongo
}

// New returns a mongo backed asset ledger. Balance rows are keyed by
// (owner, symbol), missing rows read as zero.
func New(q query.Mongo) ledger.Service {
	return &impl{q}
}

func (im *impl) balanceSelector(owner domain.Address, symbol domain.Symbol) bson.M {
	return bson.M{"owner": owner.ToLower(), "symbol": symbol}
}

func (im *impl) allowanceSelector(owner, spender domain.Address, symbol domain.Symbol) bson.M {
	return bson.M{"owner": owner.ToLower(), "spender": spender.ToLower(), "symbol": symbol}
}

func (im *impl) BalanceOf(ctx ctx.Ctx, owner domain.Address, symbol domain.Symbol) (decimal.Decimal, error) {
	res := ledger.Balance{}
	if err := im.q.FindOne(ctx, domain.TableBalances, im.balanceSelector(owner, symbol), &res); err == query.ErrNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"owner":  owner,
			"symbol": symbol,
		}).Error("q.FindOne failed")
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(res.Amount)
	if err != nil {
		return decimal.Zero, xerrors.Errorf("parse balance amount: %w", err)
	}
	return d, nil
}

func (im *impl) Allowance(ctx ctx.Ctx, owner, spender domain.Address, symbol domain.Symbol) (decimal.Decimal, error) {
	res := ledger.AllowanceEntry{}
	if err := im.q.FindOne(ctx, domain.TableAllowances, im.allowanceSelector(owner, spender, symbol), &res); err == query.ErrNotFound {
		return decimal.Zero, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"owner":   owner,
			"spender": spender,
			"symbol":  symbol,
		}).Error("q.FindOne failed")
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(res.Amount)
	if err != nil {
		return decimal.Zero, xerrors.Errorf("parse allowance amount: %w", err)
	}
	return d, nil
}

func (im *impl) Transfer(ctx ctx.Ctx, from, to domain.Address, symbol domain.Symbol, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidPrice
	}
	if from.Equals(to) {
		return nil
	}

	fromBalance, err := im.BalanceOf(ctx, from, symbol)
	if err != nil {
		return err
	}
	if fromBalance.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	toBalance, err := im.BalanceOf(ctx, to, symbol)
	if err != nil {
		return err
	}

	if err := im.setBalance(ctx, from, symbol, fromBalance.Sub(amount)); err != nil {
		return err
	}
	return im.setBalance(ctx, to, symbol, toBalance.Add(amount))
}

func (im *impl) TransferFrom(ctx ctx.Ctx, spender, from, to domain.Address, symbol domain.Symbol, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidPrice
	}

	allowance, err := im.Allowance(ctx, from, spender, symbol)
	if err != nil {
		return err
	}
	if allowance.LessThan(amount) {
		return domain.ErrInsufficientAllowance
	}

	patchable := ledger.PatchableAllowance{Amount: ptr.String(allowance.Sub(amount).String())}
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return err
	}
	if err := im.q.Patch(ctx, domain.TableAllowances, im.allowanceSelector(from, spender, symbol), updater); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"updater": updater,
		}).Error("q.Patch failed")
		return err
	}

	return im.Transfer(ctx, from, to, symbol, amount)
}

func (im *impl) TokenInfo(ctx ctx.Ctx, symbol domain.Symbol) (*ledger.TokenInfo, error) {
	res := ledger.TokenInfo{}
	if err := im.q.FindOne(ctx, domain.TableTokens, bson.M{"symbol": symbol}, &res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"symbol": symbol,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *impl) setBalance(ctx ctx.Ctx, owner domain.Address, symbol domain.Symbol, amount decimal.Decimal) error {
	update := ledger.Balance{
		Owner:  owner.ToLower(),
		Symbol: symbol,
		Amount: amount.String(),
	}
	if err := im.q.Upsert(ctx, domain.TableBalances, im.balanceSelector(owner, symbol), &update); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"balance": update,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
