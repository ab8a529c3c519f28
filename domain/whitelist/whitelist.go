package whitelist

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// ProjectId derives the allow-list id for one (asset, seller) project.
func ProjectId(symbol domain.Symbol, seller domain.Address) string {
	h := sha256.Sum256([]byte(string(symbol) + ":" + seller.ToLowerStr()))
	return hex.EncodeToString(h[:])
}

// Entry is one single-use allow-list entitlement: the tagged address may buy
// one unit at the Price instead of the public listing price.
type Entry struct {
	ListId  string         `json:"listId" bson:"listId"`
	Address domain.Address `json:"address" bson:"address"`
	Price   domain.Price   `json:"price" bson:"price"`
}

// Service is the external allow-list collaborator. Entitlements are owned by
// the collaborator and only referenced by project id.
type Service interface {
	IsAddressInWhitelist(ctx ctx.Ctx, address domain.Address, listId string) (bool, error)
	// PriceTagFor returns the discounted price granted to address, nil when
	// the address holds no tag.
	PriceTagFor(ctx ctx.Ctx, address domain.Address, listId string) (*domain.Price, error)
	// Consume removes the address's single-use entitlement.
	Consume(ctx ctx.Ctx, address domain.Address, listId string) error
	IsAvailable(ctx ctx.Ctx, listId string) (bool, error)
}

// PriceGate resolves whether a caller is entitled to a discounted fixed price
// for a (asset, seller) project.
type PriceGate interface {
	// EntitledPrice returns the caller's discounted price tag, nil when no
	// whitelist exists, the whitelist is unavailable, or the caller is not
	// tagged.
	EntitledPrice(ctx ctx.Ctx, symbol domain.Symbol, seller, caller domain.Address) (*domain.Price, error)
	// Consume burns the caller's single-use entitlement after a match.
	Consume(ctx ctx.Ctx, caller domain.Address, symbol domain.Symbol, seller domain.Address) error
}
