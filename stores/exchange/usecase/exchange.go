package usecase

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/deal"
	"github.com/x-xyz/marketplace/domain/exchange"
	"github.com/x-xyz/marketplace/domain/ledger"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/domain/offer"
	"github.com/x-xyz/marketplace/domain/whitelist"
)

type ExchangeUseCaseCfg struct {
	Cfg         exchange.Cfg
	ListingRepo listing.Repo
	ListingUC   listing.UseCase
	OfferRepo   offer.Repo
	OfferUC     offer.UseCase
	BidRepo     offer.BidRepo
	EventRepo   exchange.EventRepo
	Ledger      ledger.Service
	PriceGate   whitelist.PriceGate
	Tx          domain.TxRunner
	Clock       clock.Clock
}

type impl struct {
	cfg         exchange.Cfg
	listingRepo listing.Repo
	listingUC   listing.UseCase
	offerRepo   offer.Repo
	offerUC     offer.UseCase
	bidRepo     offer.BidRepo
	eventRepo   exchange.EventRepo
	ledger      ledger.Service
	gate        whitelist.PriceGate
	tx          domain.TxRunner
	clock       clock.Clock
}

func New(cfg *ExchangeUseCaseCfg) exchange.UseCase {
	return &impl{
		cfg:         cfg.Cfg,
		listingRepo: cfg.ListingRepo,
		listingUC:   cfg.ListingUC,
		offerRepo:   cfg.OfferRepo,
		offerUC:     cfg.OfferUC,
		bidRepo:     cfg.BidRepo,
		eventRepo:   cfg.EventRepo,
		ledger:      cfg.Ledger,
		gate:        cfg.PriceGate,
		tx:          cfg.Tx,
		clock:       cfg.Clock,
	}
}

func (im *impl) ListWithFixedPrice(c ctx.Ctx, req *exchange.ListFixedPriceRequest) error {
	now := im.clock.Now()

	l := &listing.Listing{
		Symbol:   req.Symbol,
		Owner:    req.Owner,
		ListType: listing.ListTypeFixedPrice,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
	if req.Window != nil {
		l.Window = *req.Window
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		return im.listingUC.List(c, l, now)
	})
}

func (im *impl) ListWithEnglishAuction(c ctx.Ctx, req *exchange.ListEnglishAuctionRequest) error {
	now := im.clock.Now()

	if !req.EarnestMoney.IsZero() && req.EarnestMoney.Symbol != req.StartingPrice.Symbol {
		return domain.ErrInvalidPrice
	}

	l := &listing.Listing{
		Symbol:       req.Symbol,
		Owner:        req.Owner,
		ListType:     listing.ListTypeEnglishAuction,
		Price:        req.StartingPrice,
		Quantity:     req.Quantity,
		EarnestMoney: req.EarnestMoney,
	}
	if req.Window != nil {
		l.Window = *req.Window
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.ensureNoAuction(c, req.Symbol, req.Owner); err != nil {
			return err
		}
		return im.listingUC.List(c, l, now)
	})
}

func (im *impl) ListWithDutchAuction(c ctx.Ctx, req *exchange.ListDutchAuctionRequest) error {
	now := im.clock.Now()

	if req.EndingPrice.Symbol != req.StartingPrice.Symbol {
		return domain.ErrInvalidPrice
	}
	starting, err := req.StartingPrice.Decimal()
	if err != nil {
		return err
	}
	ending, err := req.EndingPrice.Decimal()
	if err != nil {
		return err
	}
	if !ending.IsPositive() || ending.GreaterThan(starting) {
		return domain.ErrInvalidPrice
	}

	l := &listing.Listing{
		Symbol:      req.Symbol,
		Owner:       req.Owner,
		ListType:    listing.ListTypeDutchAuction,
		Price:       req.StartingPrice,
		Quantity:    req.Quantity,
		EndingPrice: req.EndingPrice,
	}
	if req.Window != nil {
		l.Window = *req.Window
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.ensureNoAuction(c, req.Symbol, req.Owner); err != nil {
			return err
		}
		return im.listingUC.List(c, l, now)
	})
}

func (im *impl) Delist(c ctx.Ctx, req *exchange.DelistRequest) error {
	now := im.clock.Now()

	if req.Price == nil {
		return domain.ErrPriceRequired
	}
	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(req.Symbol), listing.WithOwner(req.Owner))
		if err != nil {
			return err
		}

		var target *listing.Listing
		for _, l := range listings {
			if l.Price.Equals(*req.Price) {
				target = l
				break
			}
		}
		if target == nil {
			return domain.ErrListingNotFound
		}

		if target.IsAuction() {
			// removing a live auction with existing interest compensates the
			// marketplace for auction setup cost
			interested, err := im.auctionHasInterest(c, target)
			if err != nil {
				return err
			}
			if interested {
				starting, err := target.Price.Decimal()
				if err != nil {
					return err
				}
				fee := starting.Mul(decimal.NewFromInt(im.cfg.FeeRateBp)).Div(basisPointDenominator)
				if fee.IsPositive() {
					if err := im.ledger.Transfer(c, target.Owner, im.cfg.FeeReceiver, target.Price.Symbol, fee); err != nil {
						return err
					}
				}
			}
		}

		return im.listingUC.Delist(c, req.Symbol, req.Owner, *req.Price, req.Quantity, now)
	})
}

func (im *impl) MakeOffer(c ctx.Ctx, req *exchange.MakeOfferRequest) error {
	now := im.clock.Now()

	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	offered, err := req.Price.Decimal()
	if err != nil {
		return err
	}
	if !offered.IsPositive() {
		return domain.ErrInvalidPrice
	}

	expire := req.ExpireTime
	if expire.IsZero() {
		expire = now.Add(im.cfg.DefaultOfferExpire)
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		from := req.From.ToLower()
		to := req.To
		if to.IsEmpty() {
			info, err := im.ledger.TokenInfo(c, req.Symbol)
			if err != nil {
				return err
			}
			to = info.Issuer
		}
		to = to.ToLower()
		if to.Equals(from) {
			return domain.ErrSelfTrade
		}

		listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(req.Symbol), listing.WithOwner(to))
		if err != nil {
			return err
		}

		if auction := findAuction(listings, listing.ListTypeEnglishAuction); auction != nil {
			return im.placeBid(c, auction, from, req, offered, expire, now)
		}
		if auction := findAuction(listings, listing.ListTypeDutchAuction); auction != nil {
			return im.dealDutch(c, auction, from, req, offered, expire, now)
		}

		remain := req.Quantity

		// at most one discounted unit per request, first come first served:
		// the gate never bypasses the public sale start
		tag, err := im.gate.EntitledPrice(c, req.Symbol, to, from)
		if err != nil {
			return err
		}
		if tag != nil && tag.Symbol == req.Price.Symbol {
			tagAmount, err := tag.Decimal()
			if err != nil {
				return err
			}
			if offered.GreaterThanOrEqual(tagAmount) {
				if earliest := earliestStartTime(listings); earliest != nil && now.Before(*earliest) {
					return im.queueOffer(c, req.Symbol, from, to, req.Price, remain, expire, now)
				}
				if l := cheapestOpenFixedPrice(listings, req.Price.Symbol, now); l != nil {
					if err := im.performDeal(c, from, to, req.Symbol, 1, *tag, now); err != nil {
						return err
					}
					if err := im.listingUC.TakeQuantity(c, l, 1, now); err != nil {
						return err
					}
					if err := im.gate.Consume(c, from, req.Symbol, to); err != nil {
						return err
					}
					remain--
				}
			}
		}

		if remain > 0 {
			results, err := deal.Match(deal.Request{
				Symbol:   req.Symbol,
				Price:    req.Price,
				Quantity: remain,
			}, listings, now)
			if err != nil {
				return err
			}
			for _, r := range results {
				l := listings[r.Index]
				if l.ListType != listing.ListTypeFixedPrice {
					continue
				}
				if err := im.performDeal(c, from, to, req.Symbol, r.Quantity, r.Price, now); err != nil {
					return err
				}
				if err := im.listingUC.TakeQuantity(c, l, r.Quantity, now); err != nil {
					return err
				}
				remain -= r.Quantity
			}
		}

		if remain > 0 {
			return im.queueOffer(c, req.Symbol, from, to, req.Price, remain, expire, now)
		}
		return nil
	})
}

func (im *impl) CancelOffer(c ctx.Ctx, req *exchange.CancelOfferRequest) error {
	now := im.clock.Now()

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		caller := req.Caller.ToLower()
		from := req.OfferFrom.ToLower()

		if req.CancelBid {
			if !caller.Equals(from) {
				return domain.ErrUnauthorized
			}
			return im.cancelBid(c, req.Symbol, caller, now)
		}

		if caller.Equals(from) {
			return im.offerUC.CancelIndices(c, req.Symbol, from, req.To, req.Indices, now)
		}

		if caller.Equals(im.cfg.Admin.ToLower()) {
			// admin cleanup is restricted to purging expired offers
			return im.offerUC.PurgeExpired(c, req.Symbol, from, now)
		}

		return domain.ErrUnauthorized
	})
}

func (im *impl) Deal(c ctx.Ctx, req *exchange.DealRequest) error {
	now := im.clock.Now()

	if req.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	return im.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		seller := req.Seller.ToLower()
		from := req.OfferFrom.ToLower()
		if seller.Equals(from) {
			return domain.ErrSelfTrade
		}

		offers, err := im.offerRepo.FindAll(c,
			offer.WithSymbol(req.Symbol),
			offer.WithFrom(from),
			offer.WithTo(seller),
		)
		if err != nil {
			return err
		}

		var target *offer.Offer
		for _, o := range offers {
			if o.Price.Equals(req.Price) {
				target = o
				break
			}
		}
		if target == nil {
			return im.dealBid(c, req, seller, from, now)
		}
		if target.IsExpired(now) {
			return domain.ErrOfferExpired
		}
		if req.Quantity > target.Quantity {
			return domain.ErrInvalidQuantity
		}

		if err := im.offerUC.TakeQuantity(c, target, req.Quantity, now); err != nil {
			return err
		}
		if err := im.performDeal(c, from, seller, req.Symbol, req.Quantity, target.Price, now); err != nil {
			return err
		}

		// keep listing bookkeeping consistent when the seller had the
		// asset listed: matched units come out of the cheapest listings
		return im.consumeListedQuantity(c, req.Symbol, seller, req.Quantity, now)
	})
}

// dealBid settles an english auction when the seller accepts the standing bid.
func (im *impl) dealBid(c ctx.Ctx, req *exchange.DealRequest, seller, bidder domain.Address, now time.Time) error {
	bid, err := im.bidRepo.FindOne(c, offer.BidId{Symbol: req.Symbol, Bidder: bidder})
	if err == domain.ErrNotFound {
		return domain.ErrOfferNotFound
	} else if err != nil {
		return err
	}
	if !bid.Price.Equals(req.Price) {
		return domain.ErrOfferNotFound
	}
	if !now.Before(bid.ExpireTime) {
		return domain.ErrOfferExpired
	}

	listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(req.Symbol), listing.WithOwner(seller))
	if err != nil {
		return err
	}
	auction := findAuction(listings, listing.ListTypeEnglishAuction)
	if auction == nil {
		return domain.ErrAuctionNotFound
	}
	if req.Quantity != auction.Quantity {
		return domain.ErrInvalidQuantity
	}

	if err := im.performDeal(c, bidder, seller, req.Symbol, auction.Quantity, bid.Price, now); err != nil {
		return err
	}

	// release the earnest deposit held since the first bid
	if bid.PaidEarnest && !auction.EarnestMoney.IsZero() {
		earnest, err := auction.EarnestMoney.Decimal()
		if err != nil {
			return err
		}
		if err := im.ledger.Transfer(c, im.cfg.FeeReceiver, bidder, auction.EarnestMoney.Symbol, earnest); err != nil {
			return err
		}
	}

	if err := im.bidRepo.Remove(c, bid.ToId()); err != nil {
		return err
	}
	return im.listingUC.TakeQuantity(c, auction, auction.Quantity, now)
}

func (im *impl) GetAuctionInfo(c ctx.Ctx, symbol domain.Symbol, owner domain.Address) (*exchange.AuctionInfo, error) {
	now := im.clock.Now()

	listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(symbol), listing.WithOwner(owner))
	if err != nil {
		return nil, err
	}

	var auction *listing.Listing
	for _, l := range listings {
		if l.IsAuction() {
			auction = l
			break
		}
	}
	if auction == nil {
		return nil, domain.ErrAuctionNotFound
	}

	starting, err := auction.Price.Decimal()
	if err != nil {
		return nil, err
	}

	info := &exchange.AuctionInfo{Listing: auction}

	switch auction.ListType {
	case listing.ListTypeEnglishAuction:
		var highest *decimal.Decimal
		bids, err := im.bidRepo.FindAll(c, symbol)
		if err != nil {
			return nil, err
		}
		for _, b := range bids {
			d, err := b.Price.Decimal()
			if err != nil {
				continue
			}
			if highest == nil || d.GreaterThan(*highest) {
				price := b.Price
				highest = &d
				info.HighestBid = &price
			}
		}
		info.CurrentPrice = domain.NewPrice(auction.Price.Symbol, englishMinBid(starting, highest))
	case listing.ListTypeDutchAuction:
		ending, err := auction.EndingPrice.Decimal()
		if err != nil {
			return nil, err
		}
		current := dutchPrice(starting, ending, now.Sub(auction.StartTime), auction.Duration())
		info.CurrentPrice = domain.NewPrice(auction.Price.Symbol, current)
	}

	return info, nil
}

func (im *impl) GetBids(c ctx.Ctx, symbol domain.Symbol) ([]*offer.Bid, error) {
	res, err := im.bidRepo.FindAll(c, symbol)
	if err != nil {
		c.WithFields(log.Fields{
			"err":    err,
			"symbol": symbol,
		}).Error("bidRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) placeBid(c ctx.Ctx, auction *listing.Listing, bidder domain.Address, req *exchange.MakeOfferRequest, offered decimal.Decimal, expire time.Time, now time.Time) error {
	if now.Before(auction.StartTime) || now.After(auction.EndTime()) {
		return domain.ErrAuctionFinished
	}
	if req.Price.Symbol != auction.Price.Symbol {
		return domain.ErrInvalidPrice
	}

	starting, err := auction.Price.Decimal()
	if err != nil {
		return err
	}

	var highest *decimal.Decimal
	bids, err := im.bidRepo.FindAll(c, auction.Symbol)
	if err != nil {
		return err
	}
	for _, b := range bids {
		d, err := b.Price.Decimal()
		if err != nil {
			continue
		}
		if highest == nil || d.GreaterThan(*highest) {
			v := d
			highest = &v
		}
	}

	if offered.LessThan(englishMinBid(starting, highest)) {
		// below the minimum acceptable bid: queued as a standing offer
		// instead of accepted as the winning bid
		return im.queueOffer(c, auction.Symbol, bidder, auction.Owner, req.Price, req.Quantity, expire, now)
	}

	prev, err := im.bidRepo.FindOne(c, offer.BidId{Symbol: auction.Symbol, Bidder: bidder})
	if err != nil && err != domain.ErrNotFound {
		return err
	}

	paidEarnest := prev != nil && prev.PaidEarnest
	if !paidEarnest && !auction.EarnestMoney.IsZero() {
		earnest, err := auction.EarnestMoney.Decimal()
		if err != nil {
			return err
		}
		// one-time deposit held until settlement or cancellation
		if err := im.ledger.Transfer(c, bidder, im.cfg.FeeReceiver, auction.EarnestMoney.Symbol, earnest); err != nil {
			return err
		}
		paidEarnest = true
	}

	bid := &offer.Bid{
		Symbol:      auction.Symbol,
		Bidder:      bidder,
		Price:       req.Price,
		ExpireTime:  expire,
		PaidEarnest: paidEarnest,
	}
	if err := im.bidRepo.Upsert(c, bid); err != nil {
		return err
	}

	event := &exchange.Event{
		Id:       uuid.NewString(),
		Type:     exchange.EventBidPlaced,
		Symbol:   auction.Symbol,
		Owner:    auction.Owner,
		From:     bidder,
		Price:    req.Price,
		Quantity: auction.Quantity,
		Time:     now,
	}
	return im.eventRepo.Insert(c, event)
}

func (im *impl) dealDutch(c ctx.Ctx, auction *listing.Listing, buyer domain.Address, req *exchange.MakeOfferRequest, offered decimal.Decimal, expire time.Time, now time.Time) error {
	if now.Before(auction.StartTime) || now.After(auction.EndTime()) {
		return domain.ErrAuctionFinished
	}
	if req.Price.Symbol != auction.Price.Symbol {
		return domain.ErrInvalidPrice
	}

	starting, err := auction.Price.Decimal()
	if err != nil {
		return err
	}
	ending, err := auction.EndingPrice.Decimal()
	if err != nil {
		return err
	}

	current := dutchPrice(starting, ending, now.Sub(auction.StartTime), auction.Duration())
	if offered.LessThan(current) {
		return im.queueOffer(c, auction.Symbol, buyer, auction.Owner, req.Price, req.Quantity, expire, now)
	}

	quantity := req.Quantity
	if quantity > auction.Quantity {
		quantity = auction.Quantity
	}

	price := domain.NewPrice(auction.Price.Symbol, current)
	if err := im.performDeal(c, buyer, auction.Owner, auction.Symbol, quantity, price, now); err != nil {
		return err
	}
	if err := im.listingUC.TakeQuantity(c, auction, quantity, now); err != nil {
		return err
	}

	if remain := req.Quantity - quantity; remain > 0 {
		return im.queueOffer(c, auction.Symbol, buyer, auction.Owner, req.Price, remain, expire, now)
	}
	return nil
}

func (im *impl) cancelBid(c ctx.Ctx, symbol domain.Symbol, bidder domain.Address, now time.Time) error {
	bid, err := im.bidRepo.FindOne(c, offer.BidId{Symbol: symbol, Bidder: bidder})
	if err == domain.ErrNotFound {
		return domain.ErrOfferNotFound
	} else if err != nil {
		return err
	}

	if bid.PaidEarnest {
		listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(symbol), listing.WithListType(listing.ListTypeEnglishAuction))
		if err != nil {
			return err
		}
		if auction := findAuction(listings, listing.ListTypeEnglishAuction); auction != nil && !auction.EarnestMoney.IsZero() {
			earnest, err := auction.EarnestMoney.Decimal()
			if err != nil {
				return err
			}
			if err := im.ledger.Transfer(c, im.cfg.FeeReceiver, bidder, auction.EarnestMoney.Symbol, earnest); err != nil {
				return err
			}
		}
	}

	if err := im.bidRepo.Remove(c, bid.ToId()); err != nil {
		return err
	}

	event := &exchange.Event{
		Id:     uuid.NewString(),
		Type:   exchange.EventOfferRemoved,
		Symbol: symbol,
		From:   bidder,
		Price:  bid.Price,
		Time:   now,
	}
	return im.eventRepo.Insert(c, event)
}

func (im *impl) queueOffer(c ctx.Ctx, symbol domain.Symbol, from, to domain.Address, price domain.Price, quantity int64, expire time.Time, now time.Time) error {
	return im.offerUC.Upsert(c, &offer.Offer{
		Symbol:     symbol,
		From:       from,
		To:         to,
		Price:      price,
		Quantity:   quantity,
		ExpireTime: expire,
	}, now)
}

func (im *impl) ensureNoAuction(c ctx.Ctx, symbol domain.Symbol, owner domain.Address) error {
	listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(symbol), listing.WithOwner(owner))
	if err != nil {
		return err
	}
	for _, l := range listings {
		if l.IsAuction() {
			return domain.ErrAuctionInProgress
		}
	}
	return nil
}

func (im *impl) auctionHasInterest(c ctx.Ctx, auction *listing.Listing) (bool, error) {
	if auction.ListType == listing.ListTypeEnglishAuction {
		bids, err := im.bidRepo.FindAll(c, auction.Symbol)
		if err != nil {
			return false, err
		}
		if len(bids) > 0 {
			return true, nil
		}
	}

	offers, err := im.offerRepo.FindAll(c,
		offer.WithSymbol(auction.Symbol),
		offer.WithTo(auction.Owner),
	)
	if err != nil {
		return false, err
	}
	return len(offers) > 0, nil
}

func (im *impl) consumeListedQuantity(c ctx.Ctx, symbol domain.Symbol, owner domain.Address, quantity int64, now time.Time) error {
	listings, err := im.listingRepo.FindAll(c, listing.WithSymbol(symbol), listing.WithOwner(owner))
	if err != nil {
		return err
	}

	candidates := []*listing.Listing{}
	for _, l := range listings {
		if l.ListType == listing.ListTypeFixedPrice && l.Quantity > 0 {
			candidates = append(candidates, l)
		}
	}
	sortByPriceAsc(candidates)

	remain := quantity
	for _, l := range candidates {
		if remain <= 0 {
			break
		}
		take := l.Quantity
		if take > remain {
			take = remain
		}
		if err := im.listingUC.TakeQuantity(c, l, take, now); err != nil {
			return err
		}
		remain -= take
	}
	return nil
}

func findAuction(listings []*listing.Listing, listType listing.ListType) *listing.Listing {
	for _, l := range listings {
		if l.ListType == listType {
			return l
		}
	}
	return nil
}

func earliestStartTime(listings []*listing.Listing) *time.Time {
	var earliest *time.Time
	for _, l := range listings {
		t := l.StartTime
		if earliest == nil || t.Before(*earliest) {
			earliest = &t
		}
	}
	return earliest
}

func cheapestOpenFixedPrice(listings []*listing.Listing, priceSymbol domain.Symbol, now time.Time) *listing.Listing {
	candidates := []*listing.Listing{}
	for _, l := range listings {
		if l.ListType != listing.ListTypeFixedPrice || l.Quantity <= 0 {
			continue
		}
		if l.Price.Symbol != priceSymbol {
			continue
		}
		if now.Before(l.StartTime) {
			continue
		}
		candidates = append(candidates, l)
	}
	if len(candidates) == 0 {
		return nil
	}
	sortByPriceAsc(candidates)
	return candidates[0]
}

func sortByPriceAsc(listings []*listing.Listing) {
	decimals := make(map[*listing.Listing]decimal.Decimal, len(listings))
	for _, l := range listings {
		d, err := l.Price.Decimal()
		if err != nil {
			d = decimal.Zero
		}
		decimals[l] = d
	}
	for i := 1; i < len(listings); i++ {
		for j := i; j > 0 && decimals[listings[j]].LessThan(decimals[listings[j-1]]); j-- {
			listings[j], listings[j-1] = listings[j-1], listings[j]
		}
	}
}
