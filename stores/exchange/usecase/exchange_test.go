package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
	mExchange "github.com/x-xyz/marketplace/domain/exchange/mocks"
	"github.com/x-xyz/marketplace/domain/ledger"
	mLedger "github.com/x-xyz/marketplace/domain/ledger/mocks"
	"github.com/x-xyz/marketplace/domain/listing"
	mListing "github.com/x-xyz/marketplace/domain/listing/mocks"
	mDomain "github.com/x-xyz/marketplace/domain/mocks"
	"github.com/x-xyz/marketplace/domain/offer"
	mOffer "github.com/x-xyz/marketplace/domain/offer/mocks"
	mWhitelist "github.com/x-xyz/marketplace/domain/whitelist/mocks"
)

const (
	art = domain.Symbol("ART")
	elf = domain.Symbol("ELF")

	buyer       = domain.Address("0xbuyer")
	seller      = domain.Address("0xseller")
	feeReceiver = domain.Address("0xfee")
	admin       = domain.Address("0xadmin")
)

func dec(v string) interface{} {
	exp := decimal.RequireFromString(v)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(exp) })
}

type exchangeSuite struct {
	suite.Suite

	listingRepo *mListing.Repo
	listingUC   *mListing.UseCase
	offerRepo   *mOffer.Repo
	offerUC     *mOffer.UseCase
	bidRepo     *mOffer.BidRepo
	eventRepo   *mExchange.EventRepo
	ledger      *mLedger.Service
	gate        *mWhitelist.PriceGate
	tx          *mDomain.TxRunner
	clock       *clock.Mock

	now time.Time
	im  *impl
}

func TestExchangeSuite(t *testing.T) {
	suite.Run(t, new(exchangeSuite))
}

func (s *exchangeSuite) SetupTest() {
	s.listingRepo = &mListing.Repo{}
	s.listingUC = &mListing.UseCase{}
	s.offerRepo = &mOffer.Repo{}
	s.offerUC = &mOffer.UseCase{}
	s.bidRepo = &mOffer.BidRepo{}
	s.eventRepo = &mExchange.EventRepo{}
	s.ledger = &mLedger.Service{}
	s.gate = &mWhitelist.PriceGate{}
	s.tx = &mDomain.TxRunner{}

	s.now = time.Date(2022, 7, 1, 12, 0, 0, 0, time.UTC)
	s.clock = clock.NewMock()
	s.clock.Set(s.now)

	s.tx.On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c ctx.Ctx, fn func(ctx.Ctx) error) error { return fn(c) }).
		Maybe()

	s.im = New(&ExchangeUseCaseCfg{
		Cfg: exchange.Cfg{
			FeeRateBp:          0,
			FeeReceiver:        feeReceiver,
			Admin:              admin,
			DefaultOfferExpire: 720 * time.Hour,
		},
		ListingRepo: s.listingRepo,
		ListingUC:   s.listingUC,
		OfferRepo:   s.offerRepo,
		OfferUC:     s.offerUC,
		BidRepo:     s.bidRepo,
		EventRepo:   s.eventRepo,
		Ledger:      s.ledger,
		PriceGate:   s.gate,
		Tx:          s.tx,
		Clock:       s.clock,
	}).(*impl)
}

func (s *exchangeSuite) TearDownTest() {
	s.listingRepo.AssertExpectations(s.T())
	s.listingUC.AssertExpectations(s.T())
	s.offerRepo.AssertExpectations(s.T())
	s.offerUC.AssertExpectations(s.T())
	s.bidRepo.AssertExpectations(s.T())
	s.eventRepo.AssertExpectations(s.T())
	s.ledger.AssertExpectations(s.T())
	s.gate.AssertExpectations(s.T())
}

func (s *exchangeSuite) openWindow() listing.Window {
	return listing.Window{
		StartTime:     s.now.Add(-time.Hour),
		PublicTime:    s.now.Add(-time.Hour),
		DurationHours: 24,
	}
}

func (s *exchangeSuite) fixedPriceListing(amount string, quantity int64) *listing.Listing {
	return &listing.Listing{
		Symbol:   art,
		Owner:    seller,
		ListType: listing.ListTypeFixedPrice,
		Price:    domain.Price{Symbol: elf, Amount: amount},
		Quantity: quantity,
		Window:   s.openWindow(),
	}
}

func (s *exchangeSuite) expectSoldEvent() {
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *exchange.Event) bool {
		return e.Type == exchange.EventSold
	})).Return(nil)
}

func (s *exchangeSuite) TestListWithFixedPrice() {
	s.listingUC.On("List", mock.Anything, mock.MatchedBy(func(l *listing.Listing) bool {
		return l.ListType == listing.ListTypeFixedPrice && l.Quantity == 3
	}), s.now).Return(nil).Once()

	err := s.im.ListWithFixedPrice(ctx.Background(), &exchange.ListFixedPriceRequest{
		Symbol:   art,
		Owner:    seller,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 3,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestListWithEnglishAuctionRejectsSecondAuction() {
	existing := s.fixedPriceListing("50", 1)
	existing.ListType = listing.ListTypeEnglishAuction

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{existing}, nil).Once()

	err := s.im.ListWithEnglishAuction(ctx.Background(), &exchange.ListEnglishAuctionRequest{
		Symbol:        art,
		Owner:         seller,
		StartingPrice: domain.Price{Symbol: elf, Amount: "50"},
		Quantity:      1,
	})
	s.ErrorIs(err, domain.ErrAuctionInProgress)
}

func (s *exchangeSuite) TestListWithDutchAuctionRejectsEndingAboveStarting() {
	err := s.im.ListWithDutchAuction(ctx.Background(), &exchange.ListDutchAuctionRequest{
		Symbol:        art,
		Owner:         seller,
		StartingPrice: domain.Price{Symbol: elf, Amount: "10"},
		EndingPrice:   domain.Price{Symbol: elf, Amount: "20"},
		Quantity:      1,
	})
	s.ErrorIs(err, domain.ErrInvalidPrice)
}

func (s *exchangeSuite) TestMakeOfferBuysCheapestFixedPriceFirst() {
	l30 := s.fixedPriceListing("30", 1)
	l10 := s.fixedPriceListing("10", 1)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l30, l10}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, seller, buyer).Return(nil, nil).Once()

	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("10")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("30")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("1")).Return(nil).Twice()
	s.expectSoldEvent()

	s.listingUC.On("TakeQuantity", mock.Anything, l10, int64(1), s.now).Return(nil).Once()
	s.listingUC.On("TakeQuantity", mock.Anything, l30, int64(1), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "30"},
		Quantity: 2,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestMakeOfferDiscountAppliesToExactlyOneUnit() {
	l := s.fixedPriceListing("10", 3)
	tag := &domain.Price{Symbol: elf, Amount: "5"}

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, seller, buyer).Return(tag, nil).Once()
	s.gate.On("Consume", mock.Anything, buyer, art, seller).Return(nil).Once()

	// one discounted unit at the tag price, the rest at the listed price
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("5")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("1")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("20")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("2")).Return(nil).Once()
	s.expectSoldEvent()

	s.listingUC.On("TakeQuantity", mock.Anything, l, int64(1), s.now).Return(nil).Once()
	s.listingUC.On("TakeQuantity", mock.Anything, l, int64(2), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "30"},
		Quantity: 3,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestMakeOfferDiscountDoesNotBypassStartTime() {
	l := s.fixedPriceListing("10", 3)
	l.StartTime = s.now.Add(time.Hour)
	tag := &domain.Price{Symbol: elf, Amount: "5"}

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, seller, buyer).Return(tag, nil).Once()

	s.offerUC.On("Upsert", mock.Anything, mock.MatchedBy(func(o *offer.Offer) bool {
		return o.Quantity == 3 && o.From == buyer && o.To == seller
	}), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "30"},
		Quantity: 3,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestMakeOfferQueuesStandingOfferWhenNothingMatches() {
	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, seller, buyer).Return(nil, nil).Once()

	expire := s.now.Add(720 * time.Hour)
	s.offerUC.On("Upsert", mock.Anything, mock.MatchedBy(func(o *offer.Offer) bool {
		return o.Quantity == 2 && o.ExpireTime.Equal(expire)
	}), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 2,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestMakeOfferResolvesIssuerWhenTargetUnset() {
	issuer := domain.Address("0xissuer")
	s.ledger.On("TokenInfo", mock.Anything, art).
		Return(&ledger.TokenInfo{Symbol: art, Issuer: issuer}, nil).Once()
	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, issuer, buyer).Return(nil, nil).Once()
	s.offerUC.On("Upsert", mock.Anything, mock.MatchedBy(func(o *offer.Offer) bool {
		return o.To == issuer
	}), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 1,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestMakeOfferToSelfRejected() {
	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       domain.Address("0xBUYER"),
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 1,
	})
	s.ErrorIs(err, domain.ErrSelfTrade)
}

func (s *exchangeSuite) TestMakeOfferFailedLegAbortsTheDeal() {
	boom := errors.New("transfer rejected")
	l := s.fixedPriceListing("10", 1)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, seller, buyer).Return(nil, nil).Once()
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("10")).Return(boom).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 1,
	})
	s.ErrorIs(err, boom)
	s.listingUC.AssertNotCalled(s.T(), "TakeQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *exchangeSuite) englishAuction(starting, earnest string, quantity int64) *listing.Listing {
	l := &listing.Listing{
		Symbol:   art,
		Owner:    seller,
		ListType: listing.ListTypeEnglishAuction,
		Price:    domain.Price{Symbol: elf, Amount: starting},
		Quantity: quantity,
		Window:   s.openWindow(),
	}
	if earnest != "" {
		l.EarnestMoney = domain.Price{Symbol: elf, Amount: earnest}
	}
	return l
}

func (s *exchangeSuite) TestFirstBidChargesEarnestMoney() {
	auction := s.englishAuction("50", "5", 1)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, art).Return([]*offer.Bid{}, nil).Once()
	s.bidRepo.On("FindOne", mock.Anything, offer.BidId{Symbol: art, Bidder: buyer}).
		Return(nil, domain.ErrNotFound).Once()
	s.ledger.On("Transfer", mock.Anything, buyer, feeReceiver, elf, dec("5")).Return(nil).Once()
	s.bidRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *offer.Bid) bool {
		return b.Bidder == buyer && b.PaidEarnest && b.Price.Amount == "50"
	})).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *exchange.Event) bool {
		return e.Type == exchange.EventBidPlaced
	})).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "50"},
		Quantity: 1,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestSupersedingBidSkipsEarnestMoney() {
	auction := s.englishAuction("50", "5", 1)
	prev := &offer.Bid{
		Symbol:      art,
		Bidder:      buyer,
		Price:       domain.Price{Symbol: elf, Amount: "50"},
		ExpireTime:  s.now.Add(time.Hour),
		PaidEarnest: true,
	}

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, art).Return([]*offer.Bid{prev}, nil).Once()
	s.bidRepo.On("FindOne", mock.Anything, offer.BidId{Symbol: art, Bidder: buyer}).
		Return(prev, nil).Once()
	s.bidRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *offer.Bid) bool {
		return b.PaidEarnest && b.Price.Amount == "60"
	})).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "60"},
		Quantity: 1,
	})
	s.NoError(err)
	s.ledger.AssertNotCalled(s.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *exchangeSuite) TestBidBelowMinimumBecomesStandingOffer() {
	auction := s.englishAuction("50", "", 1)
	existing := &offer.Bid{
		Symbol:     art,
		Bidder:     domain.Address("0xother"),
		Price:      domain.Price{Symbol: elf, Amount: "50"},
		ExpireTime: s.now.Add(time.Hour),
	}

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, art).Return([]*offer.Bid{existing}, nil).Once()
	s.offerUC.On("Upsert", mock.Anything, mock.MatchedBy(func(o *offer.Offer) bool {
		return o.From == buyer && o.Price.Amount == "50"
	}), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "50"},
		Quantity: 1,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestBidAfterWindowCloses() {
	auction := s.englishAuction("50", "", 1)
	auction.StartTime = s.now.Add(-48 * time.Hour)
	auction.DurationHours = 24

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "60"},
		Quantity: 1,
	})
	s.ErrorIs(err, domain.ErrAuctionFinished)
}

func (s *exchangeSuite) dutchAuction(starting, ending string, quantity int64) *listing.Listing {
	return &listing.Listing{
		Symbol:      art,
		Owner:       seller,
		ListType:    listing.ListTypeDutchAuction,
		Price:       domain.Price{Symbol: elf, Amount: starting},
		EndingPrice: domain.Price{Symbol: elf, Amount: ending},
		Quantity:    quantity,
		Window: listing.Window{
			StartTime:     s.now.Add(-4 * time.Hour),
			PublicTime:    s.now.Add(-4 * time.Hour),
			DurationHours: 8,
		},
	}
}

func (s *exchangeSuite) TestDutchAuctionDealsAtCurvePrice() {
	auction := s.dutchAuction("100", "20", 5)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()

	// halfway through the window the curve sits at 60
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("120")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("2")).Return(nil).Once()
	s.expectSoldEvent()
	s.listingUC.On("TakeQuantity", mock.Anything, auction, int64(2), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "60"},
		Quantity: 2,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestDutchAuctionBelowCurveQueuesOffer() {
	auction := s.dutchAuction("100", "20", 5)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.offerUC.On("Upsert", mock.Anything, mock.MatchedBy(func(o *offer.Offer) bool {
		return o.Quantity == 2 && o.Price.Amount == "59"
	}), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "59"},
		Quantity: 2,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestDelistRequiresExactPrice() {
	err := s.im.Delist(ctx.Background(), &exchange.DelistRequest{
		Symbol:   art,
		Owner:    seller,
		Quantity: 1,
	})
	s.ErrorIs(err, domain.ErrPriceRequired)
}

func (s *exchangeSuite) TestDelistFixedPrice() {
	l := s.fixedPriceListing("10", 3)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	s.listingUC.On("Delist", mock.Anything, art, seller, l.Price, int64(2), s.now).Return(nil).Once()

	err := s.im.Delist(ctx.Background(), &exchange.DelistRequest{
		Symbol:   art,
		Owner:    seller,
		Price:    &domain.Price{Symbol: elf, Amount: "10"},
		Quantity: 2,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestDelistAuctionWithBidsChargesFee() {
	s.im.cfg.FeeRateBp = 250
	auction := s.englishAuction("100", "5", 1)
	bid := &offer.Bid{Symbol: art, Bidder: buyer, Price: domain.Price{Symbol: elf, Amount: "100"}}

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, art).Return([]*offer.Bid{bid}, nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, feeReceiver, elf, dec("2.5")).Return(nil).Once()
	s.listingUC.On("Delist", mock.Anything, art, seller, auction.Price, int64(1), s.now).Return(nil).Once()

	err := s.im.Delist(ctx.Background(), &exchange.DelistRequest{
		Symbol:   art,
		Owner:    seller,
		Price:    &domain.Price{Symbol: elf, Amount: "100"},
		Quantity: 1,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestDealSettlesStandingOffer() {
	target := &offer.Offer{
		Symbol:     art,
		From:       buyer,
		To:         seller,
		Price:      domain.Price{Symbol: elf, Amount: "10"},
		Quantity:   5,
		ExpireTime: s.now.Add(time.Hour),
	}

	s.offerRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*offer.Offer{target}, nil).Once()
	s.offerUC.On("TakeQuantity", mock.Anything, target, int64(3), s.now).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("30")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("3")).Return(nil).Once()
	s.expectSoldEvent()
	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{}, nil).Once()

	err := s.im.Deal(ctx.Background(), &exchange.DealRequest{
		Symbol:    art,
		Seller:    seller,
		OfferFrom: buyer,
		Price:     domain.Price{Symbol: elf, Amount: "10"},
		Quantity:  3,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestDealRejectsExpiredOffer() {
	target := &offer.Offer{
		Symbol:     art,
		From:       buyer,
		To:         seller,
		Price:      domain.Price{Symbol: elf, Amount: "10"},
		Quantity:   5,
		ExpireTime: s.now.Add(-time.Minute),
	}

	s.offerRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*offer.Offer{target}, nil).Once()

	err := s.im.Deal(ctx.Background(), &exchange.DealRequest{
		Symbol:    art,
		Seller:    seller,
		OfferFrom: buyer,
		Price:     domain.Price{Symbol: elf, Amount: "10"},
		Quantity:  1,
	})
	s.ErrorIs(err, domain.ErrOfferExpired)
}

func (s *exchangeSuite) TestDealRejectsQuantityAboveOffer() {
	target := &offer.Offer{
		Symbol:     art,
		From:       buyer,
		To:         seller,
		Price:      domain.Price{Symbol: elf, Amount: "10"},
		Quantity:   2,
		ExpireTime: s.now.Add(time.Hour),
	}

	s.offerRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*offer.Offer{target}, nil).Once()

	err := s.im.Deal(ctx.Background(), &exchange.DealRequest{
		Symbol:    art,
		Seller:    seller,
		OfferFrom: buyer,
		Price:     domain.Price{Symbol: elf, Amount: "10"},
		Quantity:  3,
	})
	s.ErrorIs(err, domain.ErrInvalidQuantity)
}

func (s *exchangeSuite) TestDealAcceptsStandingBid() {
	auction := s.englishAuction("50", "5", 2)
	bid := &offer.Bid{
		Symbol:      art,
		Bidder:      buyer,
		Price:       domain.Price{Symbol: elf, Amount: "60"},
		ExpireTime:  s.now.Add(time.Hour),
		PaidEarnest: true,
	}

	s.offerRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*offer.Offer{}, nil).Once()
	s.bidRepo.On("FindOne", mock.Anything, offer.BidId{Symbol: art, Bidder: buyer}).
		Return(bid, nil).Once()
	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()

	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("120")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("2")).Return(nil).Once()
	s.expectSoldEvent()
	// earnest deposit released back to the winning bidder
	s.ledger.On("Transfer", mock.Anything, feeReceiver, buyer, elf, dec("5")).Return(nil).Once()
	s.bidRepo.On("Remove", mock.Anything, bid.ToId()).Return(nil).Once()
	s.listingUC.On("TakeQuantity", mock.Anything, auction, int64(2), s.now).Return(nil).Once()

	err := s.im.Deal(ctx.Background(), &exchange.DealRequest{
		Symbol:    art,
		Seller:    seller,
		OfferFrom: buyer,
		Price:     domain.Price{Symbol: elf, Amount: "60"},
		Quantity:  2,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestCancelOfferByOwner() {
	s.offerUC.On("CancelIndices", mock.Anything, art, buyer, (*domain.Address)(nil), []int{0, 2}, s.now).
		Return(nil).Once()

	err := s.im.CancelOffer(ctx.Background(), &exchange.CancelOfferRequest{
		Symbol:    art,
		Caller:    buyer,
		OfferFrom: buyer,
		Indices:   []int{0, 2},
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestCancelOfferByAdminPurgesExpiredOnly() {
	s.offerUC.On("PurgeExpired", mock.Anything, art, buyer, s.now).Return(nil).Once()

	err := s.im.CancelOffer(ctx.Background(), &exchange.CancelOfferRequest{
		Symbol:    art,
		Caller:    admin,
		OfferFrom: buyer,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestCancelOfferByStrangerRejected() {
	err := s.im.CancelOffer(ctx.Background(), &exchange.CancelOfferRequest{
		Symbol:    art,
		Caller:    domain.Address("0xstranger"),
		OfferFrom: buyer,
	})
	s.ErrorIs(err, domain.ErrUnauthorized)
}

func (s *exchangeSuite) TestCancelBidRefundsEarnestMoney() {
	auction := s.englishAuction("50", "5", 1)
	bid := &offer.Bid{
		Symbol:      art,
		Bidder:      buyer,
		Price:       domain.Price{Symbol: elf, Amount: "50"},
		PaidEarnest: true,
	}

	s.bidRepo.On("FindOne", mock.Anything, offer.BidId{Symbol: art, Bidder: buyer}).
		Return(bid, nil).Once()
	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.ledger.On("Transfer", mock.Anything, feeReceiver, buyer, elf, dec("5")).Return(nil).Once()
	s.bidRepo.On("Remove", mock.Anything, bid.ToId()).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *exchange.Event) bool {
		return e.Type == exchange.EventOfferRemoved
	})).Return(nil).Once()

	err := s.im.CancelOffer(ctx.Background(), &exchange.CancelOfferRequest{
		Symbol:    art,
		Caller:    buyer,
		OfferFrom: buyer,
		CancelBid: true,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestServiceFeeDeductedFromSellerProceeds() {
	s.im.cfg.FeeRateBp = 250
	l := s.fixedPriceListing("100", 1)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{l}, nil).Once()
	s.gate.On("EntitledPrice", mock.Anything, art, seller, buyer).Return(nil, nil).Once()

	// 2.5% of 100: seller nets 97.5, the receiver collects 2.5
	s.ledger.On("Transfer", mock.Anything, buyer, seller, elf, dec("97.5")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, buyer, feeReceiver, elf, dec("2.5")).Return(nil).Once()
	s.ledger.On("Transfer", mock.Anything, seller, buyer, art, dec("1")).Return(nil).Once()
	s.eventRepo.On("Insert", mock.Anything, mock.MatchedBy(func(e *exchange.Event) bool {
		return e.Type == exchange.EventSold && e.ServiceFee == "2.5"
	})).Return(nil).Once()
	s.listingUC.On("TakeQuantity", mock.Anything, l, int64(1), s.now).Return(nil).Once()

	err := s.im.MakeOffer(ctx.Background(), &exchange.MakeOfferRequest{
		Symbol:   art,
		From:     buyer,
		To:       seller,
		Price:    domain.Price{Symbol: elf, Amount: "100"},
		Quantity: 1,
	})
	s.NoError(err)
}

func (s *exchangeSuite) TestGetAuctionInfoEnglish() {
	auction := s.englishAuction("50", "", 1)
	bid := &offer.Bid{Symbol: art, Bidder: buyer, Price: domain.Price{Symbol: elf, Amount: "55"}}

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()
	s.bidRepo.On("FindAll", mock.Anything, art).Return([]*offer.Bid{bid}, nil).Once()

	info, err := s.im.GetAuctionInfo(ctx.Background(), art, seller)
	s.NoError(err)
	s.Equal(auction, info.Listing)
	s.Equal("55", info.HighestBid.Amount)
	s.Equal("56", info.CurrentPrice.Amount)
}

func (s *exchangeSuite) TestGetAuctionInfoDutch() {
	auction := s.dutchAuction("100", "20", 1)

	s.listingRepo.On("FindAll", mock.Anything, mock.Anything, mock.Anything).
		Return([]*listing.Listing{auction}, nil).Once()

	info, err := s.im.GetAuctionInfo(ctx.Background(), art, seller)
	s.NoError(err)
	s.Nil(info.HighestBid)
	s.Equal("60", info.CurrentPrice.Amount)
}
