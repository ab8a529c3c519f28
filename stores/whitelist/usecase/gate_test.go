package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/whitelist"
	mWhitelist "github.com/x-xyz/marketplace/domain/whitelist/mocks"
)

type gateSuite struct {
	suite.Suite

	whitelist *mWhitelist.Service
	im        *impl

	symbol domain.Symbol
	seller domain.Address
	caller domain.Address
	listId string
}

func TestGateSuite(t *testing.T) {
	suite.Run(t, new(gateSuite))
}

func (s *gateSuite) SetupTest() {
	s.whitelist = &mWhitelist.Service{}
	s.im = New(&PriceGateCfg{Whitelist: s.whitelist}).(*impl)

	s.symbol = domain.Symbol("ART")
	s.seller = domain.Address("0xseller")
	s.caller = domain.Address("0xbuyer")
	s.listId = whitelist.ProjectId(s.symbol, s.seller)
}

func (s *gateSuite) TearDownTest() {
	s.whitelist.AssertExpectations(s.T())
}

func (s *gateSuite) TestEntitledPrice() {
	tag := &domain.Price{Symbol: domain.Symbol("ELF"), Amount: "5"}

	s.whitelist.On("IsAvailable", mock.Anything, s.listId).Return(true, nil).Once()
	s.whitelist.On("IsAddressInWhitelist", mock.Anything, s.caller, s.listId).Return(true, nil).Once()
	s.whitelist.On("PriceTagFor", mock.Anything, s.caller, s.listId).Return(tag, nil).Once()

	got, err := s.im.EntitledPrice(ctx.Background(), s.symbol, s.seller, s.caller)
	s.NoError(err)
	s.Equal(tag, got)
}

func (s *gateSuite) TestEntitledPriceListExhausted() {
	s.whitelist.On("IsAvailable", mock.Anything, s.listId).Return(false, nil).Once()

	got, err := s.im.EntitledPrice(ctx.Background(), s.symbol, s.seller, s.caller)
	s.NoError(err)
	s.Nil(got)
	s.whitelist.AssertNotCalled(s.T(), "IsAddressInWhitelist", mock.Anything, mock.Anything, mock.Anything)
}

func (s *gateSuite) TestEntitledPriceCallerNotListed() {
	s.whitelist.On("IsAvailable", mock.Anything, s.listId).Return(true, nil).Once()
	s.whitelist.On("IsAddressInWhitelist", mock.Anything, s.caller, s.listId).Return(false, nil).Once()

	got, err := s.im.EntitledPrice(ctx.Background(), s.symbol, s.seller, s.caller)
	s.NoError(err)
	s.Nil(got)
	s.whitelist.AssertNotCalled(s.T(), "PriceTagFor", mock.Anything, mock.Anything, mock.Anything)
}

func (s *gateSuite) TestConsume() {
	s.whitelist.On("Consume", mock.Anything, s.caller, s.listId).Return(nil).Once()

	s.NoError(s.im.Consume(ctx.Background(), s.caller, s.symbol, s.seller))
}

func TestProjectIdStableAndCaseInsensitive(t *testing.T) {
	a := whitelist.ProjectId(domain.Symbol("ART"), domain.Address("0xSELLER"))
	b := whitelist.ProjectId(domain.Symbol("ART"), domain.Address("0xseller"))
	if a != b {
		t.Fatalf("expected identical project ids, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex digest, got %s", a)
	}
}
