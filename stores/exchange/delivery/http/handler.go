package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/delivery"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/domain/offer"
	"github.com/x-xyz/marketplace/middleware"
)

type handler struct {
	exchange exchange.UseCase
	listing  listing.UseCase
	offer    offer.UseCase
	events   exchange.EventRepo
}

// New will initialize the exchange endpoints
func New(e *echo.Echo, ex exchange.UseCase, lu listing.UseCase, ou offer.UseCase, events exchange.EventRepo) {
	h := &handler{
		exchange: ex,
		listing:  lu,
		offer:    ou,
		events:   events,
	}

	g := e.Group("/exchange")
	g.POST("/listings/fixed-price", h.listFixedPrice)
	g.POST("/listings/english-auction", h.listEnglishAuction)
	g.POST("/listings/dutch-auction", h.listDutchAuction)
	g.DELETE("/listings", h.delist)
	g.GET("/listings", h.getListings)
	g.POST("/offers", h.makeOffer)
	g.DELETE("/offers", h.cancelOffer)
	g.GET("/offers", h.getOffers)
	g.POST("/deals", h.deal)
	g.GET("/auctions/:symbol/:owner", h.getAuctionInfo, middleware.IsValidAddress("owner"))
	g.GET("/auctions/:symbol/bids", h.getBids)
	g.GET("/events", h.getEvents)
}

type windowPayload struct {
	StartTime       *time.Time `json:"startTime"`
	PublicTime      *time.Time `json:"publicTime"`
	DurationHours   int64      `json:"durationHours"`
	DurationMinutes int64      `json:"durationMinutes"`
}

func (p *windowPayload) toWindow() *listing.Window {
	if p == nil {
		return nil
	}
	w := &listing.Window{
		DurationHours:   p.DurationHours,
		DurationMinutes: p.DurationMinutes,
	}
	if p.StartTime != nil {
		w.StartTime = *p.StartTime
	}
	if p.PublicTime != nil {
		w.PublicTime = *p.PublicTime
	}
	return w
}

func (h *handler) listFixedPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol   domain.Symbol  `json:"symbol" validate:"required"`
		Owner    domain.Address `json:"owner" validate:"required"`
		Price    domain.Price   `json:"price" validate:"required"`
		Quantity int64          `json:"quantity" validate:"required"`
		Window   *windowPayload `json:"window"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.ListWithFixedPrice(ctx, &exchange.ListFixedPriceRequest{
		Symbol:   p.Symbol,
		Owner:    p.Owner,
		Price:    p.Price,
		Quantity: p.Quantity,
		Window:   p.Window.toWindow(),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) listEnglishAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol        domain.Symbol  `json:"symbol" validate:"required"`
		Owner         domain.Address `json:"owner" validate:"required"`
		StartingPrice domain.Price   `json:"startingPrice" validate:"required"`
		EarnestMoney  domain.Price   `json:"earnestMoney"`
		Quantity      int64          `json:"quantity" validate:"required"`
		Window        *windowPayload `json:"window"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.ListWithEnglishAuction(ctx, &exchange.ListEnglishAuctionRequest{
		Symbol:        p.Symbol,
		Owner:         p.Owner,
		StartingPrice: p.StartingPrice,
		EarnestMoney:  p.EarnestMoney,
		Quantity:      p.Quantity,
		Window:        p.Window.toWindow(),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) listDutchAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol        domain.Symbol  `json:"symbol" validate:"required"`
		Owner         domain.Address `json:"owner" validate:"required"`
		StartingPrice domain.Price   `json:"startingPrice" validate:"required"`
		EndingPrice   domain.Price   `json:"endingPrice" validate:"required"`
		Quantity      int64          `json:"quantity" validate:"required"`
		Window        *windowPayload `json:"window"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.ListWithDutchAuction(ctx, &exchange.ListDutchAuctionRequest{
		Symbol:        p.Symbol,
		Owner:         p.Owner,
		StartingPrice: p.StartingPrice,
		EndingPrice:   p.EndingPrice,
		Quantity:      p.Quantity,
		Window:        p.Window.toWindow(),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) delist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol   domain.Symbol  `json:"symbol" validate:"required"`
		Owner    domain.Address `json:"owner" validate:"required"`
		Price    *domain.Price  `json:"price"`
		Quantity int64          `json:"quantity" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.Delist(ctx, &exchange.DelistRequest{
		Symbol:   p.Symbol,
		Owner:    p.Owner,
		Price:    p.Price,
		Quantity: p.Quantity,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol *domain.Symbol  `query:"symbol"`
		Owner  *domain.Address `query:"owner"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []listing.FindAllOptionsFunc{}
	if p.Symbol != nil {
		opts = append(opts, listing.WithSymbol(*p.Symbol))
	}
	if p.Owner != nil {
		opts = append(opts, listing.WithOwner(*p.Owner))
	}
	if p.Limit > 0 {
		opts = append(opts, listing.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.listing.GetListings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) makeOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol     domain.Symbol  `json:"symbol" validate:"required"`
		From       domain.Address `json:"from" validate:"required"`
		To         domain.Address `json:"to"`
		Price      domain.Price   `json:"price" validate:"required"`
		Quantity   int64          `json:"quantity" validate:"required"`
		ExpireTime time.Time      `json:"expireTime"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.MakeOffer(ctx, &exchange.MakeOfferRequest{
		Symbol:     p.Symbol,
		From:       p.From,
		To:         p.To,
		Price:      p.Price,
		Quantity:   p.Quantity,
		ExpireTime: p.ExpireTime,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancelOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol    domain.Symbol   `json:"symbol" validate:"required"`
		Caller    domain.Address  `json:"caller" validate:"required"`
		OfferFrom domain.Address  `json:"offerFrom" validate:"required"`
		To        *domain.Address `json:"to"`
		Indices   []int           `json:"indices"`
		CancelBid bool            `json:"cancelBid"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.CancelOffer(ctx, &exchange.CancelOfferRequest{
		Symbol:    p.Symbol,
		Caller:    p.Caller,
		OfferFrom: p.OfferFrom,
		To:        p.To,
		Indices:   p.Indices,
		CancelBid: p.CancelBid,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol *domain.Symbol  `query:"symbol"`
		From   *domain.Address `query:"from"`
		To     *domain.Address `query:"to"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []offer.FindAllOptionsFunc{}
	if p.Symbol != nil {
		opts = append(opts, offer.WithSymbol(*p.Symbol))
	}
	if p.From != nil {
		opts = append(opts, offer.WithFrom(*p.From))
	}
	if p.To != nil {
		opts = append(opts, offer.WithTo(*p.To))
	}
	if p.Limit > 0 {
		opts = append(opts, offer.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.offer.GetOffers(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) deal(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol    domain.Symbol  `json:"symbol" validate:"required"`
		Seller    domain.Address `json:"seller" validate:"required"`
		OfferFrom domain.Address `json:"offerFrom" validate:"required"`
		Price     domain.Price   `json:"price" validate:"required"`
		Quantity  int64          `json:"quantity" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.exchange.Deal(ctx, &exchange.DealRequest{
		Symbol:    p.Symbol,
		Seller:    p.Seller,
		OfferFrom: p.OfferFrom,
		Price:     p.Price,
		Quantity:  p.Quantity,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getAuctionInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol domain.Symbol  `param:"symbol" validate:"required"`
		Owner  domain.Address `param:"owner" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.exchange.GetAuctionInfo(ctx, p.Symbol, p.Owner)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol domain.Symbol `param:"symbol" validate:"required"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.exchange.GetBids(ctx, p.Symbol)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := struct {
		Symbol *domain.Symbol      `query:"symbol"`
		Type   *exchange.EventType `query:"type"`
		Offset int32               `query:"offset"`
		Limit  int32               `query:"limit"`
	}{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []exchange.EventFindAllOptionsFunc{}
	if p.Symbol != nil {
		opts = append(opts, exchange.EventWithSymbol(*p.Symbol))
	}
	if p.Type != nil {
		opts = append(opts, exchange.EventWithType(*p.Type))
	}
	if p.Limit > 0 {
		opts = append(opts, exchange.EventWithPagination(p.Offset, p.Limit))
	}

	res, err := h.events.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, statusOf(err), err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func statusOf(err error) int {
	switch err {
	case domain.ErrNotFound, domain.ErrListingNotFound, domain.ErrOfferNotFound, domain.ErrAuctionNotFound:
		return http.StatusNotFound
	case domain.ErrUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrConflict, domain.ErrAuctionInProgress:
		return http.StatusConflict
	case domain.ErrBadParamInput, domain.ErrInvalidNumberFormat, domain.ErrInvalidPrice,
		domain.ErrInvalidQuantity, domain.ErrPriceRequired, domain.ErrOfferExpired,
		domain.ErrAuctionFinished, domain.ErrSelfTrade:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
