package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/log"
	bValidator "github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/exchange"
	mmiddleware "github.com/x-xyz/marketplace/middleware"
	"github.com/x-xyz/marketplace/service/query"
	event_repository "github.com/x-xyz/marketplace/stores/event/repository"
	exchange_delivery "github.com/x-xyz/marketplace/stores/exchange/delivery/http"
	exchange_usecase "github.com/x-xyz/marketplace/stores/exchange/usecase"
	ledger_repository "github.com/x-xyz/marketplace/stores/ledger/repository"
	listing_repository "github.com/x-xyz/marketplace/stores/listing/repository"
	listing_usecase "github.com/x-xyz/marketplace/stores/listing/usecase"
	offer_repository "github.com/x-xyz/marketplace/stores/offer/repository"
	offer_usecase "github.com/x-xyz/marketplace/stores/offer/usecase"
	whitelist_repository "github.com/x-xyz/marketplace/stores/whitelist/repository"
	whitelist_usecase "github.com/x-xyz/marketplace/stores/whitelist/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Init(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	marketCfg := exchange.Cfg{
		FeeRateBp:          viper.GetInt64("market.feeRateBp"),
		FeeReceiver:        domain.Address(viper.GetString("market.feeReceiver")).ToLower(),
		Admin:              domain.Address(viper.GetString("market.admin")).ToLower(),
		DefaultOfferExpire: viper.GetDuration("market.defaultOfferExpire"),
	}

	// construct repository, usecase and delivery
	listingRepo := listing_repository.New(q)
	offerRepo := offer_repository.NewOfferRepo(q)
	bidRepo := offer_repository.NewBidRepo(q)
	eventRepo := event_repository.New(q)
	ledgerService := ledger_repository.New(q)
	whitelistService := whitelist_repository.New(q)

	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo: listingRepo,
		EventRepo:   eventRepo,
	})
	offerUC := offer_usecase.New(&offer_usecase.OfferUseCaseCfg{
		OfferRepo: offerRepo,
		EventRepo: eventRepo,
	})
	priceGate := whitelist_usecase.New(&whitelist_usecase.PriceGateCfg{
		Whitelist: whitelistService,
	})
	exchangeUC := exchange_usecase.New(&exchange_usecase.ExchangeUseCaseCfg{
		Cfg:         marketCfg,
		ListingRepo: listingRepo,
		ListingUC:   listingUC,
		OfferRepo:   offerRepo,
		OfferUC:     offerUC,
		BidRepo:     bidRepo,
		EventRepo:   eventRepo,
		Ledger:      ledgerService,
		PriceGate:   priceGate,
		Tx:          q,
		Clock:       clock.New(),
	})

	exchange_delivery.New(e, exchangeUC, listingUC, offerUC, eventRepo)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
