package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Aadcode/greenmile-integration/configs"
	"github.com/Aadcode/greenmile-integration/internal/cache"
	"github.com/Aadcode/greenmile-integration/internal/cart"
	"github.com/Aadcode/greenmile-integration/internal/checkout"
	"github.com/Aadcode/greenmile-integration/internal/events"
	"github.com/Aadcode/greenmile-integration/internal/guard"
	bridgehttp "github.com/Aadcode/greenmile-integration/internal/http"
	"github.com/Aadcode/greenmile-integration/internal/logging"
	"github.com/Aadcode/greenmile-integration/internal/medusa"
	"github.com/Aadcode/greenmile-integration/internal/pricing"
	"github.com/Aadcode/greenmile-integration/internal/session"
)

func main() {
	cfg, err := configs.Load(os.Getenv("GM_CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	log := logging.Init(cfg.App.Name, cfg.App.LogFile)

	storeClient := medusa.NewClient(cfg.Medusa.BaseURL, cfg.Medusa.Timeout, logging.New("medusa"))
	pricingClient := pricing.NewClient(cfg.Pricing.BaseURL, cfg.Pricing.Timeout, logging.New("pricing"))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	variantSource := cache.NewCachingVariantSource(
		cache.NewRedisCache(redisClient),
		storeClient,
		logging.New("variant-cache"),
	)

	publisher := events.NewPublisher(logging.New("events"), cfg.Kafka.Brokers...)

	flow, err := checkout.NewFlow(storeClient, cfg.Checkout.PathTemplate, logging.New("checkout"))
	if err != nil {
		log.Error("checkout flow init failed", "err", err)
		os.Exit(1)
	}

	sessions := session.Manager{}
	addGuard := guard.New(variantSource, logging.New("guard"))
	mutator := cart.NewMutator(logging.New("cart"))

	router := bridgehttp.NewRouter(bridgehttp.Handlers{
		Guard:    bridgehttp.NewGuardHandler(addGuard, publisher, cfg.HTTP.RequestTimeout),
		Checkout: bridgehttp.NewCheckoutHandler(flow, sessions, publisher, cfg.HTTP.RequestTimeout),
		Cart:     bridgehttp.NewCartHandler(storeClient, mutator, sessions, publisher, cfg.HTTP.RequestTimeout),
		Pricing:  bridgehttp.NewPricingHandler(pricingClient, cfg.Pricing.Shop, cfg.HTTP.RequestTimeout, logging.New("pricing")),
	})

	srv := &http.Server{
		Addr:         cfg.App.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("greenmile bridge listening", "addr", cfg.App.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.RequestTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}
