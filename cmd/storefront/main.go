package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/cart"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/catalog"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/checkout"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/config"
	httpapi "github.com/Danielagboola52/audiophile-ecommerce/internal/http"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/notifier"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/repository"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	cat, err := catalog.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load product catalog")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := repository.ConnectMongoDB(ctx, repository.MongoConfig{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		ConnectTimeout: cfg.MongoConnectTimeout,
		MaxPoolSize:    cfg.MongoMaxPoolSize,
		MinPoolSize:    cfg.MongoMinPoolSize,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	orderRepo := repository.NewMongoRepository(db)
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = orderRepo.CreateIndexes(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create order indexes")
	}

	cartStore := cart.NewStore()
	defer cartStore.Close()

	emailNotifier := notifier.NewResendNotifier(cfg.ResendAPIKey, cfg.EmailFrom, cfg.BaseURL)
	checkoutSvc := checkout.NewService(cartStore, orderRepo, emailNotifier, cfg.SubmitTimeout)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Products:       httpapi.NewProductHandler(cat),
		Cart:           httpapi.NewCartHandler(cartStore, cat),
		Checkout:       httpapi.NewCheckoutHandler(checkoutSvc),
		Orders:         httpapi.NewOrdersHandler(orderRepo, cfg.SubmitTimeout),
		Confirmation:   httpapi.NewConfirmationHandler(emailNotifier, cfg.SubmitTimeout),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
