package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/GhaniKale/skincare-marketplace/internal/cart"
	"github.com/GhaniKale/skincare-marketplace/internal/catalog"
	"github.com/GhaniKale/skincare-marketplace/internal/checkout"
	"github.com/GhaniKale/skincare-marketplace/internal/router"
	"github.com/GhaniKale/skincare-marketplace/pkg/ai"
	"github.com/GhaniKale/skincare-marketplace/pkg/config"
	"github.com/GhaniKale/skincare-marketplace/pkg/logger"
	"github.com/GhaniKale/skincare-marketplace/pkg/mongo"
	"github.com/GhaniKale/skincare-marketplace/pkg/notify"
	"github.com/GhaniKale/skincare-marketplace/pkg/redis"
	"github.com/GhaniKale/skincare-marketplace/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: !cfg.IsProduction(),
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 15*time.Second)
	client, err := mongo.Connect(connectCtx, cfg.MongoURI)
	connectCancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongo disconnect error", slog.Any("err", err))
		}
	}()
	log.Info("connected to MongoDB", slog.String("database", cfg.MongoDatabase))

	store := mongo.NewStore(client.Database(cfg.MongoDatabase))
	indexCtx, indexCancel := context.WithTimeout(ctx, 30*time.Second)
	err = store.EnsureIndexes(indexCtx, log)
	indexCancel()
	if err != nil {
		return err
	}

	rdb := redis.NewClient(cfg)
	defer rdb.Close()
	if err := redis.Ping(ctx, rdb); err != nil {
		log.Warn("redis unreachable, catalog reads go to MongoDB", slog.Any("err", err))
	}

	hub := notify.NewHub(log, cfg.CORSOrigins)
	defer hub.Close()

	reader := catalog.NewReader(store, redis.NewCatalogCache(rdb, cfg.CatalogCacheTTL), log)
	if err := reader.Warm(ctx); err != nil {
		log.Warn("initial catalog warm failed", slog.Any("err", err))
	}
	warmer, err := reader.StartWarmer(cfg.CatalogRefreshSpec)
	if err != nil {
		return err
	}
	defer func() { <-warmer.Stop().Done() }()

	carts := cart.NewStore(store, reader, log)
	handler := router.NewHandler(router.Deps{
		Catalog:  reader,
		Carts:    carts,
		Checkout: checkout.NewProcessor(carts, store, hub, log),
		Orders:   store,
		Reports:  ai.NewReporter(ai.FromConfig(cfg, log), store, log),
		Hub:      hub,
		Health: map[string]router.HealthCheck{
			"mongo": store.Ping,
			"redis": func(ctx context.Context) error { return redis.Ping(ctx, rdb) },
		},
		Log: log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewEngine(cfg, handler),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
	return nil
}
