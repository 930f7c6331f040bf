package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/marqenbd/marqen-backend/api/routes"
	cartsvc "github.com/marqenbd/marqen-backend/internal/cart"
	catalogsvc "github.com/marqenbd/marqen-backend/internal/catalog"
	checkoutsvc "github.com/marqenbd/marqen-backend/internal/checkout"
	dashboardsvc "github.com/marqenbd/marqen-backend/internal/dashboard"
	notifysvc "github.com/marqenbd/marqen-backend/internal/notify"
	ordersvc "github.com/marqenbd/marqen-backend/internal/orders"
	pixelsvc "github.com/marqenbd/marqen-backend/internal/pixel"
	"github.com/marqenbd/marqen-backend/pkg/config"
	"github.com/marqenbd/marqen-backend/pkg/db"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/metrics"
	"github.com/marqenbd/marqen-backend/pkg/migrate"
	"github.com/marqenbd/marqen-backend/pkg/redis"
	"github.com/marqenbd/marqen-backend/pkg/resend"
	"github.com/marqenbd/marqen-backend/pkg/storefront"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	upstream, err := storefront.New(cfg.Upstream, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create upstream client", err)
		os.Exit(1)
	}

	pixelService, err := pixelsvc.NewService(cfg.Pixel, redisClient, logg, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create pixel service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewRepository(dbClient.DB()), pixelService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	snapshotService, err := ordersvc.NewSnapshotService(cfg.Orders, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot service", err)
		os.Exit(1)
	}

	notifyService, err := notifysvc.NewService(resend.New(cfg.Resend), cfg.Resend, logg, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create notify service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		cartService,
		upstream,
		notifyService,
		snapshotService,
		pixelService,
		logg,
		storefrontMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	catalogService, err := catalogsvc.NewService(cfg.Catalog, upstream, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboardsvc.NewService(upstream)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
			Cart:      cartService,
			Checkout:  checkoutService,
			Catalog:   catalogService,
			Dashboard: dashboardService,
			Notify:    notifyService,
			Pixel:     pixelService,
			Snapshots: snapshotService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
