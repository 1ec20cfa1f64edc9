package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/sgiordano/ventapos-backend/api/routes"
	"github.com/sgiordano/ventapos-backend/internal/accounts"
	"github.com/sgiordano/ventapos-backend/internal/catalog"
	"github.com/sgiordano/ventapos-backend/internal/customers"
	"github.com/sgiordano/ventapos-backend/internal/numbering"
	"github.com/sgiordano/ventapos-backend/internal/registers"
	"github.com/sgiordano/ventapos-backend/internal/sales"
	"github.com/sgiordano/ventapos-backend/internal/stock"
	"github.com/sgiordano/ventapos-backend/internal/treasury"
	"github.com/sgiordano/ventapos-backend/pkg/config"
	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
	"github.com/sgiordano/ventapos-backend/pkg/metrics"
	"github.com/sgiordano/ventapos-backend/pkg/migrate"
	"github.com/sgiordano/ventapos-backend/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	saleMetrics := metrics.NewSaleMetrics(promRegistry)

	registersService := registers.NewService(dbClient)

	mappingCache := treasury.NewMappingCache(redisClient, cfg.Sales.MappingCacheTTL, logg)
	salesService, err := sales.NewService(sales.ServiceParams{
		DB:        dbClient,
		Repo:      sales.NewRepo(dbClient.DB()),
		Registers: registersService,
		Sequencer: numbering.NewSequencer(),
		Stock:     stock.NewLedger(),
		Accounts:  accounts.NewService(),
		Treasury:  treasury.NewService(mappingCache),
		Catalog:   catalog.NewRepo(),
		Customers: customers.NewRepo(),
		Config:    cfg.Sales,
		Logger:    logg,
		Metrics:   saleMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, salesService, registersService, promRegistry),
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	var shutdownErr error
	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received, draining connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		shutdownErr = server.Shutdown(shutdownCtx)
	}

	shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	shutdownErr = multierr.Append(shutdownErr, dbClient.Close())
	if shutdownErr != nil {
		logg.Error(ctx, "shutdown finished with errors", shutdownErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
