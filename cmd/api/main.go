package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tmekonnen/stockroom-backend/api/routes"
	authsvc "github.com/tmekonnen/stockroom-backend/internal/auth"
	"github.com/tmekonnen/stockroom-backend/internal/bills"
	"github.com/tmekonnen/stockroom-backend/internal/catalog"
	"github.com/tmekonnen/stockroom-backend/internal/customers"
	"github.com/tmekonnen/stockroom-backend/internal/deliveries"
	"github.com/tmekonnen/stockroom-backend/internal/inventory"
	"github.com/tmekonnen/stockroom-backend/internal/invoices"
	"github.com/tmekonnen/stockroom-backend/internal/purchases"
	"github.com/tmekonnen/stockroom-backend/internal/sales"
	"github.com/tmekonnen/stockroom-backend/internal/users"
	"github.com/tmekonnen/stockroom-backend/internal/vendors"
	"github.com/tmekonnen/stockroom-backend/pkg/config"
	"github.com/tmekonnen/stockroom-backend/pkg/db"
	"github.com/tmekonnen/stockroom-backend/pkg/logger"
	"github.com/tmekonnen/stockroom-backend/pkg/metrics"
	"github.com/tmekonnen/stockroom-backend/pkg/migrate"
	"github.com/tmekonnen/stockroom-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	svcs, err := buildServices(dbClient, cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, promRegistry, httpMetrics, svcs),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server stopped")
	}
}

func buildServices(dbClient *db.Client, cfg *config.Config) (routes.Services, error) {
	gdb := dbClient.DB()
	ledger := inventory.NewLedger()

	usersRepo := users.NewRepository(gdb)
	usersService, err := users.NewService(usersRepo, dbClient, cfg.Password)
	if err != nil {
		return routes.Services{}, err
	}

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:  usersRepo,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		return routes.Services{}, err
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	customersService, err := customers.NewService(customers.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	vendorsService, err := vendors.NewService(vendors.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	salesService, err := sales.NewService(sales.NewRepository(gdb), dbClient, ledger)
	if err != nil {
		return routes.Services{}, err
	}

	purchasesService, err := purchases.NewService(purchases.NewRepository(gdb), dbClient, ledger)
	if err != nil {
		return routes.Services{}, err
	}

	deliveriesService, err := deliveries.NewService(deliveries.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	invoicesService, err := invoices.NewService(invoices.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	billsService, err := bills.NewService(bills.NewRepository(gdb), dbClient)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authService,
		Users:      usersService,
		Catalog:    catalogService,
		Customers:  customersService,
		Vendors:    vendorsService,
		Sales:      salesService,
		Purchases:  purchasesService,
		Deliveries: deliveriesService,
		Invoices:   invoicesService,
		Bills:      billsService,
	}, nil
}
