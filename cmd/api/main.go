package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mkandreum/rodetespruebas/internal/app"
	"github.com/mkandreum/rodetespruebas/internal/clock"
	"github.com/mkandreum/rodetespruebas/internal/config"
	"github.com/mkandreum/rodetespruebas/internal/storage/postgres"
	"github.com/mkandreum/rodetespruebas/internal/storage/rediscache"
	transporthttp "github.com/mkandreum/rodetespruebas/internal/transport/http"
	"github.com/mkandreum/rodetespruebas/migrations"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		logger.WithError(err).Debug("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.StartupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.Database.URL)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.WithError(err).Fatal("db ping")
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}

	// The counter cache is optional; without Redis the listings read the
	// stored column directly.
	var cache app.CounterCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(startupCtx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable, counter cache disabled")
		} else {
			cache = rediscache.NewCounterCache(rdb, cfg.Redis.TTL)
			defer func() { _ = rdb.Close() }()
		}
	}

	clk := clock.NewSystem()

	reconcileRepo := postgres.NewReconcileRepository(pool)
	reconcileSvc := app.NewReconcileService(reconcileRepo, cache)

	ticketRepo := postgres.NewTicketRepository(pool)
	ticketSvc := app.NewTicketService(ticketRepo, clk, reconcileSvc,
		app.WithAllowedDomains(cfg.Tickets.AllowedDomains),
		app.WithLogger(logger))

	merchRepo := postgres.NewMerchRepository(pool)
	merchSvc := app.NewMerchService(merchRepo, clk)

	redemptionRepo := postgres.NewRedemptionRepository(pool)
	redemptionSvc := app.NewRedemptionService(redemptionRepo, clk)

	catalogRepo := postgres.NewCatalogRepository(pool)
	catalogSvc := app.NewCatalogService(catalogRepo, cache, clk)

	adminRepo := postgres.NewAdminRepository(pool)
	adminSvc := app.NewAdminService(adminRepo, clk, reconcileSvc)

	backupRepo := postgres.NewBackupRepository(pool)
	backupSvc := app.NewBackupService(backupRepo, reconcileSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/events", transporthttp.HandleListEvents(catalogSvc))
	mux.Handle("/drags", transporthttp.HandleListDrags(catalogSvc))
	mux.Handle("/drags/", transporthttp.HandleListMerchItems(catalogSvc))
	mux.Handle("/tickets", transporthttp.HandleIssueTicket(ticketSvc))
	mux.Handle("/tickets/", transporthttp.HandleRedeemTicket(redemptionSvc))
	mux.Handle("/merch/sales", transporthttp.HandleCreateSale(merchSvc))
	mux.Handle("/merch/sales/", transporthttp.HandleRedeemSale(redemptionSvc))
	mux.Handle("/scan", transporthttp.HandleScan(redemptionSvc))
	mux.Handle("/admin/events", transporthttp.HandleAdminEvents(adminSvc))
	mux.Handle("/admin/events/", transporthttp.HandleAdminEventActions(adminSvc, reconcileSvc))
	mux.Handle("/admin/drags", transporthttp.HandleAdminDrags(adminSvc))
	mux.Handle("/admin/drags/", transporthttp.HandleAdminDragSales(adminSvc))
	mux.Handle("/admin/merch", transporthttp.HandleAdminMerchItems(adminSvc))
	mux.Handle("/admin/orders/", transporthttp.HandleAdminDeleteOrder(adminSvc))
	mux.Handle("/admin/sales/", transporthttp.HandleAdminDeleteSale(adminSvc))
	mux.Handle("/admin/reconcile", transporthttp.HandleReconcileAll(reconcileSvc))
	mux.Handle("/admin/backup", transporthttp.HandleBackup(backupSvc))
	mux.Handle("/admin/restore", transporthttp.HandleRestore(backupSvc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.Server.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	logger.WithField("port", cfg.Server.Port).Info("api listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server stopped")
}
