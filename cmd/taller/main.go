package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/jana-studio/taller/internal/app"
	"github.com/jana-studio/taller/internal/budgets"
	"github.com/jana-studio/taller/internal/catalog/materials"
	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/clients"
	"github.com/jana-studio/taller/internal/document"
	"github.com/jana-studio/taller/internal/ledger"
	"github.com/jana-studio/taller/internal/observability"
	"github.com/jana-studio/taller/internal/platform/cache"
	"github.com/jana-studio/taller/internal/platform/db"
	"github.com/jana-studio/taller/internal/rowstore"
	"github.com/jana-studio/taller/internal/settings"
	"github.com/jana-studio/taller/internal/storefront"
	"github.com/jana-studio/taller/jobs"
	"github.com/jana-studio/taller/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	// Without a DSN every store call fails with ErrNotConfigured; the
	// server still starts so the deployment problem is visible over HTTP.
	var store rowstore.Store = rowstore.NewUnconfigured()
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()

		pg := rowstore.NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("ensure schema", slog.Any("error", err))
			os.Exit(1)
		}
		store = pg
	} else {
		logger.Warn("PG_DSN not set, row store is unconfigured")
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	materialRepo := materials.NewRepository(store)
	materialService := materials.NewService(materialRepo)
	materialHandler := materials.NewHandler(logger, materialService)

	productRepo := products.NewRepository(store)
	productService := products.NewService(productRepo, materialRepo)
	productHandler := products.NewHandler(logger, productService)

	clientRepo := clients.NewRepository(store)
	clientService := clients.NewService(clientRepo)
	clientHandler := clients.NewHandler(logger, clientService)

	ledgerRepo := ledger.NewRepository(store)
	ledgerService := ledger.NewService(ledgerRepo)
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	budgetRepo := budgets.NewRepository(store)
	budgetService := budgets.NewService(budgetRepo, productRepo, ledgerService, logger)
	budgetHandler := budgets.NewHandler(logger, budgetService, metrics)

	settingsService := settings.NewService(store, redisClient, logger)
	settingsHandler := settings.NewHandler(logger, settingsService)

	reportClient := report.NewClient(cfg.GotenbergURL)
	documentService := document.NewService(budgetService, clientRepo, productRepo, settingsService, reportClient, cfg.BrandName, cfg.StoreWhatsApp)
	documentHandler := document.NewHandler(logger, documentService)

	storefrontService := storefront.NewService(productRepo, redisClient, settingsService, cfg.StoreWhatsApp)
	storefrontHandler := storefront.NewHandler(logger, storefrontService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		MaterialsHandler:  materialHandler,
		ProductsHandler:   productHandler,
		ClientsHandler:    clientHandler,
		BudgetsHandler:    budgetHandler,
		LedgerHandler:     ledgerHandler,
		DocumentHandler:   documentHandler,
		SettingsHandler:   settingsHandler,
		StorefrontHandler: storefrontHandler,
		JobsHandler:       jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
