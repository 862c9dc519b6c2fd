package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appinventory "github.com/herbie65/Tesland2026-sub004/internal/application/inventory"
	"github.com/herbie65/Tesland2026-sub004/internal/application/usecase"
	appworkshop "github.com/herbie65/Tesland2026-sub004/internal/application/workshop"
	"github.com/herbie65/Tesland2026-sub004/internal/infrastructure/bex"
	"github.com/herbie65/Tesland2026-sub004/internal/infrastructure/postgres"
	httpRouter "github.com/herbie65/Tesland2026-sub004/internal/interfaces/http"
	"github.com/herbie65/Tesland2026-sub004/pkg/config"
	"github.com/herbie65/Tesland2026-sub004/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	productRepo := postgres.NewProductRepository(pool)

	// BeX client only when configured; without it back-orders are placed
	// manually via mark-ordered.
	var supplier appworkshop.SupplierGateway
	if cfg.Bex.BaseURL != "" {
		supplier = bex.NewClient(cfg.Bex, log)
	}

	ledgerUC := appinventory.NewLedgerUseCase(txRunner, log)
	workOrderUC := appworkshop.NewWorkOrderUseCase(txRunner, log)
	partsLineUC := appworkshop.NewPartsLineUseCase(txRunner, ledgerUC, log)
	backOrderUC := appworkshop.NewBackOrderUseCase(txRunner, ledgerUC, supplier, log)
	productUC := usecase.NewProductUseCase(productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tesland Werkplaats API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledgerUC,
		WorkOrderUC: workOrderUC,
		PartsLineUC: partsLineUC,
		BackOrderUC: backOrderUC,
		ProductUC:   productUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
