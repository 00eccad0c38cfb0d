package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/giftcard"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/inventory"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/pricing"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/purchasing"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/sales"
	"github.com/jcastillo-dev/pos-backoffice/internal/infrastructure/postgres"
	httpRouter "github.com/jcastillo-dev/pos-backoffice/internal/interfaces/http"
	"github.com/jcastillo-dev/pos-backoffice/pkg/config"
	"github.com/jcastillo-dev/pos-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	presentationRepo := postgres.NewPresentationRepository(pool)
	priceRuleRepo := postgres.NewPriceRuleRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	giftCardRepo := postgres.NewGiftCardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	vatRate := decimal.NewFromFloat(cfg.Sales.VATRate)
	defaultMargin := decimal.NewFromFloat(cfg.Sales.DefaultMargin)

	resolver := pricing.NewResolver(priceRuleRepo, defaultMargin, log)
	purchaseUC := purchasing.NewUseCase(txRunner, productRepo, branchRepo,
		presentationRepo, purchaseRepo, resolver, vatRate, log)
	saleUC := sales.NewUseCase(txRunner, branchRepo, saleRepo, vatRate, log)
	giftCardUC := giftcard.NewUseCase(txRunner, giftCardRepo, log)
	stockUC := inventory.NewUseCase(stockRepo, movementRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		PurchaseUC: purchaseUC,
		SaleUC:     saleUC,
		GiftCardUC: giftCardUC,
		StockUC:    stockUC,
		PriceRules: priceRuleRepo,
		Resolver:   resolver,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
