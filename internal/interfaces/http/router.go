package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo-dev/pos-backoffice/internal/application/giftcard"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/inventory"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/pricing"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/purchasing"
	"github.com/jcastillo-dev/pos-backoffice/internal/application/sales"
	"github.com/jcastillo-dev/pos-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PurchaseUC *purchasing.UseCase
	SaleUC     *sales.UseCase
	GiftCardUC *giftcard.UseCase
	StockUC    *inventory.UseCase
	PriceRules repository.PriceRuleRepository
	Resolver   *pricing.Resolver
	JWTSecret  string
}

// Router registra las rutas de la API. Todas pasan por el middleware de
// identidad: el token es opcional y solo aporta el nombre para auditoría.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", IdentityMiddleware(deps.JWTSecret))

	// Compras
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Register)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Register)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Stock y bitácora
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/movements/product/:id", stockHandler.MovementsByProduct)
	stock.Get("/movements/branch/:id", stockHandler.MovementsByBranch)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Patch("/:id/active", stockHandler.SetActive)

	// Gift cards
	cards := api.Group("/giftcards")
	giftCardHandler := NewGiftCardHandler(deps.GiftCardUC)
	cards.Post("/", giftCardHandler.Issue)
	cards.Get("/", giftCardHandler.List)
	cards.Get("/balance/:code", giftCardHandler.Balance)
	cards.Get("/by-code/:code", giftCardHandler.GetByCode)
	cards.Post("/redeem/:code", giftCardHandler.Redeem)
	cards.Put("/:id", giftCardHandler.Update)
	cards.Delete("/:id", giftCardHandler.Void)
	cards.Get("/:id", giftCardHandler.GetByID)

	// Reglas de precio
	rules := api.Group("/price-rules")
	priceRuleHandler := NewPriceRuleHandler(deps.PriceRules, deps.Resolver)
	rules.Post("/", priceRuleHandler.Create)
	rules.Get("/", priceRuleHandler.List)
	rules.Get("/resolve", priceRuleHandler.Resolve)
	rules.Get("/:id", priceRuleHandler.GetByID)
	rules.Put("/:id", priceRuleHandler.Update)
}
