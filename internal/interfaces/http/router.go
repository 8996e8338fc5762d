package http

import (
	"github.com/gofiber/fiber/v2"

	appledger "github.com/stockpilot/stockpilot-api/internal/application/ledger"
	"github.com/stockpilot/stockpilot-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ApplyMovement *appledger.ApplyMovementUseCase
	ListMovements *appledger.ListMovementsUseCase
	ProductUC     *usecase.ProductUseCase
	LocationUC    *usecase.LocationUseCase
	StockUC       *usecase.StockUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ledger de movimientos (núcleo)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.ApplyMovement, deps.ListMovements)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)

	// Proyección de saldos (solo lectura)
	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock", stockHandler.Get)

	// Registro de productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Registro de ubicaciones
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Patch("/:id/deactivate", locationHandler.Deactivate)
}
