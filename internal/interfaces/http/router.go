package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/restock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *inventory.Ledger
	Migration   *inventory.MigrationUseCase
	Restock     *restock.UseCase
	Abc         *analytics.AbcUseCase
	JWTSecret   string
	SwaggerFile string // vacío o inexistente = sin UI
	AppName     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			// Swagger UI: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Inventario Ledger API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	operators := RequireRole(RoleAdmin, RoleBodeguero)
	adminOnly := RequireRole(RoleAdmin)

	// Inventory: ajustes y consulta del ledger
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Migration)
	invGroup.Post("/movements", operators, inventoryHandler.CreateMovement)
	invGroup.Post("/movements/batch", operators, inventoryHandler.CreateMovementBatch)
	invGroup.Get("/products/:id/movements", inventoryHandler.ProductHistory)
	invGroup.Get("/products/:id/stock-at", inventoryHandler.StockAt)
	invGroup.Post("/migrations/initial-stock", adminOnly, inventoryHandler.MigrateInitialStock)

	// Restock orders
	orders := api.Group("/restock-orders", operators)
	restockHandler := NewRestockHandler(deps.Restock)
	orders.Post("/", restockHandler.Create)
	orders.Get("/", restockHandler.List)
	orders.Get("/:id", restockHandler.GetByID)
	orders.Put("/:id", restockHandler.Update)
	orders.Delete("/:id", restockHandler.Delete)
	orders.Post("/:id/order", restockHandler.MarkOrdered)
	orders.Post("/:id/cancel", restockHandler.Cancel)
	orders.Post("/:id/receive", restockHandler.Receive)
	orders.Get("/:id/pdf", restockHandler.PDF)

	// Analytics
	analyticsGroup := api.Group("/analytics", adminOnly)
	analyticsHandler := NewAnalyticsHandler(deps.Abc)
	analyticsGroup.Post("/abc/recompute", analyticsHandler.RecomputeAbc)
}
