package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Abarrotes-api/internal/application/ordering"
	"github.com/jhoicas/Abarrotes-api/internal/application/ports"
	"github.com/jhoicas/Abarrotes-api/internal/application/query"
	"github.com/jhoicas/Abarrotes-api/internal/application/usecase"
	"github.com/jhoicas/Abarrotes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	ClientUC  *usecase.ClientUseCase
	OrderUC   *usecase.OrderUseCase
	Ledger    ordering.OrderLedger
	Queries   *query.Facade
	Restock   ports.RestockReportRenderer // opcional: habilita /api/reports/low-stock.pdf
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Queries, log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.Queries, log)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Pedidos: toda escritura pasa por el ledger
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Ledger, deps.OrderUC, deps.Queries, log)
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Amend)
	orders.Delete("/:id", orderHandler.Cancel)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Queries, deps.Restock, log)
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/low-stock", reportHandler.LowStock)
	if deps.Restock != nil {
		reports.Get("/low-stock.pdf", reportHandler.LowStockPDF)
	}
}

// Health GET /health
func Health(appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": appName})
	}
}
