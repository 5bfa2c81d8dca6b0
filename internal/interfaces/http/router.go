package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/application/request"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *inventory.InventoryUseCase
	StockUC     *inventory.StockUseCase
	RequestUC   *request.RequestUseCase
	SheetUC     *request.SheetUseCase
}

// Router registra las rutas de la API. No hay autenticación: es una herramienta interna.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	api.Get("/inventario", inventoryHandler.List)
	api.Post("/inventario", inventoryHandler.Append)
	api.Post("/nuevo_producto", inventoryHandler.NewProduct)
	api.Get("/productos", inventoryHandler.ListProducts)

	stockHandler := NewStockHandler(deps.StockUC)
	api.Get("/stock", stockHandler.Get)

	requestHandler := NewRequestHandler(deps.RequestUC, deps.SheetUC)
	api.Post("/solicitud", requestHandler.Create)
	solicitudes := api.Group("/solicitudes")
	solicitudes.Get("/", requestHandler.List)
	solicitudes.Get("/:id", requestHandler.Get)
	solicitudes.Get("/:id/pdf", requestHandler.Sheet)
	solicitudes.Put("/:id/confirm", requestHandler.Confirm)
	api.Get("/confirmaciones", requestHandler.ListConfirmations)
}
