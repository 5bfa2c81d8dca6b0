package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/domain/entity"
)

// StockHandler expone el recálculo de stock.
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Recalcular stock
// @Description  Suma el inventario, resta lo confirmado, guarda el resumen y lo devuelve. Puede ser negativo.
// @Tags         stock
// @Produce      json
// @Param        grupo  query  string  true  "kossodo o kossomet"
// @Success      200    {object}  dto.StockResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	unit, err := entity.ParseBusinessUnit(c.Query("grupo"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Compute(c.Context(), unit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
