package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/domain"
	"github.com/kossodo/merch-api/internal/domain/entity"
)

// InventoryHandler maneja el libro de inventario y el registro de productos.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar inventario de una unidad
// @Description  Filas más recientes primero; cada fila trae todos los productos conocidos (0 si no se mencionó).
// @Tags         inventario
// @Produce      json
// @Param        tabla  query  string  true  "kossodo o kossomet"
// @Success      200    {array}   dto.InventoryEntryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	unit, err := entity.ParseBusinessUnit(c.Query("tabla"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.Context(), unit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Append godoc
// @Summary      Registrar entrega de inventario
// @Description  Acepta responsable, observaciones y claves merch_* con cantidades enteras.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        tabla  query  string  true  "kossodo o kossomet"
// @Param        body   body   map[string]interface{}  true  "responsable, observaciones, merch_*"
// @Success      201    {object}  dto.CreatedResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /api/inventario [post]
func (h *InventoryHandler) Append(c *fiber.Ctx) error {
	unit, err := entity.ParseBusinessUnit(c.Query("tabla"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AppendInventoryRequest
	if err := decodeBody(c, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Append(c.Context(), unit, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Message: "registro agregado", ID: id})
}

// NewProduct godoc
// @Summary      Dar de alta un producto
// @Description  Registra el producto (idempotente) e inserta una fila semilla con la cantidad inicial.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NewProductRequest  true  "grupo, nombre_producto, columna, cantidad"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/nuevo_producto [post]
func (h *InventoryHandler) NewProduct(c *fiber.Ctx) error {
	var in dto.NewProductRequest
	if err := decodeBody(c, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.NewProduct(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Message: "producto agregado", ID: id})
}

// ListProducts godoc
// @Summary      Listar productos registrados
// @Tags         inventario
// @Produce      json
// @Param        grupo  query  string  true  "kossodo o kossomet"
// @Success      200    {array}   dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	unit, err := entity.ParseBusinessUnit(c.Query("grupo"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListProducts(c.Context(), unit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// decodeBody decodifica el JSON del cuerpo. Los errores de validación de los DTO conservan su
// mensaje; cualquier otro fallo de parseo se reporta como cuerpo inválido.
func decodeBody(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return fmt.Errorf("%w: cuerpo vacío", domain.ErrInvalidInput)
	}
	if err := json.Unmarshal(body, v); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	return nil
}
