package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/kossodo/merch-api/internal/application/dto"
	"github.com/kossodo/merch-api/internal/application/request"
)

// RequestHandler maneja solicitudes y confirmaciones.
type RequestHandler struct {
	uc    *request.RequestUseCase
	sheet *request.SheetUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *request.RequestUseCase, sheet *request.SheetUseCase) *RequestHandler {
	return &RequestHandler{uc: uc, sheet: sheet}
}

// Create godoc
// @Summary      Registrar solicitud
// @Description  Guarda la solicitud en estado pending y encola el aviso por correo. productos acepta lista u objeto.
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "solicitante, grupo, ruc, fecha_visita, cantidad_packs, productos, catalogos"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/solicitud [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := decodeBody(c, &in); err != nil {
		return writeError(c, err)
	}
	id, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Message: "solicitud registrada", ID: id})
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         solicitudes
// @Produce      json
// @Param        status  query  string  false  "pending o confirmed"
// @Param        id      query  int     false  "id de la solicitud"
// @Success      200     {array}   dto.RequestResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/solicitudes [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"), c.Query("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener solicitud
// @Tags         solicitudes
// @Produce      json
// @Param        id   path  int  true  "id de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := request.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Hoja PDF de la solicitud
// @Tags         solicitudes
// @Produce      application/pdf
// @Param        id   path  int  true  "id de la solicitud"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/pdf [get]
func (h *RequestHandler) Sheet(c *fiber.Ctx) error {
	id, err := request.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	pdf, filename, err := h.sheet.Download(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}

// Confirm godoc
// @Summary      Confirmar solicitud
// @Description  pending -> confirmed en una transacción. Sin cantidades se confirma lo pedido (packs × unidades por pack).
// @Tags         solicitudes
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "id de la solicitud"
// @Param        body  body  map[string]interface{}  true  "confirmado_por, observaciones, productos (objeto {clave: cantidad}, la lista se rechaza) o merch_*"
// @Success      200   {object}  dto.ConfirmationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/solicitudes/{id}/confirm [put]
func (h *RequestHandler) Confirm(c *fiber.Ctx) error {
	id, err := request.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ConfirmRequestRequest
	if err := decodeBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Confirm(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud confirmada", "confirmacion": out})
}

// ListConfirmations godoc
// @Summary      Listar confirmaciones
// @Tags         solicitudes
// @Produce      json
// @Param        grupo  query  string  false  "kossodo o kossomet; vacío = todas"
// @Success      200    {array}   dto.ConfirmationResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/confirmaciones [get]
func (h *RequestHandler) ListConfirmations(c *fiber.Ctx) error {
	out, err := h.uc.ListConfirmations(c.Context(), c.Query("grupo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
