package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pansoft/panaderia-mrp/internal/application/documents"
	"github.com/pansoft/panaderia-mrp/internal/application/dto"
)

// ProductionHandler maneja las peticiones HTTP de órdenes de producción.
type ProductionHandler struct {
	uc *documents.ProductionOrderUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *documents.ProductionOrderUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Planificar orden de producción (no consume stock)
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Orden con sus requerimientos"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/produccion [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *ProductionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "VALIDACION", "id inválido")
	}
	out, err := h.uc.Get(int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ProductionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "VALIDACION", "id inválido")
	}
	var in dto.UpdateStatusRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	if err := h.uc.UpdateStatus(c.UserContext(), GetUserID(c), int64(id), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
