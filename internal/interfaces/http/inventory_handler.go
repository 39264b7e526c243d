package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/application/inventory"
)

// InventoryHandler maneja ajustes de stock y consultas del kardex.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock (ENTRADA, SALIDA o CORRECCION)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.AdjustStock(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Kardex de movimientos (global, por producto o por materia prima)
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id       query  int  false  "Filtrar por producto"
// @Param        materia_prima_id  query  int  false  "Filtrar por materia prima"
// @Param        limit             query  int  false  "Límite"  default(50)
// @Param        offset            query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	productID := int64(c.QueryInt("producto_id", 0))
	materialID := int64(c.QueryInt("materia_prima_id", 0))
	out, err := h.uc.Movements(productID, materialID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
