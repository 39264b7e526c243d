package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/application/registry"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *registry.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *registry.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
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

func (h *CustomerHandler) GetByCode(c *fiber.Ctx) error {
	code := c.Params("codigo")
	if code == "" {
		return badRequest(c, "VALIDACION", "código inválido")
	}
	out, err := h.uc.GetByCode(code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
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

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "VALIDACION", "id inválido")
	}
	var in dto.UpdateCustomerRequest
	if err := bindBody(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CustomerHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "VALIDACION", "id inválido")
	}
	if err := h.uc.Deactivate(c.UserContext(), GetUserID(c), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
