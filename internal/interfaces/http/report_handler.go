package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/application/reports"
)

// ReportHandler maneja el dashboard y los reportes agregados.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Métricas del panel principal
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reportes/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas por día y top de productos
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  false  "AAAA-MM-DD (default: hace 30 días)"
// @Param        fecha_fin     query  string  false  "AAAA-MM-DD (default: hoy)"
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/reportes/ventas [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var in dto.DateRangeRequest
	if err := bindQuery(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.SalesReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos y materias primas bajo stock mínimo
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/reportes/stock-bajo [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Production godoc
// @Summary      Órdenes de producción agrupadas por estado
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  false  "AAAA-MM-DD"
// @Param        fecha_fin     query  string  false  "AAAA-MM-DD"
// @Success      200  {object}  dto.ProductionReportResponse
// @Router       /api/reportes/produccion [get]
func (h *ReportHandler) Production(c *fiber.Ctx) error {
	var in dto.DateRangeRequest
	if err := bindQuery(c, &in); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.ProductionReport(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Bitácora del sistema (solo admin)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SystemLogResponse
// @Router       /api/reportes/bitacora [get]
func (h *ReportHandler) Logs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return badRequest(c, "VALIDACION", err.Error())
	}
	out, err := h.uc.SystemLogs(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
