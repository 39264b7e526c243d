// Package reports consultas agregadas de solo lectura: panel principal,
// reportes de ventas y producción, stock bajo y bitácora del sistema.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/internal/infrastructure/cache"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

const (
	dateLayout       = "2006-01-02"
	defaultRangeDays = 30
	topProductsLimit = 10
)

// UseCase reportes agregados sobre el repositorio de analítica.
type UseCase struct {
	analytics repository.AnalyticsRepository
	logs      repository.SystemLogRepository
	cache     *cache.Cache
	log       *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(analytics repository.AnalyticsRepository, logs repository.SystemLogRepository, c *cache.Cache, log *logger.Logger) *UseCase {
	return &UseCase{analytics: analytics, logs: logs, cache: c, log: log}
}

// Dashboard devuelve las métricas del panel principal, con caché de lectura.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	key, err := uc.cache.BuildKey(ctx, cache.DomainReports, "dashboard")
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out dto.DashboardResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		kpis, err := uc.analytics.GetDashboardKPIs(ctx)
		if err != nil {
			return nil, domain.Internal("consultar kpis", err)
		}
		return dto.DashboardResponse{
			TotalProducts:     kpis.TotalProducts,
			TotalRawMaterials: kpis.TotalRawMaterials,
			TotalSuppliers:    kpis.TotalSuppliers,
			TotalCustomers:    kpis.TotalCustomers,
			InventoryValue:    kpis.InventoryValue,
			RawMaterialsValue: kpis.RawMaterialsValue,
			LowStockProducts:  kpis.LowStockProducts,
			SalesToday:        kpis.SalesToday,
			SalesMonth:        kpis.SalesMonth,
			PendingPurchases:  kpis.PendingPurchases,
			ActiveProduction:  kpis.ActiveProduction,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SalesReport agrega ventas por día y productos más vendidos del período.
// Sin rango explícito se reportan los últimos 30 días.
func (uc *UseCase) SalesReport(ctx context.Context, in dto.DateRangeRequest) (*dto.SalesReportResponse, error) {
	start, end, err := resolveRange(in)
	if err != nil {
		return nil, err
	}

	key, err := uc.cache.BuildKey(ctx, cache.DomainReports, "ventas", rangeToken(start, end))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out dto.SalesReportResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		byDay, err := uc.analytics.GetSalesByDay(ctx, start, end)
		if err != nil {
			return nil, domain.Internal("ventas por dia", err)
		}
		top, err := uc.analytics.GetTopProducts(ctx, start, end, topProductsLimit)
		if err != nil {
			return nil, domain.Internal("top productos", err)
		}

		resp := dto.SalesReportResponse{StartDate: start, EndDate: end}
		for _, d := range byDay {
			resp.ByDay = append(resp.ByDay, dto.DailySales{
				Day:       d.Day,
				SaleCount: d.SaleCount,
				TotalSold: d.TotalSold,
			})
		}
		for _, p := range top {
			resp.TopProducts = append(resp.TopProducts, dto.TopProduct{
				ProductID: p.ProductID,
				Code:      p.Code,
				Name:      p.Name,
				UnitsSold: p.UnitsSold,
				Revenue:   p.Revenue,
			})
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LowStock devuelve productos y materias primas con stock estrictamente
// bajo el mínimo. Es un listado operativo de reposición, por eso no se
// cachea.
func (uc *UseCase) LowStock(ctx context.Context) (*dto.LowStockResponse, error) {
	products, err := uc.analytics.GetLowStockProducts(ctx)
	if err != nil {
		return nil, domain.Internal("stock bajo de productos", err)
	}
	materials, err := uc.analytics.GetLowStockRawMaterials(ctx)
	if err != nil {
		return nil, domain.Internal("stock bajo de materias primas", err)
	}

	resp := &dto.LowStockResponse{
		Products:     make([]dto.LowStockItem, 0, len(products)),
		RawMaterials: make([]dto.LowStockItem, 0, len(materials)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toLowStockItem(p))
	}
	for _, m := range materials {
		resp.RawMaterials = append(resp.RawMaterials, toLowStockItem(m))
	}
	return resp, nil
}

// ProductionReport agrupa órdenes de producción por estado en el período.
func (uc *UseCase) ProductionReport(ctx context.Context, in dto.DateRangeRequest) (*dto.ProductionReportResponse, error) {
	start, end, err := resolveRange(in)
	if err != nil {
		return nil, err
	}

	key, err := uc.cache.BuildKey(ctx, cache.DomainReports, "produccion", rangeToken(start, end))
	if err != nil {
		return nil, domain.Internal("clave de cache", err)
	}

	var out dto.ProductionReportResponse
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		summary, err := uc.analytics.GetProductionSummary(ctx, start, end)
		if err != nil {
			return nil, domain.Internal("resumen de produccion", err)
		}
		resp := dto.ProductionReportResponse{StartDate: start, EndDate: end}
		for _, s := range summary {
			resp.ByStatus = append(resp.ByStatus, dto.ProductionSummaryItem{
				Status:     s.Status,
				OrderCount: s.OrderCount,
				Quantity:   s.Quantity,
			})
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SystemLogs devuelve la bitácora paginada, de más reciente a más antigua.
func (uc *UseCase) SystemLogs(page dto.PageRequest) ([]dto.SystemLogResponse, error) {
	page.DefaultPage()
	logs, err := uc.logs.List(page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Internal("listar bitacora", err)
	}
	out := make([]dto.SystemLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.SystemLogResponse{
			ID:        l.ID,
			UserName:  l.UserName,
			Module:    l.Module,
			Action:    l.Action,
			Details:   l.Details,
			IPAddress: l.IPAddress,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

// resolveRange valida y completa el rango de fechas. El fin del rango se
// extiende al final del día para que el filtro sea inclusivo.
func resolveRange(in dto.DateRangeRequest) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -defaultRangeDays)
	end := now

	if in.StartDate != "" {
		parsed, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Validation("fecha_inicio inválida, se espera AAAA-MM-DD")
		}
		start = parsed
	}
	if in.EndDate != "" {
		parsed, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.Validation("fecha_fin inválida, se espera AAAA-MM-DD")
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, domain.Validation("fecha_fin es anterior a fecha_inicio")
	}
	return start, end, nil
}

func rangeToken(start, end time.Time) string {
	return fmt.Sprintf("%s:%s", start.Format(dateLayout), end.Format(dateLayout))
}

func toLowStockItem(r repository.LowStockResult) dto.LowStockItem {
	return dto.LowStockItem{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		StockActual: r.StockActual,
		StockMin:    r.StockMin,
		UnitMeasure: r.UnitMeasure,
	}
}
