package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIs métricas agregadas para el panel principal.
// Los COALESCE en las consultas garantizan ceros cuando no hay datos.
type DashboardKPIs struct {
	TotalProducts      int
	TotalRawMaterials  int
	TotalSuppliers     int
	TotalCustomers     int
	InventoryValue     decimal.Decimal // sum(stock_actual * precio_compra) de productos activos
	RawMaterialsValue  decimal.Decimal // sum(stock_actual * costo_unitario) de MP activas
	LowStockProducts   int             // stock_actual < stock_minimo (estricto)
	SalesToday         decimal.Decimal
	SalesMonth         decimal.Decimal
	PendingPurchases   int
	ActiveProduction   int
}

// DailySalesResult ventas agregadas por día.
type DailySalesResult struct {
	Day        time.Time
	SaleCount  int
	TotalSold  decimal.Decimal
}

// TopProductResult producto ordenado por unidades vendidas en el período.
type TopProductResult struct {
	ProductID   int64
	Code        string
	Name        string
	UnitsSold   decimal.Decimal
	Revenue     decimal.Decimal
}

// LowStockResult ítem con stock estrictamente por debajo del mínimo.
type LowStockResult struct {
	ID          int64
	Code        string
	Name        string
	StockActual decimal.Decimal
	StockMin    decimal.Decimal
	UnitMeasure string
}

// ProductionSummaryResult órdenes de producción agrupadas por estado.
type ProductionSummaryResult struct {
	Status     string
	OrderCount int
	Quantity   decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	GetDashboardKPIs(ctx context.Context) (*DashboardKPIs, error)

	// GetSalesByDay agrega las ventas por día calendario dentro del rango.
	GetSalesByDay(ctx context.Context, startDate, endDate time.Time) ([]DailySalesResult, error)

	// GetTopProducts devuelve los `limit` productos más vendidos del período.
	GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]TopProductResult, error)

	// GetLowStockProducts y GetLowStockRawMaterials devuelven los ítems
	// activos con stock_actual < stock_minimo. El umbral es estricto: un
	// ítem exactamente en su mínimo no es stock bajo.
	GetLowStockProducts(ctx context.Context) ([]LowStockResult, error)
	GetLowStockRawMaterials(ctx context.Context) ([]LowStockResult, error)

	// GetProductionSummary agrupa órdenes de producción por estado.
	GetProductionSummary(ctx context.Context, startDate, endDate time.Time) ([]ProductionSummaryResult, error)
}
