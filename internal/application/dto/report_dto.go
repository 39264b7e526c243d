package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse métricas agregadas del panel principal.
type DashboardResponse struct {
	TotalProducts     int             `json:"total_productos"`
	TotalRawMaterials int             `json:"total_materias_primas"`
	TotalSuppliers    int             `json:"total_proveedores"`
	TotalCustomers    int             `json:"total_clientes"`
	InventoryValue    decimal.Decimal `json:"valor_inventario"`
	RawMaterialsValue decimal.Decimal `json:"valor_materias_primas"`
	LowStockProducts  int             `json:"productos_stock_bajo"`
	SalesToday        decimal.Decimal `json:"ventas_hoy"`
	SalesMonth        decimal.Decimal `json:"ventas_mes"`
	PendingPurchases  int             `json:"compras_pendientes"`
	ActiveProduction  int             `json:"produccion_activa"`
}

// DateRangeRequest rango de fechas para reportes (inclusive).
type DateRangeRequest struct {
	StartDate string `query:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"fecha_fin" validate:"omitempty,datetime=2006-01-02"`
}

// DailySales ventas agregadas de un día.
type DailySales struct {
	Day       time.Time       `json:"fecha"`
	SaleCount int             `json:"numero_ventas"`
	TotalSold decimal.Decimal `json:"total_vendido"`
}

// TopProduct producto más vendido del período.
type TopProduct struct {
	ProductID int64           `json:"producto_id"`
	Code      string          `json:"codigo"`
	Name      string          `json:"nombre"`
	UnitsSold decimal.Decimal `json:"unidades_vendidas"`
	Revenue   decimal.Decimal `json:"ingresos"`
}

// LowStockItem ítem con stock bajo el mínimo.
type LowStockItem struct {
	ID          int64           `json:"id"`
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	StockActual decimal.Decimal `json:"stock_actual"`
	StockMin    decimal.Decimal `json:"stock_minimo"`
	UnitMeasure string          `json:"unidad_medida"`
}

// LowStockResponse productos y materias primas bajo mínimo.
type LowStockResponse struct {
	Products     []LowStockItem `json:"productos"`
	RawMaterials []LowStockItem `json:"materias_primas"`
}

// ProductionSummaryItem órdenes de producción agrupadas por estado.
type ProductionSummaryItem struct {
	Status     string          `json:"estado"`
	OrderCount int             `json:"numero_ordenes"`
	Quantity   decimal.Decimal `json:"cantidad_total"`
}

// SalesReportResponse reporte de ventas del período.
type SalesReportResponse struct {
	StartDate   time.Time    `json:"fecha_inicio"`
	EndDate     time.Time    `json:"fecha_fin"`
	ByDay       []DailySales `json:"por_dia"`
	TopProducts []TopProduct `json:"top_productos"`
}

// ProductionReportResponse reporte de producción del período.
type ProductionReportResponse struct {
	StartDate time.Time               `json:"fecha_inicio"`
	EndDate   time.Time               `json:"fecha_fin"`
	ByStatus  []ProductionSummaryItem `json:"por_estado"`
}

// SystemLogResponse entrada de bitácora en respuestas.
type SystemLogResponse struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"usuario"`
	Module    string    `json:"modulo"`
	Action    string    `json:"accion"`
	Details   string    `json:"detalles"`
	IPAddress string    `json:"direccion_ip"`
	CreatedAt time.Time `json:"fecha"`
}
