package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de lectura para reportes sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica (read-only).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardKPIs calcula las métricas del panel en una sola consulta.
func (r *AnalyticsRepo) GetDashboardKPIs(ctx context.Context) (*repository.DashboardKPIs, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM productos WHERE activo),
			(SELECT COUNT(*) FROM materias_primas WHERE activo),
			(SELECT COUNT(*) FROM proveedores WHERE activo),
			(SELECT COUNT(*) FROM clientes WHERE activo),
			(SELECT COALESCE(SUM(stock_actual * precio_compra), 0) FROM productos WHERE activo),
			(SELECT COALESCE(SUM(stock_actual * costo_unitario), 0) FROM materias_primas WHERE activo),
			(SELECT COUNT(*) FROM productos WHERE activo AND stock_actual < stock_minimo),
			(SELECT COALESCE(SUM(total), 0) FROM ventas WHERE fecha_venta = CURRENT_DATE),
			(SELECT COALESCE(SUM(total), 0) FROM ventas
				WHERE date_trunc('month', fecha_venta) = date_trunc('month', CURRENT_DATE)),
			(SELECT COUNT(*) FROM ordenes_compra WHERE estado = 'PENDIENTE'),
			(SELECT COUNT(*) FROM ordenes_produccion WHERE estado IN ('PLANIFICADA', 'EN_PROCESO'))`
	var k repository.DashboardKPIs
	err := r.q.QueryRow(ctx, query).Scan(
		&k.TotalProducts, &k.TotalRawMaterials, &k.TotalSuppliers, &k.TotalCustomers,
		&k.InventoryValue, &k.RawMaterialsValue, &k.LowStockProducts,
		&k.SalesToday, &k.SalesMonth, &k.PendingPurchases, &k.ActiveProduction,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard kpis: %w", err)
	}
	return &k, nil
}

// GetSalesByDay agrega las ventas por día calendario dentro del rango.
func (r *AnalyticsRepo) GetSalesByDay(ctx context.Context, startDate, endDate time.Time) ([]repository.DailySalesResult, error) {
	query := `
		SELECT fecha_venta, COUNT(*), COALESCE(SUM(total), 0)
		FROM ventas
		WHERE fecha_venta BETWEEN $1 AND $2
		GROUP BY fecha_venta
		ORDER BY fecha_venta`
	rows, err := r.q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("ventas por dia: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesResult
	for rows.Next() {
		var d repository.DailySalesResult
		if err := rows.Scan(&d.Day, &d.SaleCount, &d.TotalSold); err != nil {
			return nil, fmt.Errorf("scan ventas por dia: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve los productos más vendidos del período por unidades.
func (r *AnalyticsRepo) GetTopProducts(ctx context.Context, startDate, endDate time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT p.id, p.codigo, p.nombre,
			COALESCE(SUM(dv.cantidad), 0), COALESCE(SUM(dv.total_linea), 0)
		FROM detalle_venta dv
		JOIN ventas v ON v.id = dv.venta_id
		JOIN productos p ON p.id = dv.producto_id
		WHERE v.fecha_venta BETWEEN $1 AND $2
		GROUP BY p.id, p.codigo, p.nombre
		ORDER BY SUM(dv.cantidad) DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("top productos: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.Code, &t.Name, &t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top producto: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

func (r *AnalyticsRepo) lowStock(ctx context.Context, table string) ([]repository.LowStockResult, error) {
	query := fmt.Sprintf(`
		SELECT id, codigo, nombre, stock_actual, stock_minimo, unidad_medida
		FROM %s
		WHERE activo AND stock_actual < stock_minimo
		ORDER BY stock_actual - stock_minimo`, table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock bajo %s: %w", table, err)
	}
	defer rows.Close()

	var results []repository.LowStockResult
	for rows.Next() {
		var l repository.LowStockResult
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.StockActual, &l.StockMin, &l.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan stock bajo: %w", err)
		}
		results = append(results, l)
	}
	return results, rows.Err()
}

// GetLowStockProducts devuelve los productos con stock bajo el mínimo.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context) ([]repository.LowStockResult, error) {
	return r.lowStock(ctx, "productos")
}

// GetLowStockRawMaterials devuelve las materias primas con stock bajo el mínimo.
func (r *AnalyticsRepo) GetLowStockRawMaterials(ctx context.Context) ([]repository.LowStockResult, error) {
	return r.lowStock(ctx, "materias_primas")
}

// GetProductionSummary agrupa órdenes de producción por estado en el rango.
func (r *AnalyticsRepo) GetProductionSummary(ctx context.Context, startDate, endDate time.Time) ([]repository.ProductionSummaryResult, error) {
	query := `
		SELECT estado, COUNT(*), COALESCE(SUM(cantidad_producir), 0)
		FROM ordenes_produccion
		WHERE fecha_creacion::date BETWEEN $1 AND $2
		GROUP BY estado
		ORDER BY estado`
	rows, err := r.q.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("resumen produccion: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductionSummaryResult
	for rows.Next() {
		var p repository.ProductionSummaryResult
		if err := rows.Scan(&p.Status, &p.OrderCount, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan resumen produccion: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
