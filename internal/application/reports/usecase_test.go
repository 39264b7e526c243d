package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

var testLogger = logger.New(logger.Config{Level: "error"})

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeAnalytics struct {
	kpis         repository.DashboardKPIs
	lowProducts  []repository.LowStockResult
	lowMaterials []repository.LowStockResult
	byDay        []repository.DailySalesResult
	top          []repository.TopProductResult
	summary      []repository.ProductionSummaryResult

	salesStart, salesEnd time.Time
}

func (f *fakeAnalytics) GetDashboardKPIs(context.Context) (*repository.DashboardKPIs, error) {
	return &f.kpis, nil
}

func (f *fakeAnalytics) GetSalesByDay(_ context.Context, start, end time.Time) ([]repository.DailySalesResult, error) {
	f.salesStart, f.salesEnd = start, end
	return f.byDay, nil
}

func (f *fakeAnalytics) GetTopProducts(_ context.Context, _, _ time.Time, _ int) ([]repository.TopProductResult, error) {
	return f.top, nil
}

func (f *fakeAnalytics) GetLowStockProducts(context.Context) ([]repository.LowStockResult, error) {
	return f.lowProducts, nil
}

func (f *fakeAnalytics) GetLowStockRawMaterials(context.Context) ([]repository.LowStockResult, error) {
	return f.lowMaterials, nil
}

func (f *fakeAnalytics) GetProductionSummary(context.Context, time.Time, time.Time) ([]repository.ProductionSummaryResult, error) {
	return f.summary, nil
}

type fakeLogs struct{ logs []*entity.SystemLog }

func (f *fakeLogs) Append(l *entity.SystemLog) error { f.logs = append(f.logs, l); return nil }
func (f *fakeLogs) List(int, int) ([]*entity.SystemLog, error) {
	return f.logs, nil
}

func newFixture() (*fakeAnalytics, *UseCase) {
	analytics := &fakeAnalytics{}
	uc := NewUseCase(analytics, &fakeLogs{}, nil, testLogger)
	return analytics, uc
}

func TestDashboard_MapeaKPIs(t *testing.T) {
	analytics, uc := newFixture()
	analytics.kpis = repository.DashboardKPIs{
		TotalProducts:    12,
		LowStockProducts: 2,
		InventoryValue:   dec("1500.50"),
		SalesToday:       dec("320"),
		PendingPurchases: 3,
	}

	resp, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalProducts)
	assert.Equal(t, 2, resp.LowStockProducts)
	assert.True(t, resp.InventoryValue.Equal(dec("1500.50")))
	assert.True(t, resp.SalesToday.Equal(dec("320")))
	assert.Equal(t, 3, resp.PendingPurchases)
}

func TestLowStock_MapeaProductosYMaterias(t *testing.T) {
	analytics, uc := newFixture()
	analytics.lowProducts = []repository.LowStockResult{
		{ID: 1, Code: "PROD-20240101-AB12CD", Name: "Pan francés", StockActual: dec("3"), StockMin: dec("10"), UnitMeasure: "unidad"},
	}
	analytics.lowMaterials = []repository.LowStockResult{
		{ID: 2, Code: "MP-20240101-EF34AB", Name: "Harina de trigo", StockActual: dec("1.5"), StockMin: dec("25"), UnitMeasure: "kg"},
	}

	resp, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	require.Len(t, resp.RawMaterials, 1)
	assert.Equal(t, "Pan francés", resp.Products[0].Name)
	assert.True(t, resp.Products[0].StockMin.Equal(dec("10")))
	assert.Equal(t, "kg", resp.RawMaterials[0].UnitMeasure)
}

func TestLowStock_SinItems(t *testing.T) {
	_, uc := newFixture()

	resp, err := uc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Products)
	assert.Empty(t, resp.RawMaterials)
}

func TestSalesReport_RangoInclusivo(t *testing.T) {
	analytics, uc := newFixture()
	analytics.byDay = []repository.DailySalesResult{
		{Day: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), SaleCount: 4, TotalSold: dec("200")},
	}

	resp, err := uc.SalesReport(context.Background(), dto.DateRangeRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	require.NoError(t, err)

	// fecha_fin se extiende al final del día para incluir sus ventas.
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), analytics.salesStart)
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), analytics.salesEnd)
	require.Len(t, resp.ByDay, 1)
	assert.Equal(t, 4, resp.ByDay[0].SaleCount)
}

func TestSalesReport_Validaciones(t *testing.T) {
	_, uc := newFixture()

	cases := []struct {
		name string
		in   dto.DateRangeRequest
	}{
		{"fecha_inicio inválida", dto.DateRangeRequest{StartDate: "01-01-2026"}},
		{"fecha_fin inválida", dto.DateRangeRequest{EndDate: "hoy"}},
		{"fin antes del inicio", dto.DateRangeRequest{StartDate: "2026-02-01", EndDate: "2026-01-01"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.SalesReport(context.Background(), tc.in)
			var opErr *domain.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, domain.KindValidation, opErr.Kind)
		})
	}
}

func TestProductionReport_AgrupaPorEstado(t *testing.T) {
	analytics, uc := newFixture()
	analytics.summary = []repository.ProductionSummaryResult{
		{Status: "COMPLETADA", OrderCount: 5, Quantity: dec("500")},
		{Status: "PLANIFICADA", OrderCount: 2, Quantity: dec("120")},
	}

	resp, err := uc.ProductionReport(context.Background(), dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, resp.ByStatus, 2)
	assert.Equal(t, "COMPLETADA", resp.ByStatus[0].Status)
	assert.Equal(t, 5, resp.ByStatus[0].OrderCount)
}
