package inventory

import (
	"context"
	"testing"

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

type fakeProducts struct{ products map[int64]*entity.Product }

func (f *fakeProducts) Create(*entity.Product) error                 { return nil }
func (f *fakeProducts) GetByID(id int64) (*entity.Product, error)    { return f.products[id], nil }
func (f *fakeProducts) GetByCode(string) (*entity.Product, error)    { return nil, nil }
func (f *fakeProducts) GetForUpdate(id int64) (*entity.Product, error) { return f.products[id], nil }
func (f *fakeProducts) Update(*entity.Product) error                 { return nil }
func (f *fakeProducts) UpdateStock(id int64, stock decimal.Decimal) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *p
	updated.StockActual = stock
	f.products[id] = &updated
	return nil
}
func (f *fakeProducts) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProducts) Deactivate(int64) error                   { return nil }

type fakeMaterials struct{ materials map[int64]*entity.RawMaterial }

func (f *fakeMaterials) Create(*entity.RawMaterial) error              { return nil }
func (f *fakeMaterials) GetByID(id int64) (*entity.RawMaterial, error) { return f.materials[id], nil }
func (f *fakeMaterials) GetByCode(string) (*entity.RawMaterial, error) { return nil, nil }
func (f *fakeMaterials) GetForUpdate(id int64) (*entity.RawMaterial, error) {
	return f.materials[id], nil
}
func (f *fakeMaterials) Update(*entity.RawMaterial) error { return nil }
func (f *fakeMaterials) UpdateStock(id int64, stock decimal.Decimal) error {
	m, ok := f.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *m
	updated.StockActual = stock
	f.materials[id] = &updated
	return nil
}
func (f *fakeMaterials) List(int, int) ([]*entity.RawMaterial, error) { return nil, nil }
func (f *fakeMaterials) Deactivate(int64) error                       { return nil }

type fakeMovements struct{ movements []*entity.InventoryMovement }

func (f *fakeMovements) Create(m *entity.InventoryMovement) error {
	m.ID = int64(len(f.movements) + 1)
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovements) ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) ListByMaterial(materialID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.movements {
		if m.MaterialID == materialID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovements) List(int, int) ([]*entity.InventoryMovement, error) {
	return f.movements, nil
}

type fakeLogs struct{ logs []*entity.SystemLog }

func (f *fakeLogs) Append(l *entity.SystemLog) error {
	f.logs = append(f.logs, l)
	return nil
}
func (f *fakeLogs) List(int, int) ([]*entity.SystemLog, error) { return f.logs, nil }

type fakeTxRunner struct {
	products  *fakeProducts
	materials *fakeMaterials
	movements *fakeMovements
	logs      *fakeLogs
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(tx repository.Tx) error) error {
	return fn(repository.Tx{
		Products:  r.products,
		Materials: r.materials,
		Movements: r.movements,
		Logs:      r.logs,
	})
}

func newFixture(stock string) (*fakeTxRunner, *UseCase, int64) {
	products := &fakeProducts{products: map[int64]*entity.Product{
		1: {ID: 1, Code: "PROD-20240101-AB12CD", Name: "Pan francés", StockActual: dec(stock), Active: true},
	}}
	materials := &fakeMaterials{materials: map[int64]*entity.RawMaterial{
		2: {ID: 2, Code: "MP-20240101-EF34AB", Name: "Harina de trigo", StockActual: dec(stock), Active: true},
	}}
	runner := &fakeTxRunner{
		products:  products,
		materials: materials,
		movements: &fakeMovements{},
		logs:      &fakeLogs{},
	}
	uc := NewUseCase(runner, runner.movements, nil, testLogger)
	return runner, uc, 1
}

func TestAdjustStock_Entrada(t *testing.T) {
	runner, uc, productID := newFixture("50")

	resp, err := uc.AdjustStock(context.Background(), 3, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "ENTRADA",
		Quantity:  dec("25"),
		Reason:    "recepción de producción",
	})
	require.NoError(t, err)

	assert.True(t, runner.products.products[productID].StockActual.Equal(dec("75")))
	assert.Equal(t, entity.MovementEntrada, resp.Type)
	assert.True(t, resp.StockBefore.Equal(dec("50")))
	assert.True(t, resp.StockAfter.Equal(dec("75")))
	assert.Equal(t, "AJUSTE_MANUAL", resp.ReferenceType)

	require.Len(t, runner.logs.logs, 1)
	assert.Equal(t, "AJUSTAR_STOCK", runner.logs.logs[0].Action)
}

func TestAdjustStock_SalidaPermiteNegativo(t *testing.T) {
	runner, uc, productID := newFixture("10")

	resp, err := uc.AdjustStock(context.Background(), 3, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "SALIDA",
		Quantity:  dec("14"),
		Reason:    "merma",
	})
	require.NoError(t, err)
	assert.True(t, runner.products.products[productID].StockActual.Equal(dec("-4")))
	assert.True(t, resp.StockAfter.Equal(dec("-4")))
}

func TestAdjustStock_CorreccionSobrescribe(t *testing.T) {
	runner, uc, productID := newFixture("37")

	resp, err := uc.AdjustStock(context.Background(), 3, dto.AdjustStockRequest{
		ProductID: productID,
		Type:      "CORRECCION",
		Quantity:  dec("42"),
		Reason:    "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, runner.products.products[productID].StockActual.Equal(dec("42")))
	assert.Equal(t, entity.MovementCorreccion, resp.Type)
	assert.True(t, resp.StockBefore.Equal(dec("37")))
}

func TestAdjustStock_MateriaPrima(t *testing.T) {
	runner, uc, _ := newFixture("80")

	resp, err := uc.AdjustStock(context.Background(), 3, dto.AdjustStockRequest{
		MaterialID: 2,
		Type:       "SALIDA",
		Quantity:   dec("30"),
		Reason:     "consumo de horneado",
	})
	require.NoError(t, err)

	assert.True(t, runner.materials.materials[2].StockActual.Equal(dec("50")))
	assert.Equal(t, int64(2), resp.MaterialID)
	assert.Equal(t, "Harina de trigo", resp.MaterialName)
	assert.Zero(t, resp.ProductID)
	assert.True(t, resp.StockBefore.Equal(dec("80")))
	assert.True(t, resp.StockAfter.Equal(dec("50")))
}

func TestAdjustStock_Validaciones(t *testing.T) {
	_, uc, productID := newFixture("10")

	cases := []struct {
		name string
		in   dto.AdjustStockRequest
	}{
		{"tipo desconocido", dto.AdjustStockRequest{ProductID: productID, Type: "TRASLADO", Quantity: dec("1"), Reason: "x"}},
		{"entrada cero", dto.AdjustStockRequest{ProductID: productID, Type: "ENTRADA", Quantity: dec("0"), Reason: "x"}},
		{"salida negativa", dto.AdjustStockRequest{ProductID: productID, Type: "SALIDA", Quantity: dec("-5"), Reason: "x"}},
		{"correccion negativa", dto.AdjustStockRequest{ProductID: productID, Type: "CORRECCION", Quantity: dec("-1"), Reason: "x"}},
		{"sin item", dto.AdjustStockRequest{Type: "ENTRADA", Quantity: dec("1"), Reason: "x"}},
		{"producto y materia prima a la vez", dto.AdjustStockRequest{ProductID: productID, MaterialID: 2, Type: "ENTRADA", Quantity: dec("1"), Reason: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.AdjustStock(context.Background(), 3, tc.in)
			var opErr *domain.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, domain.KindValidation, opErr.Kind)
		})
	}
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	_, uc, _ := newFixture("10")

	_, err := uc.AdjustStock(context.Background(), 3, dto.AdjustStockRequest{
		ProductID: 999,
		Type:      "ENTRADA",
		Quantity:  dec("1"),
		Reason:    "x",
	})
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)
}

func TestMovements_FiltraPorProducto(t *testing.T) {
	runner, uc, productID := newFixture("10")
	runner.movements.movements = []*entity.InventoryMovement{
		{ID: 1, ProductID: productID, Type: entity.MovementVenta},
		{ID: 2, ProductID: 99, Type: entity.MovementEntrada},
	}

	all, err := uc.Movements(0, 0, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := uc.Movements(productID, 0, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, int64(1), only[0].ID)
}

func TestMovements_FiltraPorMateriaPrima(t *testing.T) {
	runner, uc, productID := newFixture("10")
	runner.movements.movements = []*entity.InventoryMovement{
		{ID: 1, ProductID: productID, Type: entity.MovementVenta},
		{ID: 2, MaterialID: 2, Type: entity.MovementSalida},
	}

	only, err := uc.Movements(0, 2, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, int64(2), only[0].ID)
}
