package documents

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
)

func newProductionFixture() (*memStore, *fakeTxRunner, *ProductionOrderUseCase) {
	store := newMemStore()
	runner := &fakeTxRunner{store: store}
	uc := NewProductionOrderUseCase(runner, &fakeProduction{store}, nil, testLogger)
	return store, runner, uc
}

func TestProductionCreate_PlanificaSinTocarStock(t *testing.T) {
	store, _, uc := newProductionFixture()
	pan := store.addProduct(entity.Product{Name: "Pan integral", StockActual: dec("40")})
	harina := store.addMaterial(entity.RawMaterial{Name: "Harina integral", StockActual: dec("80")})
	levadura := store.addMaterial(entity.RawMaterial{Name: "Levadura fresca", StockActual: dec("10")})

	resp, err := uc.Create(context.Background(), 7, dto.CreateProductionOrderRequest{
		ProductID:       pan.ID,
		QuantityPlanned: dec("120"),
		Requirements: []dto.MaterialRequirementRequest{
			{RawMaterialID: harina.ID, QuantityRequired: dec("60"), UnitMeasure: "kg"},
			{RawMaterialID: levadura.ID, QuantityRequired: dec("2.5"), UnitMeasure: "kg"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPlanificada, resp.Status)
	assert.Equal(t, "NORMAL", resp.Priority)
	assert.Equal(t, fmt.Sprintf("OP-%d-0001", time.Now().Year()), resp.Number)
	assert.Equal(t, "Pan integral", resp.ProductName)

	// Los requerimientos nacen sin asignación; asignar es un paso posterior.
	require.Len(t, resp.Requirements, 2)
	for _, r := range resp.Requirements {
		assert.True(t, r.QuantityAssigned.IsZero(), "requerimiento %d asignado %s", r.RawMaterialID, r.QuantityAssigned)
	}
	assert.Equal(t, "Harina integral", resp.Requirements[0].RawMaterialName)

	// Planificar no consume stock ni genera movimientos.
	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("40")))
	assert.True(t, store.materials[harina.ID].StockActual.Equal(dec("80")))
	assert.Empty(t, store.movements)

	require.Len(t, store.logs, 1)
	assert.Equal(t, "CREAR_ORDEN_PRODUCCION", store.logs[0].Action)
}

func TestProductionCreate_MateriaPrimaInexistenteRevierte(t *testing.T) {
	store, runner, uc := newProductionFixture()
	pan := store.addProduct(entity.Product{Name: "Pan integral"})

	_, err := uc.Create(context.Background(), 7, dto.CreateProductionOrderRequest{
		ProductID:       pan.ID,
		QuantityPlanned: dec("50"),
		Requirements: []dto.MaterialRequirementRequest{
			{RawMaterialID: 999, QuantityRequired: dec("10"), UnitMeasure: "kg"},
		},
	})
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)
	assert.Equal(t, 1, runner.rollbacks)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.requirements)
}

func TestProductionCreate_ValidaCantidades(t *testing.T) {
	store, _, uc := newProductionFixture()
	pan := store.addProduct(entity.Product{Name: "Pan integral"})

	_, err := uc.Create(context.Background(), 7, dto.CreateProductionOrderRequest{
		ProductID:       pan.ID,
		QuantityPlanned: dec("0"),
	})
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindValidation, opErr.Kind)
}

func TestProductionUpdateStatus(t *testing.T) {
	store, _, uc := newProductionFixture()
	pan := store.addProduct(entity.Product{Name: "Pan integral"})

	resp, err := uc.Create(context.Background(), 7, dto.CreateProductionOrderRequest{
		ProductID:       pan.ID,
		QuantityPlanned: dec("30"),
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), 7, resp.ID, entity.StatusEnProceso))

	got, err := uc.Get(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEnProceso, got.Status)
	require.Len(t, store.logs, 2)
	assert.Equal(t, "CAMBIAR_ESTADO_ORDEN_PRODUCCION", store.logs[1].Action)
}
