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

func newPurchaseFixture() (*memStore, *fakeTxRunner, *PurchaseOrderUseCase) {
	store := newMemStore()
	runner := &fakeTxRunner{store: store}
	uc := NewPurchaseOrderUseCase(runner, &fakePurchases{store}, nil, testLogger)
	return store, runner, uc
}

func ptr(v int64) *int64 { return &v }

func TestPurchaseCreate_TotalesSinDescuentoEnBase(t *testing.T) {
	store, _, uc := newPurchaseFixture()
	supplier := store.addSupplier(entity.Supplier{Name: "Molinos del Sur"})
	harina := store.addMaterial(entity.RawMaterial{Name: "Harina 000"})

	resp, err := uc.Create(context.Background(), 1, dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Discount:   dec("50.00"),
		Lines: []dto.PurchaseOrderLineRequest{
			// 100 × 2.50 = 250.00
			{RawMaterialID: ptr(harina.ID), Quantity: dec("100"), UnitMeasure: "kg", UnitPrice: dec("2.50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("250.00")), "subtotal %s", resp.Subtotal)
	// El descuento de cabecera no reduce la base: impuestos = 250 × 0.18.
	assert.True(t, resp.Tax.Equal(dec("45.00")), "impuestos %s", resp.Tax)
	assert.True(t, resp.Total.Equal(dec("295.00")), "total %s", resp.Total)
	assert.True(t, resp.Discount.Equal(dec("50.00")))
	assert.Equal(t, entity.StatusPendiente, resp.Status)
	assert.Equal(t, fmt.Sprintf("OC-%d-0001", time.Now().Year()), resp.Number)
}

func TestPurchaseCreate_NoMueveStock(t *testing.T) {
	store, _, uc := newPurchaseFixture()
	supplier := store.addSupplier(entity.Supplier{Name: "Distribuidora Norte"})
	pan := store.addProduct(entity.Product{Name: "Pan de molde", StockActual: dec("12")})

	_, err := uc.Create(context.Background(), 1, dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []dto.PurchaseOrderLineRequest{
			{ProductID: ptr(pan.ID), Quantity: dec("200"), UnitMeasure: "und", UnitPrice: dec("1.10")},
		},
	})
	require.NoError(t, err)

	// La orden es un compromiso, no una recepción.
	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("12")))
	assert.Empty(t, store.movements)
}

func TestPurchaseCreate_DescripcionPorDefecto(t *testing.T) {
	store, _, uc := newPurchaseFixture()
	supplier := store.addSupplier(entity.Supplier{Name: "Molinos del Sur"})
	levadura := store.addMaterial(entity.RawMaterial{Name: "Levadura fresca"})

	resp, err := uc.Create(context.Background(), 1, dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []dto.PurchaseOrderLineRequest{
			{RawMaterialID: ptr(levadura.ID), Quantity: dec("5"), UnitMeasure: "kg", UnitPrice: dec("8.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "Levadura fresca", resp.Lines[0].Description)
}

func TestPurchaseCreate_LineaDebeReferenciarUnSoloItem(t *testing.T) {
	store, _, uc := newPurchaseFixture()
	supplier := store.addSupplier(entity.Supplier{Name: "Molinos del Sur"})
	harina := store.addMaterial(entity.RawMaterial{Name: "Harina 000"})
	pan := store.addProduct(entity.Product{Name: "Pan de molde"})

	cases := []struct {
		name string
		line dto.PurchaseOrderLineRequest
	}{
		{"ambas referencias", dto.PurchaseOrderLineRequest{
			ProductID: ptr(pan.ID), RawMaterialID: ptr(harina.ID),
			Quantity: dec("1"), UnitMeasure: "und", UnitPrice: dec("1.00"),
		}},
		{"ninguna referencia", dto.PurchaseOrderLineRequest{
			Quantity: dec("1"), UnitMeasure: "und", UnitPrice: dec("1.00"),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), 1, dto.CreatePurchaseOrderRequest{
				SupplierID: supplier.ID,
				Lines:      []dto.PurchaseOrderLineRequest{tc.line},
			})
			var opErr *domain.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, domain.KindValidation, opErr.Kind)
		})
	}
}

func TestPurchaseCreate_ProveedorInactivoRevierte(t *testing.T) {
	store, runner, uc := newPurchaseFixture()
	supplier := store.addSupplier(entity.Supplier{Name: "Cerrado SA"})
	inactive := *store.suppliers[supplier.ID]
	inactive.Active = false
	store.suppliers[supplier.ID] = &inactive
	harina := store.addMaterial(entity.RawMaterial{Name: "Harina 000"})

	_, err := uc.Create(context.Background(), 1, dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []dto.PurchaseOrderLineRequest{
			{RawMaterialID: ptr(harina.ID), Quantity: dec("1"), UnitMeasure: "kg", UnitPrice: dec("2.00")},
		},
	})
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)
	assert.Equal(t, 1, runner.rollbacks)
	assert.Empty(t, store.purchases)
	assert.Empty(t, store.logs)
}

func TestPurchaseUpdateStatus_Audita(t *testing.T) {
	store, _, uc := newPurchaseFixture()
	supplier := store.addSupplier(entity.Supplier{Name: "Molinos del Sur"})
	harina := store.addMaterial(entity.RawMaterial{Name: "Harina 000"})

	resp, err := uc.Create(context.Background(), 1, dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Lines: []dto.PurchaseOrderLineRequest{
			{RawMaterialID: ptr(harina.ID), Quantity: dec("10"), UnitMeasure: "kg", UnitPrice: dec("2.00")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(context.Background(), 1, resp.ID, entity.StatusAprobada))

	got, err := uc.Get(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAprobada, got.Status)
	require.Len(t, store.logs, 2)
	assert.Equal(t, "CAMBIAR_ESTADO_ORDEN_COMPRA", store.logs[1].Action)
}

func TestPurchaseUpdateStatus_NoEncontrada(t *testing.T) {
	_, _, uc := newPurchaseFixture()
	err := uc.UpdateStatus(context.Background(), 1, 404, entity.StatusAprobada)
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)
}
