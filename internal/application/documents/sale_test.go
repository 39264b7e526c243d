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

func newSaleFixture() (*memStore, *fakeTxRunner, *SaleUseCase) {
	store := newMemStore()
	runner := &fakeTxRunner{store: store}
	uc := NewSaleUseCase(runner, &fakeSales{store}, nil, testLogger)
	return store, runner, uc
}

func TestSaleCreate_DescuentaStockYCalculaTotales(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Cafetería Central"})
	pan := store.addProduct(entity.Product{
		Code:        "PROD-20240101-AB12CD",
		Name:        "Pan francés",
		SalePrice:   dec("2.00"),
		StockActual: dec("100"),
	})

	resp, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Lines: []dto.SaleLineRequest{
			{ProductID: pan.ID, Quantity: dec("10"), UnitPrice: dec("2.00")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("20.00")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(dec("3.60")), "impuestos %s", resp.Tax)
	assert.True(t, resp.Total.Equal(dec("23.60")), "total %s", resp.Total)
	assert.Equal(t, entity.StatusPendiente, resp.Status)
	assert.Equal(t, "CONTADO", resp.PaymentMethod)
	assert.Equal(t, fmt.Sprintf("FAC-%d-0001", time.Now().Year()), resp.Number)

	// Stock descontado y movimiento VENTA con snapshot antes/después.
	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("90")))
	require.Len(t, store.movements, 1)
	mov := store.movements[0]
	assert.Equal(t, entity.MovementVenta, mov.Type)
	assert.True(t, mov.StockBefore.Equal(dec("100")))
	assert.True(t, mov.StockAfter.Equal(dec("90")))
	require.NotNil(t, mov.ReferenceID)
	assert.Equal(t, resp.ID, *mov.ReferenceID)
	assert.Equal(t, "VENTA", mov.ReferenceType)

	// Bitácora dentro de la misma transacción.
	require.Len(t, store.logs, 1)
	assert.Equal(t, "CREAR_VENTA", store.logs[0].Action)
}

func TestSaleCreate_LineasRepetidasEncadenanStock(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Mostrador"})
	pan := store.addProduct(entity.Product{Name: "Baguette", StockActual: dec("30")})

	_, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Lines: []dto.SaleLineRequest{
			{ProductID: pan.ID, Quantity: dec("5"), UnitPrice: dec("3.50")},
			{ProductID: pan.ID, Quantity: dec("7"), UnitPrice: dec("3.50")},
		},
	})
	require.NoError(t, err)

	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("18")))
	require.Len(t, store.movements, 2)
	assert.True(t, store.movements[0].StockBefore.Equal(dec("30")))
	assert.True(t, store.movements[0].StockAfter.Equal(dec("25")))
	assert.True(t, store.movements[1].StockBefore.Equal(dec("25")))
	assert.True(t, store.movements[1].StockAfter.Equal(dec("18")))
}

func TestSaleCreate_PermiteStockNegativo(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Mostrador"})
	pan := store.addProduct(entity.Product{Name: "Croissant", StockActual: dec("3")})

	_, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Lines: []dto.SaleLineRequest{
			{ProductID: pan.ID, Quantity: dec("10"), UnitPrice: dec("1.50")},
		},
	})
	require.NoError(t, err)
	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("-7")))
}

func TestSaleCreate_DescuentoDeLineaYCabecera(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Mayorista"})
	pan := store.addProduct(entity.Product{Name: "Torta", StockActual: dec("20")})

	resp, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Discount:   dec("10.00"),
		Lines: []dto.SaleLineRequest{
			// 10 × 25.00 × (1 − 20/100) = 200.00
			{ProductID: pan.ID, Quantity: dec("10"), UnitPrice: dec("25.00"), Discount: dec("20")},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("200.00")), "subtotal %s", resp.Subtotal)
	// impuestos = (200 − 10) × 0.18 = 34.20; total = 190 + 34.20
	assert.True(t, resp.Tax.Equal(dec("34.20")), "impuestos %s", resp.Tax)
	assert.True(t, resp.Total.Equal(dec("224.20")), "total %s", resp.Total)
}

func TestSaleCreate_ClienteInexistenteRevierteTodo(t *testing.T) {
	store, runner, uc := newSaleFixture()
	pan := store.addProduct(entity.Product{Name: "Pan integral", StockActual: dec("50")})

	_, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
		CustomerID: 999,
		Lines: []dto.SaleLineRequest{
			{ProductID: pan.ID, Quantity: dec("1"), UnitPrice: dec("2.00")},
		},
	})
	require.Error(t, err)
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)

	assert.Equal(t, 1, runner.rollbacks)
	assert.Empty(t, store.sales)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.logs)
	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("50")))
}

func TestSaleCreate_ValidaLineas(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Mostrador"})

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"sin lineas", dto.CreateSaleRequest{CustomerID: customer.ID}},
		{"cantidad cero", dto.CreateSaleRequest{CustomerID: customer.ID, Lines: []dto.SaleLineRequest{
			{ProductID: 1, Quantity: dec("0"), UnitPrice: dec("1.00")},
		}}},
		{"precio negativo", dto.CreateSaleRequest{CustomerID: customer.ID, Lines: []dto.SaleLineRequest{
			{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("-1.00")},
		}}},
		{"descuento mayor a 100", dto.CreateSaleRequest{CustomerID: customer.ID, Lines: []dto.SaleLineRequest{
			{ProductID: 1, Quantity: dec("1"), UnitPrice: dec("1.00"), Discount: dec("150")},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), 1, tc.in)
			var opErr *domain.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, domain.KindValidation, opErr.Kind)
		})
	}
}

func TestSaleCreate_NumeracionCorrelativa(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Mostrador"})
	pan := store.addProduct(entity.Product{Name: "Bollo", StockActual: dec("100")})

	year := time.Now().Year()
	for i := 1; i <= 3; i++ {
		resp, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
			CustomerID: customer.ID,
			Lines: []dto.SaleLineRequest{
				{ProductID: pan.ID, Quantity: dec("1"), UnitPrice: dec("0.50")},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("FAC-%d-%04d", year, i), resp.Number)
	}
}

func TestSaleUpdateStatus_CancelarNoReponeStock(t *testing.T) {
	store, _, uc := newSaleFixture()
	customer := store.addCustomer(entity.Customer{Name: "Mostrador"})
	pan := store.addProduct(entity.Product{Name: "Empanada", StockActual: dec("40")})

	resp, err := uc.Create(context.Background(), 1, dto.CreateSaleRequest{
		CustomerID: customer.ID,
		Lines: []dto.SaleLineRequest{
			{ProductID: pan.ID, Quantity: dec("15"), UnitPrice: dec("1.20")},
		},
	})
	require.NoError(t, err)
	require.True(t, store.products[pan.ID].StockActual.Equal(dec("25")))

	require.NoError(t, uc.UpdateStatus(context.Background(), 1, resp.ID, entity.StatusCancelada))

	got, err := uc.Get(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelada, got.Status)
	assert.True(t, store.products[pan.ID].StockActual.Equal(dec("25")), "cancelar no devuelve stock")
}

func TestSaleGet_NoEncontrada(t *testing.T) {
	_, _, uc := newSaleFixture()
	_, err := uc.Get(123)
	var opErr *domain.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, domain.KindNotFound, opErr.Kind)
}
