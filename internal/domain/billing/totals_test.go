package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestSaleLineTotal(t *testing.T) {
	t.Run("sin descuento", func(t *testing.T) {
		got := SaleLineTotal(d("10"), d("2.00"), d("0"))
		assert.True(t, got.Equal(d("20.00")), "got %s", got)
	})

	t.Run("con descuento porcentual", func(t *testing.T) {
		got := SaleLineTotal(d("10"), d("2.00"), d("10"))
		assert.True(t, got.Equal(d("18.00")), "got %s", got)
	})

	t.Run("descuento total", func(t *testing.T) {
		got := SaleLineTotal(d("5"), d("3.50"), d("100"))
		assert.True(t, got.IsZero(), "got %s", got)
	})
}

func TestSaleTotals(t *testing.T) {
	tax, total := SaleTotals(d("20.00"), d("0"))
	assert.True(t, tax.Equal(d("3.60")), "tax %s", tax)
	assert.True(t, total.Equal(d("23.60")), "total %s", total)

	// El descuento de cabecera sí reduce la base imponible.
	tax, total = SaleTotals(d("100.00"), d("10.00"))
	assert.True(t, tax.Equal(d("16.20")), "tax %s", tax)
	assert.True(t, total.Equal(d("106.20")), "total %s", total)
}

func TestPurchaseTotals(t *testing.T) {
	tax, total := PurchaseTotals(d("100.00"))
	assert.True(t, tax.Equal(d("18.00")), "tax %s", tax)
	assert.True(t, total.Equal(d("118.00")), "total %s", total)
}

func TestSaleVsPurchaseAsymmetry(t *testing.T) {
	// Con el mismo subtotal y descuento, la venta tributa sobre la base neta
	// y la compra sobre el subtotal completo.
	saleTax, _ := SaleTotals(d("250.00"), d("50.00"))
	purchaseTax, _ := PurchaseTotals(d("250.00"))
	require.True(t, saleTax.Equal(d("36.00")), "sale tax %s", saleTax)
	require.True(t, purchaseTax.Equal(d("45.00")), "purchase tax %s", purchaseTax)
}

func TestPurchaseLineTotal(t *testing.T) {
	got := PurchaseLineTotal(d("3"), d("12.50"))
	assert.True(t, got.Equal(d("37.50")), "got %s", got)
}
