// Package billing calcula los totales de los documentos comerciales.
// Las fórmulas son deliberadamente distintas entre venta y compra: en la
// compra el descuento de cabecera no reduce la base imponible.
package billing

import "github.com/shopspring/decimal"

// TaxRate IGV 18%.
var TaxRate = decimal.NewFromFloat(0.18)

var oneHundred = decimal.NewFromInt(100)

// SaleLineTotal aplica el descuento porcentual de la línea:
// cantidad × precio × (1 − descuento/100).
func SaleLineTotal(qty, unitPrice, discountPct decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPct.Div(oneHundred))
	return qty.Mul(unitPrice).Mul(factor)
}

// PurchaseLineTotal cantidad × precio, sin descuento por línea.
func PurchaseLineTotal(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitPrice)
}

// SaleTotals devuelve impuestos y total de una venta.
// impuestos = (subtotal − descuento) × 0.18
// total = subtotal − descuento + impuestos
func SaleTotals(subtotal, discount decimal.Decimal) (tax, total decimal.Decimal) {
	base := subtotal.Sub(discount)
	tax = base.Mul(TaxRate)
	total = base.Add(tax)
	return tax, total
}

// PurchaseTotals devuelve impuestos y total de una orden de compra.
// El descuento se conserva en la cabecera pero no participa:
// impuestos = subtotal × 0.18
// total = subtotal + impuestos
func PurchaseTotals(subtotal decimal.Decimal) (tax, total decimal.Decimal) {
	tax = subtotal.Mul(TaxRate)
	total = subtotal.Add(tax)
	return tax, total
}
