package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta a un cliente. Cada línea descuenta stock del producto y genera
// un movimiento VENTA con snapshot antes/después, todo en una transacción.
// Totales: impuestos = (subtotal − descuento) × 0.18;
// total = subtotal − descuento + impuestos.
type Sale struct {
	ID            int64
	Number        string // único; FAC-{año}-{0000} si falta
	CustomerID    int64
	CustomerName  string
	SaleDate      time.Time
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Status        string // default PENDIENTE
	PaymentMethod string // default CONTADO
	DueDate       *time.Time
	Notes         string
	SellerID      int64
	SellerName    string
	CreatedAt     time.Time
	Details       []SaleDetail
}

// SaleDetail línea de venta.
// LineTotal = cantidad × precio_unitario × (1 − descuento/100).
type SaleDetail struct {
	ID        int64
	SaleID    int64
	ProductID int64
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // porcentaje por línea, 0..100
	LineTotal decimal.Decimal
}
