package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementCreacion   = "CREACION"
	MovementEntrada    = "ENTRADA"
	MovementSalida     = "SALIDA"
	MovementVenta      = "VENTA"
	MovementCorreccion = "CORRECCION"
)

// InventoryMovement registro del kardex. Todo cambio de stock_actual pasa
// por aquí, con snapshot del stock antes y después del cambio. Cada
// movimiento referencia un producto o una materia prima (el otro queda en
// cero).
type InventoryMovement struct {
	ID           int64
	ProductID    int64
	ProductName  string
	MaterialID   int64
	MaterialName string
	Type          string
	Quantity      decimal.Decimal
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	Reason        string
	ReferenceID   *int64 // documento que originó el movimiento, si aplica
	ReferenceType string // VENTA, AJUSTE_MANUAL, etc.
	UserID        int64
	UserName      string
	CreatedAt     time.Time
}
