package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de documentos. Enums libres: el original no valida transiciones
// y aquí tampoco se impone una máquina de estados.
const (
	StatusPendiente   = "PENDIENTE"
	StatusAprobada    = "APROBADA"
	StatusPagada      = "PAGADA"
	StatusCancelada   = "CANCELADA"
	StatusPlanificada = "PLANIFICADA"
	StatusEnProceso   = "EN_PROCESO"
	StatusTerminada   = "TERMINADA"
)

// PurchaseOrder orden de compra a un proveedor.
// Totales: impuestos = subtotal × 0.18 y total = subtotal + impuestos; el
// descuento de cabecera se almacena pero NO reduce la base imponible
// (comportamiento heredado, distinto al de Sale; ver DESIGN.md).
type PurchaseOrder struct {
	ID           int64
	Number       string // único; OC-{año}-{0000} si falta
	SupplierID   int64
	SupplierName string
	OrderDate    time.Time
	ExpectedDate *time.Time
	Status       string // default PENDIENTE
	Subtotal     decimal.Decimal
	Discount     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Notes        string
	CreatedBy    int64
	CreatedByName string
	CreatedAt    time.Time
	Details      []PurchaseOrderDetail
}

// PurchaseOrderDetail línea de una orden de compra; referencia un producto
// o una materia prima (exactamente uno de los dos).
type PurchaseOrderDetail struct {
	ID            int64
	OrderID       int64
	ProductID     *int64
	RawMaterialID *int64
	Description   string
	Quantity      decimal.Decimal
	UnitMeasure   string
	UnitPrice     decimal.Decimal
	LineTotal     decimal.Decimal // cantidad × precio_unitario
}
