package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrder orden de producción de un producto terminado.
// No consume materias primas al crearse: los requerimientos nacen con
// cantidad_asignada = 0 y la asignación real ocurre después.
type ProductionOrder struct {
	ID              int64
	Number          string // único; OP-{año}-{0000} si falta
	ProductID       int64
	ProductName     string
	QuantityPlanned decimal.Decimal
	StartDate       *time.Time
	EndDate         *time.Time
	Status          string // default PLANIFICADA
	Priority        string // default NORMAL
	Notes           string
	ResponsibleID   int64
	ResponsibleName string
	CreatedAt       time.Time
	Requirements    []MaterialRequirement
}

// MaterialRequirement materia prima requerida por una orden de producción.
type MaterialRequirement struct {
	ID               int64
	OrderID          int64
	RawMaterialID    int64
	RawMaterialName  string
	QuantityRequired decimal.Decimal
	QuantityAssigned decimal.Decimal // siempre 0 al crear la orden
	UnitMeasure      string
}
