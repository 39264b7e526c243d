package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialRequirementRequest materia prima requerida por la orden.
type MaterialRequirementRequest struct {
	RawMaterialID    int64           `json:"materia_prima_id" validate:"required"`
	QuantityRequired decimal.Decimal `json:"cantidad_requerida" validate:"required"`
	UnitMeasure      string          `json:"unidad_medida" validate:"required"`
}

// CreateProductionOrderRequest entrada para planificar una orden de
// producción. Si Number va vacío se asigna el correlativo OP-{año}-{0000}.
// Crear la orden no consume stock de materias primas.
type CreateProductionOrderRequest struct {
	Number          string                       `json:"numero_orden" validate:"omitempty,max=50"`
	ProductID       int64                        `json:"producto_id" validate:"required"`
	QuantityPlanned decimal.Decimal              `json:"cantidad_producir" validate:"required"`
	StartDate       *time.Time                   `json:"fecha_inicio"`
	EndDate         *time.Time                   `json:"fecha_fin_estimada"`
	Priority        string                       `json:"prioridad"`
	Notes           string                       `json:"observaciones"`
	Requirements    []MaterialRequirementRequest `json:"requerimientos" validate:"omitempty,dive"`
}

// MaterialRequirementResponse requerimiento en respuestas.
type MaterialRequirementResponse struct {
	ID               int64           `json:"id"`
	RawMaterialID    int64           `json:"materia_prima_id"`
	RawMaterialName  string          `json:"materia_prima_nombre"`
	QuantityRequired decimal.Decimal `json:"cantidad_requerida"`
	QuantityAssigned decimal.Decimal `json:"cantidad_asignada"`
	UnitMeasure      string          `json:"unidad_medida"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID              int64                         `json:"id"`
	Number          string                        `json:"numero_orden"`
	ProductID       int64                         `json:"producto_id"`
	ProductName     string                        `json:"producto_nombre"`
	QuantityPlanned decimal.Decimal               `json:"cantidad_producir"`
	StartDate       *time.Time                    `json:"fecha_inicio"`
	EndDate         *time.Time                    `json:"fecha_fin_estimada"`
	Status          string                        `json:"estado"`
	Priority        string                        `json:"prioridad"`
	Notes           string                        `json:"observaciones"`
	ResponsibleName string                        `json:"responsable"`
	CreatedAt       time.Time                     `json:"fecha_creacion"`
	Requirements    []MaterialRequirementResponse `json:"requerimientos,omitempty"`
}
