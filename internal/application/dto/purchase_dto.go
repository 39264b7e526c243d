package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderLineRequest línea de una orden de compra. Exactamente uno de
// ProductID o RawMaterialID debe venir informado.
type PurchaseOrderLineRequest struct {
	ProductID     *int64          `json:"producto_id"`
	RawMaterialID *int64          `json:"materia_prima_id"`
	Description   string          `json:"descripcion"`
	Quantity      decimal.Decimal `json:"cantidad" validate:"required"`
	UnitMeasure   string          `json:"unidad_medida" validate:"required"`
	UnitPrice     decimal.Decimal `json:"precio_unitario" validate:"required"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra. Si
// Number va vacío se asigna el correlativo OC-{año}-{0000}.
type CreatePurchaseOrderRequest struct {
	Number       string                     `json:"numero_orden" validate:"omitempty,max=50"`
	SupplierID   int64                      `json:"proveedor_id" validate:"required"`
	OrderDate    *time.Time                 `json:"fecha_orden"`
	ExpectedDate *time.Time                 `json:"fecha_entrega_esperada"`
	Discount     decimal.Decimal            `json:"descuento"`
	Notes        string                     `json:"observaciones"`
	Lines        []PurchaseOrderLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// PurchaseOrderLineResponse línea de la orden en respuestas.
type PurchaseOrderLineResponse struct {
	ID            int64           `json:"id"`
	ProductID     *int64          `json:"producto_id"`
	RawMaterialID *int64          `json:"materia_prima_id"`
	Description   string          `json:"descripcion"`
	Quantity      decimal.Decimal `json:"cantidad"`
	UnitMeasure   string          `json:"unidad_medida"`
	UnitPrice     decimal.Decimal `json:"precio_unitario"`
	LineTotal     decimal.Decimal `json:"total_linea"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID            int64                       `json:"id"`
	Number        string                      `json:"numero_orden"`
	SupplierID    int64                       `json:"proveedor_id"`
	SupplierName  string                      `json:"proveedor_nombre"`
	OrderDate     time.Time                   `json:"fecha_orden"`
	ExpectedDate  *time.Time                  `json:"fecha_entrega_esperada"`
	Status        string                      `json:"estado"`
	Subtotal      decimal.Decimal             `json:"subtotal"`
	Discount      decimal.Decimal             `json:"descuento"`
	Tax           decimal.Decimal             `json:"impuestos"`
	Total         decimal.Decimal             `json:"total"`
	Notes         string                      `json:"observaciones"`
	CreatedByName string                      `json:"creado_por"`
	CreatedAt     time.Time                   `json:"fecha_creacion"`
	Lines         []PurchaseOrderLineResponse `json:"detalles,omitempty"`
}

// UpdateStatusRequest cambio de estado de un documento.
type UpdateStatusRequest struct {
	Status string `json:"estado" validate:"required,max=30"`
}
