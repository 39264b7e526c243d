package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta. Discount es porcentaje 0..100.
type SaleLineRequest struct {
	ProductID int64           `json:"producto_id" validate:"required"`
	Quantity  decimal.Decimal `json:"cantidad" validate:"required"`
	UnitPrice decimal.Decimal `json:"precio_unitario" validate:"required"`
	Discount  decimal.Decimal `json:"descuento"`
}

// CreateSaleRequest entrada para registrar una venta. Si Number va vacío se
// asigna el correlativo FAC-{año}-{0000}.
type CreateSaleRequest struct {
	Number        string            `json:"numero_factura" validate:"omitempty,max=50"`
	CustomerID    int64             `json:"cliente_id" validate:"required"`
	SaleDate      *time.Time        `json:"fecha_venta"`
	Discount      decimal.Decimal   `json:"descuento"`
	PaymentMethod string            `json:"forma_pago"`
	DueDate       *time.Time        `json:"fecha_vencimiento"`
	Notes         string            `json:"observaciones"`
	Lines         []SaleLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// SaleLineResponse línea de venta en respuestas.
type SaleLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"producto_id"`
	Quantity  decimal.Decimal `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Discount  decimal.Decimal `json:"descuento"`
	LineTotal decimal.Decimal `json:"total_linea"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            int64              `json:"id"`
	Number        string             `json:"numero_factura"`
	CustomerID    int64              `json:"cliente_id"`
	CustomerName  string             `json:"cliente_nombre"`
	SaleDate      time.Time          `json:"fecha_venta"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"descuento"`
	Tax           decimal.Decimal    `json:"impuestos"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"estado"`
	PaymentMethod string             `json:"forma_pago"`
	DueDate       *time.Time         `json:"fecha_vencimiento"`
	Notes         string             `json:"observaciones"`
	SellerName    string             `json:"vendedor"`
	CreatedAt     time.Time          `json:"fecha_creacion"`
	Lines         []SaleLineResponse `json:"detalles,omitempty"`
}
