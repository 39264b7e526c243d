package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest ajuste manual de stock de un producto o una materia
// prima (exactamente uno de los dos IDs). ENTRADA suma, SALIDA resta,
// CORRECCION sobrescribe con Quantity.
type AdjustStockRequest struct {
	ProductID  int64           `json:"producto_id"`
	MaterialID int64           `json:"materia_prima_id"`
	Type       string          `json:"tipo_ajuste" validate:"required,oneof=ENTRADA SALIDA CORRECCION"`
	Quantity   decimal.Decimal `json:"cantidad" validate:"required"`
	Reason     string          `json:"motivo" validate:"required,min=1,max=500"`
}

// MovementResponse movimiento del kardex en respuestas.
type MovementResponse struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"producto_id,omitempty"`
	ProductName   string          `json:"producto_nombre,omitempty"`
	MaterialID    int64           `json:"materia_prima_id,omitempty"`
	MaterialName  string          `json:"materia_prima_nombre,omitempty"`
	Type          string          `json:"tipo_movimiento"`
	Quantity      decimal.Decimal `json:"cantidad"`
	StockBefore   decimal.Decimal `json:"stock_anterior"`
	StockAfter    decimal.Decimal `json:"stock_nuevo"`
	Reason        string          `json:"motivo"`
	ReferenceID   *int64          `json:"referencia_id"`
	ReferenceType string          `json:"referencia_tipo"`
	UserName      string          `json:"usuario"`
	CreatedAt     time.Time       `json:"fecha_movimiento"`
}
