package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto terminado de la panadería.
// StockActual solo se muta a través de operaciones que generan movimiento
// (venta, ajuste, creación); nunca por un UPDATE directo del registro.
type Product struct {
	ID           int64
	Code         string // único; autogenerado PROD-yyyymmdd-XXXXXX si falta
	Name         string
	Description  string
	Category     string
	Subcategory  string
	UnitMeasure  string
	PurchasePrice decimal.Decimal
	SalePrice    decimal.Decimal
	StockMin     decimal.Decimal // advisory: solo alertas de dashboard
	StockMax     decimal.Decimal // advisory
	StockActual  decimal.Decimal
	Weight       decimal.Decimal
	Location     string
	SupplierID   *int64
	SupplierName string // LEFT JOIN en listados
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Active       bool
}
