package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest entrada para crear una materia prima. Si Code va
// vacío se genera uno con prefijo MP.
type CreateRawMaterialRequest struct {
	Code         string          `json:"codigo" validate:"omitempty,max=50"`
	Name         string          `json:"nombre" validate:"required,min=1,max=200"`
	Description  string          `json:"descripcion"`
	Category     string          `json:"categoria" validate:"required"`
	UnitMeasure  string          `json:"unidad_medida" validate:"required"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
	StockInitial decimal.Decimal `json:"stock_inicial"`
	StockMin     decimal.Decimal `json:"stock_minimo"`
	StockMax     decimal.Decimal `json:"stock_maximo"`
	ExpiryDate   *time.Time      `json:"fecha_caducidad"`
	Lot          string          `json:"lote"`
	Location     string          `json:"ubicacion"`
	SupplierID   *int64          `json:"proveedor_id"`
}

// UpdateRawMaterialRequest entrada para actualizar; los campos nil no cambian.
type UpdateRawMaterialRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"descripcion"`
	Category    *string          `json:"categoria"`
	UnitMeasure *string          `json:"unidad_medida"`
	UnitCost    *decimal.Decimal `json:"costo_unitario"`
	StockMin    *decimal.Decimal `json:"stock_minimo"`
	StockMax    *decimal.Decimal `json:"stock_maximo"`
	ExpiryDate  *time.Time       `json:"fecha_caducidad"`
	Lot         *string          `json:"lote"`
	Location    *string          `json:"ubicacion"`
	SupplierID  *int64           `json:"proveedor_id"`
}

// RawMaterialResponse salida de una materia prima.
type RawMaterialResponse struct {
	ID           int64           `json:"id"`
	Code         string          `json:"codigo"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion"`
	Category     string          `json:"categoria"`
	UnitMeasure  string          `json:"unidad_medida"`
	UnitCost     decimal.Decimal `json:"costo_unitario"`
	StockActual  decimal.Decimal `json:"stock_actual"`
	StockMin     decimal.Decimal `json:"stock_minimo"`
	StockMax     decimal.Decimal `json:"stock_maximo"`
	ExpiryDate   *time.Time      `json:"fecha_caducidad"`
	Lot          string          `json:"lote"`
	Location     string          `json:"ubicacion"`
	SupplierID   *int64          `json:"proveedor_id"`
	SupplierName string          `json:"proveedor_nombre"`
	CreatedAt    time.Time       `json:"fecha_creacion"`
	Active       bool            `json:"activo"`
}
