package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Si Code va vacío se
// genera uno con prefijo PROD.
type CreateProductRequest struct {
	Code          string          `json:"codigo" validate:"omitempty,max=50"`
	Name          string          `json:"nombre" validate:"required,min=1,max=200"`
	Description   string          `json:"descripcion"`
	Category      string          `json:"categoria" validate:"required"`
	Subcategory   string          `json:"subcategoria"`
	UnitMeasure   string          `json:"unidad_medida" validate:"required"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	StockMin      decimal.Decimal `json:"stock_minimo"`
	StockMax      decimal.Decimal `json:"stock_maximo"`
	StockInitial  decimal.Decimal `json:"stock_inicial"`
	Weight        decimal.Decimal `json:"peso"`
	Location      string          `json:"ubicacion"`
	SupplierID    *int64          `json:"proveedor_id"`
}

// UpdateProductRequest entrada para actualizar; los campos nil no cambian.
// El stock no se toca por aquí: solo vía ventas o ajustes.
type UpdateProductRequest struct {
	Name          *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"descripcion"`
	Category      *string          `json:"categoria"`
	Subcategory   *string          `json:"subcategoria"`
	UnitMeasure   *string          `json:"unidad_medida"`
	PurchasePrice *decimal.Decimal `json:"precio_compra"`
	SalePrice     *decimal.Decimal `json:"precio_venta"`
	StockMin      *decimal.Decimal `json:"stock_minimo"`
	StockMax      *decimal.Decimal `json:"stock_maximo"`
	Weight        *decimal.Decimal `json:"peso"`
	Location      *string          `json:"ubicacion"`
	SupplierID    *int64           `json:"proveedor_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Code          string          `json:"codigo"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion"`
	Category      string          `json:"categoria"`
	Subcategory   string          `json:"subcategoria"`
	UnitMeasure   string          `json:"unidad_medida"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	StockMin      decimal.Decimal `json:"stock_minimo"`
	StockMax      decimal.Decimal `json:"stock_maximo"`
	StockActual   decimal.Decimal `json:"stock_actual"`
	Weight        decimal.Decimal `json:"peso"`
	Location      string          `json:"ubicacion"`
	SupplierID    *int64          `json:"proveedor_id"`
	SupplierName  string          `json:"proveedor_nombre"`
	CreatedAt     time.Time       `json:"fecha_creacion"`
	UpdatedAt     time.Time       `json:"fecha_actualizacion"`
	Active        bool            `json:"activo"`
}
