package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterial materia prima (harina, levadura, etc.).
type RawMaterial struct {
	ID          int64
	Code        string // único; autogenerado MP-yyyymmdd-XXXXXX si falta
	Name        string
	Description string
	Category    string
	UnitMeasure string
	UnitCost    decimal.Decimal
	StockActual decimal.Decimal
	StockMin    decimal.Decimal
	StockMax    decimal.Decimal
	ExpiryDate  *time.Time
	Lot         string
	Location    string
	SupplierID  *int64
	SupplierName string
	CreatedBy   int64
	CreatedAt   time.Time
	Active      bool
}
