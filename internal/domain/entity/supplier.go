package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier proveedor de materias primas o mercadería.
type Supplier struct {
	ID           int64
	Code         string // único; autogenerado PROV-yyyymmdd-XXXXXX si falta
	Name         string
	RUC          string
	Address      string
	Phone        string
	Email        string
	Contact      string
	SupplierType string
	Products     string // descripción libre de lo que provee
	DeliveryDays int
	Rating       int // 1..5, default 5
	CreditLimit  decimal.Decimal
	Balance      decimal.Decimal
	PaymentTerms string
	CreatedBy    int64
	CreatedAt    time.Time
	Active       bool
}
