package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor. Si Code va vacío se
// genera uno con prefijo PROV.
type CreateSupplierRequest struct {
	Code         string          `json:"codigo" validate:"omitempty,max=50"`
	Name         string          `json:"nombre" validate:"required,min=1,max=200"`
	RUC          string          `json:"ruc"`
	Address      string          `json:"direccion"`
	Phone        string          `json:"telefono"`
	Email        string          `json:"email" validate:"omitempty,email"`
	Contact      string          `json:"contacto"`
	SupplierType string          `json:"tipo_proveedor"`
	Products     string          `json:"productos"`
	DeliveryDays int             `json:"plazo_entrega" validate:"omitempty,min=0"`
	Rating       int             `json:"calificacion" validate:"omitempty,min=1,max=5"`
	CreditLimit  decimal.Decimal `json:"limite_credito"`
	PaymentTerms string          `json:"condiciones_pago"`
}

// UpdateSupplierRequest entrada para actualizar; los campos nil no cambian.
type UpdateSupplierRequest struct {
	Name         *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	RUC          *string          `json:"ruc"`
	Address      *string          `json:"direccion"`
	Phone        *string          `json:"telefono"`
	Email        *string          `json:"email" validate:"omitempty,email"`
	Contact      *string          `json:"contacto"`
	SupplierType *string          `json:"tipo_proveedor"`
	Products     *string          `json:"productos"`
	DeliveryDays *int             `json:"plazo_entrega" validate:"omitempty,min=0"`
	Rating       *int             `json:"calificacion" validate:"omitempty,min=1,max=5"`
	CreditLimit  *decimal.Decimal `json:"limite_credito"`
	PaymentTerms *string          `json:"condiciones_pago"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           int64           `json:"id"`
	Code         string          `json:"codigo"`
	Name         string          `json:"nombre"`
	RUC          string          `json:"ruc"`
	Address      string          `json:"direccion"`
	Phone        string          `json:"telefono"`
	Email        string          `json:"email"`
	Contact      string          `json:"contacto"`
	SupplierType string          `json:"tipo_proveedor"`
	Products     string          `json:"productos"`
	DeliveryDays int             `json:"plazo_entrega"`
	Rating       int             `json:"calificacion"`
	CreditLimit  decimal.Decimal `json:"limite_credito"`
	Balance      decimal.Decimal `json:"saldo_actual"`
	PaymentTerms string          `json:"condiciones_pago"`
	CreatedAt    time.Time       `json:"fecha_creacion"`
	Active       bool            `json:"activo"`
}
