package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente. Si Code va vacío se
// genera uno con prefijo CLI.
type CreateCustomerRequest struct {
	Code           string          `json:"codigo" validate:"omitempty,max=50"`
	Name           string          `json:"nombre" validate:"required,min=1,max=200"`
	DocumentType   string          `json:"tipo_documento"`
	DocumentNumber string          `json:"numero_documento"`
	Address        string          `json:"direccion"`
	Phone          string          `json:"telefono"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Contact        string          `json:"contacto"`
	CustomerType   string          `json:"tipo_cliente"`
	CreditLimit    decimal.Decimal `json:"limite_credito"`
	CreditDays     int             `json:"dias_credito" validate:"omitempty,min=0"`
	Category       string          `json:"categoria"`
}

// UpdateCustomerRequest entrada para actualizar; los campos nil no cambian.
type UpdateCustomerRequest struct {
	Name           *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	DocumentType   *string          `json:"tipo_documento"`
	DocumentNumber *string          `json:"numero_documento"`
	Address        *string          `json:"direccion"`
	Phone          *string          `json:"telefono"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Contact        *string          `json:"contacto"`
	CustomerType   *string          `json:"tipo_cliente"`
	CreditLimit    *decimal.Decimal `json:"limite_credito"`
	CreditDays     *int             `json:"dias_credito" validate:"omitempty,min=0"`
	Category       *string          `json:"categoria"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             int64           `json:"id"`
	Code           string          `json:"codigo"`
	Name           string          `json:"nombre"`
	DocumentType   string          `json:"tipo_documento"`
	DocumentNumber string          `json:"numero_documento"`
	Address        string          `json:"direccion"`
	Phone          string          `json:"telefono"`
	Email          string          `json:"email"`
	Contact        string          `json:"contacto"`
	CustomerType   string          `json:"tipo_cliente"`
	CreditLimit    decimal.Decimal `json:"limite_credito"`
	Balance        decimal.Decimal `json:"saldo_actual"`
	CreditDays     int             `json:"dias_credito"`
	Category       string          `json:"categoria"`
	CreatedAt      time.Time       `json:"fecha_creacion"`
	Active         bool            `json:"activo"`
}
