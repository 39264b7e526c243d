package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer cliente de la panadería.
type Customer struct {
	ID             int64
	Code           string // único; autogenerado CLI-yyyymmdd-XXXXXX si falta
	Name           string
	DocumentType   string
	DocumentNumber string
	Address        string
	Phone          string
	Email          string
	Contact        string
	CustomerType   string
	CreditLimit    decimal.Decimal
	Balance        decimal.Decimal
	CreditDays     int
	Category       string // default REGULAR
	CreatedBy      int64
	CreatedAt      time.Time
	Active         bool
}
