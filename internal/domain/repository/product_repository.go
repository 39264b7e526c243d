package repository

import (
	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate obtiene el producto con SELECT ... FOR UPDATE; solo tiene
	// sentido sobre un repo atado a una transacción.
	GetForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id int64, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// Deactivate baja lógica (active = false); las filas nunca se borran.
	Deactivate(id int64) error
}
