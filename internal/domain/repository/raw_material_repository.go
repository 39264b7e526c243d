package repository

import (
	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para RawMaterial (DIP).
type RawMaterialRepository interface {
	Create(material *entity.RawMaterial) error
	GetByID(id int64) (*entity.RawMaterial, error)
	GetByCode(code string) (*entity.RawMaterial, error)
	GetForUpdate(id int64) (*entity.RawMaterial, error)
	Update(material *entity.RawMaterial) error
	UpdateStock(id int64, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.RawMaterial, error)
	Deactivate(id int64) error
}
