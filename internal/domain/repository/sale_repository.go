package repository

import "github.com/pansoft/panaderia-mrp/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus detalles.
type SaleRepository interface {
	CreateHeader(sale *entity.Sale) error
	CreateDetail(detail *entity.SaleDetail) error
	GetByID(id int64) (*entity.Sale, error)
	GetDetailsBySaleID(saleID int64) ([]*entity.SaleDetail, error)
	List(limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id int64, status string) error
}
