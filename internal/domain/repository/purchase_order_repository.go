package repository

import "github.com/pansoft/panaderia-mrp/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder
// y sus detalles.
type PurchaseOrderRepository interface {
	CreateHeader(order *entity.PurchaseOrder) error
	CreateDetail(detail *entity.PurchaseOrderDetail) error
	GetByID(id int64) (*entity.PurchaseOrder, error)
	GetDetailsByOrderID(orderID int64) ([]*entity.PurchaseOrderDetail, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id int64, status string) error
}
