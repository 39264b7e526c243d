package repository

import "github.com/pansoft/panaderia-mrp/internal/domain/entity"

// ProductionOrderRepository define el puerto de persistencia para
// ProductionOrder y sus requerimientos de materiales.
type ProductionOrderRepository interface {
	CreateHeader(order *entity.ProductionOrder) error
	CreateRequirement(req *entity.MaterialRequirement) error
	GetByID(id int64) (*entity.ProductionOrder, error)
	GetRequirementsByOrderID(orderID int64) ([]*entity.MaterialRequirement, error)
	List(limit, offset int) ([]*entity.ProductionOrder, error)
	UpdateStatus(id int64, status string) error
}
