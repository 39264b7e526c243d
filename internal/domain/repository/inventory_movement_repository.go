package repository

import "github.com/pansoft/panaderia-mrp/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia del kardex.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByMaterial(materialID int64, limit, offset int) ([]*entity.InventoryMovement, error)
	List(limit, offset int) ([]*entity.InventoryMovement, error)
}
