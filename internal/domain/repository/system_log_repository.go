package repository

import "github.com/pansoft/panaderia-mrp/internal/domain/entity"

// SystemLogRepository define el puerto de persistencia de la bitácora.
type SystemLogRepository interface {
	Append(log *entity.SystemLog) error
	List(limit, offset int) ([]*entity.SystemLog, error)
}
