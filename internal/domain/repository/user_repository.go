package repository

import "github.com/pansoft/panaderia-mrp/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// TouchLastAccess actualiza ultimo_acceso al momento actual.
	TouchLastAccess(id int64) error
	List(limit, offset int) ([]*entity.User, error)
	Deactivate(id int64) error
}
