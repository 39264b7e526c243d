package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el perfil del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=50"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"nombre" validate:"required,min=1,max=200"`
	Role       string `json:"rol" validate:"required,oneof=admin produccion ventas almacen"`
	Permissions string `json:"permisos"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"telefono"`
	Department string `json:"departamento"`
}

// UpdateUserRequest entrada para actualizar un usuario; los campos nil no cambian.
type UpdateUserRequest struct {
	Password   *string `json:"password" validate:"omitempty,min=8"`
	Name       *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Role       *string `json:"rol" validate:"omitempty,oneof=admin produccion ventas almacen"`
	Permissions *string `json:"permisos"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"telefono"`
	Department *string `json:"departamento"`
	Active     *bool   `json:"activo"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Name       string     `json:"nombre"`
	Role       string     `json:"rol"`
	Permissions string    `json:"permisos"`
	Email      string     `json:"email"`
	Phone      string     `json:"telefono"`
	Department string     `json:"departamento"`
	CreatedAt  time.Time  `json:"fecha_creacion"`
	LastAccess *time.Time `json:"ultimo_acceso"`
	Active     bool       `json:"activo"`
}
