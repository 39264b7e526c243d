package entity

import "time"

// Roles de usuario. El rol viaja en el JWT y gobierna el RBAC del router.
const (
	RoleAdmin      = "admin"
	RoleProduccion = "produccion"
	RoleVentas     = "ventas"
	RoleAlmacen    = "almacen"
)

// User usuario del sistema. PasswordHash es el digest hex del esquema
// sha256(password+salt+secreto); ver application/auth.
type User struct {
	ID           int64
	Username     string
	Name         string
	Role         string
	PasswordHash string
	Permissions  string
	Email        string
	Phone        string
	Department   string
	CreatedBy    int64
	CreatedAt    time.Time
	LastAccess   *time.Time
	Active       bool
}

// Profile es la vista pública del usuario que recibe la capa HTTP tras el login.
type Profile struct {
	ID          int64
	Username    string
	Name        string
	Role        string
	Permissions string
	Email       string
}

// PublicProfile proyecta el usuario a su perfil público.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
		Email:       u.Email,
	}
}
