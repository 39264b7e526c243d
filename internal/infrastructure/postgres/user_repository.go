package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	id, username, nombre, rol, password, COALESCE(permisos, ''), COALESCE(email, ''),
	COALESCE(telefono, ''), COALESCE(departamento, ''), COALESCE(creado_por, 0),
	fecha_creacion, ultimo_acceso, activo`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario y devuelve el ID asignado.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO usuarios (username, nombre, rol, password, permisos, email, telefono,
			departamento, creado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		u.Username, u.Name, u.Role, u.PasswordHash, u.Permissions, u.Email,
		u.Phone, u.Department, u.CreatedBy,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UserRepo) getOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Username, &u.Name, &u.Role, &u.PasswordHash, &u.Permissions,
		&u.Email, &u.Phone, &u.Department, &u.CreatedBy, &u.CreatedAt,
		&u.LastAccess, &u.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	u, err := r.getOne(`SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByUsername obtiene un usuario por username (incluye inactivos; el
// use case de auth decide con el flag activo).
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	u, err := r.getOne(`SELECT `+userColumns+` FROM usuarios WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("get usuario por username: %w", err)
	}
	return u, nil
}

// Update actualiza los campos editables del usuario (incluido el hash de
// password si cambió).
func (r *UserRepo) Update(u *entity.User) error {
	query := `
		UPDATE usuarios SET nombre = $2, rol = $3, password = $4, permisos = $5,
			email = $6, telefono = $7, departamento = $8, activo = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.ID, u.Name, u.Role, u.PasswordHash, u.Permissions, u.Email, u.Phone,
		u.Department, u.Active,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchLastAccess marca el login exitoso.
func (r *UserRepo) TouchLastAccess(id int64) error {
	_, err := r.q.Exec(context.Background(), `UPDATE usuarios SET ultimo_acceso = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touch ultimo_acceso: %w", err)
	}
	return nil
}

// List devuelve los usuarios ordenados por username.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios ORDER BY username LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Name, &u.Role, &u.PasswordHash, &u.Permissions,
			&u.Email, &u.Phone, &u.Department, &u.CreatedBy, &u.CreatedAt,
			&u.LastAccess, &u.Active,
		); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Deactivate baja lógica del usuario.
func (r *UserRepo) Deactivate(id int64) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE usuarios SET activo = FALSE WHERE id = $1 AND activo`, id)
	if err != nil {
		return fmt.Errorf("deactivate usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
