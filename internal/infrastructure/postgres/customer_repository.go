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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `
	id, codigo, nombre, COALESCE(tipo_documento, ''), COALESCE(numero_documento, ''),
	COALESCE(direccion, ''), COALESCE(telefono, ''), COALESCE(email, ''), COALESCE(contacto, ''),
	COALESCE(tipo_cliente, ''), limite_credito, saldo_actual, dias_credito, categoria,
	COALESCE(usuario_creador, 0), fecha_creacion, activo`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y devuelve el ID asignado.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO clientes (codigo, nombre, tipo_documento, numero_documento, direccion,
			telefono, email, contacto, tipo_cliente, limite_credito, saldo_actual, dias_credito,
			categoria, usuario_creador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		c.Code, c.Name, c.DocumentType, c.DocumentNumber, c.Address,
		c.Phone, c.Email, c.Contact, c.CustomerType, c.CreditLimit, c.Balance, c.CreditDays,
		c.Category, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

func (r *CustomerRepo) getOne(query string, arg any) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Code, &c.Name, &c.DocumentType, &c.DocumentNumber, &c.Address,
		&c.Phone, &c.Email, &c.Contact, &c.CustomerType, &c.CreditLimit, &c.Balance,
		&c.CreditDays, &c.Category, &c.CreatedBy, &c.CreatedAt, &c.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	c, err := r.getOne(`SELECT `+customerColumns+` FROM clientes WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByCode obtiene un cliente por código único.
func (r *CustomerRepo) GetByCode(code string) (*entity.Customer, error) {
	c, err := r.getOne(`SELECT `+customerColumns+` FROM clientes WHERE codigo = $1`, code)
	if err != nil {
		return nil, fmt.Errorf("get cliente por codigo: %w", err)
	}
	return c, nil
}

// Update actualiza los campos editables del cliente.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE clientes SET nombre = $2, tipo_documento = $3, numero_documento = $4,
			direccion = $5, telefono = $6, email = $7, contacto = $8, tipo_cliente = $9,
			limite_credito = $10, dias_credito = $11, categoria = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.DocumentType, c.DocumentNumber, c.Address, c.Phone, c.Email,
		c.Contact, c.CustomerType, c.CreditLimit, c.CreditDays, c.Category,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los clientes activos ordenados por nombre.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE activo ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.DocumentType, &c.DocumentNumber, &c.Address,
			&c.Phone, &c.Email, &c.Contact, &c.CustomerType, &c.CreditLimit, &c.Balance,
			&c.CreditDays, &c.Category, &c.CreatedBy, &c.CreatedAt, &c.Active,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}

// Deactivate baja lógica del cliente.
func (r *CustomerRepo) Deactivate(id int64) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE clientes SET activo = FALSE WHERE id = $1 AND activo`, id)
	if err != nil {
		return fmt.Errorf("deactivate cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
