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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `
	id, codigo, nombre, COALESCE(ruc, ''), COALESCE(direccion, ''), COALESCE(telefono, ''),
	COALESCE(email, ''), COALESCE(contacto, ''), COALESCE(tipo_proveedor, ''),
	COALESCE(productos, ''), plazo_entrega, calificacion, limite_credito, saldo_actual,
	COALESCE(condiciones_pago, ''), COALESCE(usuario_creador, 0), fecha_creacion, activo`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor y devuelve el ID asignado.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO proveedores (codigo, nombre, ruc, direccion, telefono, email, contacto,
			tipo_proveedor, productos, plazo_entrega, calificacion, limite_credito, saldo_actual,
			condiciones_pago, usuario_creador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		s.Code, s.Name, s.RUC, s.Address, s.Phone, s.Email, s.Contact,
		s.SupplierType, s.Products, s.DeliveryDays, s.Rating, s.CreditLimit, s.Balance,
		s.PaymentTerms, s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

func (r *SupplierRepo) getOne(query string, arg any) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&s.ID, &s.Code, &s.Name, &s.RUC, &s.Address, &s.Phone, &s.Email, &s.Contact,
		&s.SupplierType, &s.Products, &s.DeliveryDays, &s.Rating, &s.CreditLimit,
		&s.Balance, &s.PaymentTerms, &s.CreatedBy, &s.CreatedAt, &s.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	s, err := r.getOne(`SELECT `+supplierColumns+` FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return s, nil
}

// GetByCode obtiene un proveedor por código único.
func (r *SupplierRepo) GetByCode(code string) (*entity.Supplier, error) {
	s, err := r.getOne(`SELECT `+supplierColumns+` FROM proveedores WHERE codigo = $1`, code)
	if err != nil {
		return nil, fmt.Errorf("get proveedor por codigo: %w", err)
	}
	return s, nil
}

// Update actualiza los campos editables del proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE proveedores SET nombre = $2, ruc = $3, direccion = $4, telefono = $5,
			email = $6, contacto = $7, tipo_proveedor = $8, productos = $9, plazo_entrega = $10,
			calificacion = $11, limite_credito = $12, condiciones_pago = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.RUC, s.Address, s.Phone, s.Email, s.Contact,
		s.SupplierType, s.Products, s.DeliveryDays, s.Rating, s.CreditLimit, s.PaymentTerms,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los proveedores activos ordenados por nombre.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM proveedores WHERE activo ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Code, &s.Name, &s.RUC, &s.Address, &s.Phone, &s.Email, &s.Contact,
			&s.SupplierType, &s.Products, &s.DeliveryDays, &s.Rating, &s.CreditLimit,
			&s.Balance, &s.PaymentTerms, &s.CreatedBy, &s.CreatedAt, &s.Active,
		); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}

// Deactivate baja lógica del proveedor.
func (r *SupplierRepo) Deactivate(id int64) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE proveedores SET activo = FALSE WHERE id = $1 AND activo`, id)
	if err != nil {
		return fmt.Errorf("deactivate proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
