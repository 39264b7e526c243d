package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

const rawMaterialColumns = `
	m.id, m.codigo, m.nombre, COALESCE(m.descripcion, ''), m.categoria, m.unidad_medida,
	m.costo_unitario, m.stock_actual, m.stock_minimo, m.stock_maximo, m.fecha_caducidad,
	COALESCE(m.lote, ''), COALESCE(m.ubicacion, ''), m.proveedor_id, COALESCE(pr.nombre, ''),
	COALESCE(m.usuario_creador, 0), m.fecha_creacion, m.activo`

// RawMaterialRepo implementación del puerto RawMaterialRepository sobre PostgreSQL.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador de persistencia para materias primas.
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

// Create persiste una nueva materia prima y devuelve el ID asignado.
func (r *RawMaterialRepo) Create(m *entity.RawMaterial) error {
	query := `
		INSERT INTO materias_primas (codigo, nombre, descripcion, categoria, unidad_medida,
			costo_unitario, stock_actual, stock_minimo, stock_maximo, fecha_caducidad, lote,
			ubicacion, proveedor_id, usuario_creador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		m.Code, m.Name, m.Description, m.Category, m.UnitMeasure,
		m.UnitCost, m.StockActual, m.StockMin, m.StockMax, m.ExpiryDate, m.Lot,
		m.Location, m.SupplierID, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert materia prima: %w", err)
	}
	return nil
}

func (r *RawMaterialRepo) getOne(query string, arg any) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Code, &m.Name, &m.Description, &m.Category, &m.UnitMeasure,
		&m.UnitCost, &m.StockActual, &m.StockMin, &m.StockMax, &m.ExpiryDate,
		&m.Lot, &m.Location, &m.SupplierID, &m.SupplierName,
		&m.CreatedBy, &m.CreatedAt, &m.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(id int64) (*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM materias_primas m
		LEFT JOIN proveedores pr ON pr.id = m.proveedor_id
		WHERE m.id = $1`
	m, err := r.getOne(query, id)
	if err != nil {
		return nil, fmt.Errorf("get materia prima: %w", err)
	}
	return m, nil
}

// GetByCode obtiene una materia prima por código único.
func (r *RawMaterialRepo) GetByCode(code string) (*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM materias_primas m
		LEFT JOIN proveedores pr ON pr.id = m.proveedor_id
		WHERE m.codigo = $1`
	m, err := r.getOne(query, code)
	if err != nil {
		return nil, fmt.Errorf("get materia prima por codigo: %w", err)
	}
	return m, nil
}

// GetForUpdate bloquea la fila de la materia prima (SELECT ... FOR UPDATE).
// Solo dentro de una transacción.
func (r *RawMaterialRepo) GetForUpdate(id int64) (*entity.RawMaterial, error) {
	query := `
		SELECT id, codigo, nombre, unidad_medida, costo_unitario,
			stock_minimo, stock_actual, activo
		FROM materias_primas WHERE id = $1 FOR UPDATE`
	var m entity.RawMaterial
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Code, &m.Name, &m.UnitMeasure, &m.UnitCost,
		&m.StockMin, &m.StockActual, &m.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock materia prima: %w", err)
	}
	return &m, nil
}

// Update actualiza los campos editables de la materia prima.
func (r *RawMaterialRepo) Update(m *entity.RawMaterial) error {
	query := `
		UPDATE materias_primas SET nombre = $2, descripcion = $3, categoria = $4,
			unidad_medida = $5, costo_unitario = $6, stock_minimo = $7, stock_maximo = $8,
			fecha_caducidad = $9, lote = $10, ubicacion = $11, proveedor_id = $12
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Description, m.Category, m.UnitMeasure, m.UnitCost,
		m.StockMin, m.StockMax, m.ExpiryDate, m.Lot, m.Location, m.SupplierID,
	)
	if err != nil {
		return fmt.Errorf("update materia prima: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock sobrescribe stock_actual. El caller ya calculó el nuevo valor
// y registra el movimiento correspondiente.
func (r *RawMaterialRepo) UpdateStock(id int64, stock decimal.Decimal) error {
	query := `UPDATE materias_primas SET stock_actual = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock materia prima: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las materias primas activas ordenadas por nombre.
func (r *RawMaterialRepo) List(limit, offset int) ([]*entity.RawMaterial, error) {
	query := `
		SELECT ` + rawMaterialColumns + `
		FROM materias_primas m
		LEFT JOIN proveedores pr ON pr.id = m.proveedor_id
		WHERE m.activo
		ORDER BY m.nombre
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materias primas: %w", err)
	}
	defer rows.Close()

	var materials []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Name, &m.Description, &m.Category, &m.UnitMeasure,
			&m.UnitCost, &m.StockActual, &m.StockMin, &m.StockMax, &m.ExpiryDate,
			&m.Lot, &m.Location, &m.SupplierID, &m.SupplierName,
			&m.CreatedBy, &m.CreatedAt, &m.Active,
		); err != nil {
			return nil, fmt.Errorf("scan materia prima: %w", err)
		}
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}

// Deactivate baja lógica de la materia prima.
func (r *RawMaterialRepo) Deactivate(id int64) error {
	query := `UPDATE materias_primas SET activo = FALSE WHERE id = $1 AND activo`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate materia prima: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
