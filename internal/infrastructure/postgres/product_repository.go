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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	p.id, p.codigo, p.nombre, COALESCE(p.descripcion, ''), p.categoria,
	COALESCE(p.subcategoria, ''), p.unidad_medida, p.precio_compra, p.precio_venta,
	p.stock_minimo, p.stock_maximo, p.stock_actual, COALESCE(p.peso, 0),
	COALESCE(p.ubicacion, ''), p.proveedor_id, COALESCE(pr.nombre, ''),
	COALESCE(p.usuario_creador, 0), p.fecha_creacion, p.fecha_actualizacion, p.activo`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y devuelve el ID asignado.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO productos (codigo, nombre, descripcion, categoria, subcategoria, unidad_medida,
			precio_compra, precio_venta, stock_minimo, stock_maximo, stock_actual, peso, ubicacion,
			proveedor_id, usuario_creador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, fecha_creacion, fecha_actualizacion`
	err := r.q.QueryRow(context.Background(), query,
		p.Code, p.Name, p.Description, p.Category, p.Subcategory, p.UnitMeasure,
		p.PurchasePrice, p.SalePrice, p.StockMin, p.StockMax, p.StockActual, p.Weight,
		p.Location, p.SupplierID, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Category, &p.Subcategory,
		&p.UnitMeasure, &p.PurchasePrice, &p.SalePrice, &p.StockMin, &p.StockMax,
		&p.StockActual, &p.Weight, &p.Location, &p.SupplierID, &p.SupplierName,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un producto por ID (con nombre de proveedor resuelto).
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos p
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		WHERE p.id = $1`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código único.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos p
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		WHERE p.codigo = $1`
	p, err := r.scanOne(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		return nil, fmt.Errorf("get producto por codigo: %w", err)
	}
	return p, nil
}

// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
// Solo dentro de una transacción; serializa las ventas concurrentes del
// mismo producto.
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	query := `
		SELECT id, codigo, nombre, unidad_medida, precio_compra, precio_venta,
			stock_minimo, stock_actual, activo
		FROM productos WHERE id = $1 FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Code, &p.Name, &p.UnitMeasure, &p.PurchasePrice, &p.SalePrice,
		&p.StockMin, &p.StockActual, &p.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock producto: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos editables del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, categoria = $4, subcategoria = $5,
			unidad_medida = $6, precio_compra = $7, precio_venta = $8, stock_minimo = $9,
			stock_maximo = $10, peso = $11, ubicacion = $12, proveedor_id = $13,
			fecha_actualizacion = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.Category, p.Subcategory, p.UnitMeasure,
		p.PurchasePrice, p.SalePrice, p.StockMin, p.StockMax, p.Weight, p.Location, p.SupplierID,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock sobrescribe stock_actual. El caller ya calculó el nuevo valor
// y registra el movimiento correspondiente.
func (r *ProductRepo) UpdateStock(id int64, stock decimal.Decimal) error {
	query := `UPDATE productos SET stock_actual = $2, fecha_actualizacion = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los productos activos ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos p
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		WHERE p.activo
		ORDER BY p.nombre
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.Category, &p.Subcategory,
			&p.UnitMeasure, &p.PurchasePrice, &p.SalePrice, &p.StockMin, &p.StockMax,
			&p.StockActual, &p.Weight, &p.Location, &p.SupplierID, &p.SupplierName,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &p.Active,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Deactivate baja lógica del producto.
func (r *ProductRepo) Deactivate(id int64) error {
	query := `UPDATE productos SET activo = FALSE, fecha_actualizacion = now() WHERE id = $1 AND activo`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
