package postgres

import (
	"context"
	"fmt"

	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `
	m.id, m.tipo_movimiento, m.referencia_id, COALESCE(m.referencia_tipo, ''),
	COALESCE(m.producto_id, 0), COALESCE(p.nombre, ''),
	COALESCE(m.materia_prima_id, 0), COALESCE(mp.nombre, ''),
	m.cantidad, m.stock_anterior, m.stock_nuevo,
	COALESCE(m.motivo, ''), COALESCE(m.usuario_responsable, 0), COALESCE(u.nombre, ''),
	m.fecha_movimiento`

const movementJoins = `
	LEFT JOIN productos p ON p.id = m.producto_id
	LEFT JOIN materias_primas mp ON mp.id = m.materia_prima_id
	LEFT JOIN usuarios u ON u.id = m.usuario_responsable`

// InventoryMovementRepo implementación del puerto InventoryMovementRepository sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador de persistencia del kardex.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create registra un movimiento de inventario.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	query := `
		INSERT INTO movimientos_inventario (tipo_movimiento, referencia_id, referencia_tipo,
			producto_id, materia_prima_id, cantidad, stock_anterior, stock_nuevo, motivo,
			usuario_responsable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, fecha_movimiento`
	err := r.q.QueryRow(context.Background(), query,
		m.Type, m.ReferenceID, m.ReferenceType, nullIfZero(m.ProductID), nullIfZero(m.MaterialID),
		m.Quantity, m.StockBefore, m.StockAfter, m.Reason, m.UserID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

func (r *InventoryMovementRepo) list(query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var movements []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.Type, &m.ReferenceID, &m.ReferenceType,
			&m.ProductID, &m.ProductName, &m.MaterialID, &m.MaterialName,
			&m.Quantity, &m.StockBefore, &m.StockAfter,
			&m.Reason, &m.UserID, &m.UserName, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

// ListByProduct devuelve el kardex de un producto, más reciente primero.
func (r *InventoryMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario m` + movementJoins + `
		WHERE m.producto_id = $1
		ORDER BY m.fecha_movimiento DESC, m.id DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// ListByMaterial devuelve el kardex de una materia prima, más reciente primero.
func (r *InventoryMovementRepo) ListByMaterial(materialID int64, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario m` + movementJoins + `
		WHERE m.materia_prima_id = $1
		ORDER BY m.fecha_movimiento DESC, m.id DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, materialID, limit, offset)
}

// List devuelve el kardex completo, más reciente primero.
func (r *InventoryMovementRepo) List(limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario m` + movementJoins + `
		ORDER BY m.fecha_movimiento DESC, m.id DESC
		LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}
