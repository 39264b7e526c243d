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

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const productionOrderColumns = `
	op.id, op.numero_orden, op.producto_id, p.nombre, op.cantidad_producir,
	op.fecha_inicio, op.fecha_fin_estimada, op.estado, op.prioridad,
	COALESCE(op.observaciones, ''), COALESCE(op.usuario_creador, 0),
	COALESCE(u.nombre, ''), op.fecha_creacion`

// ProductionOrderRepo implementación del puerto ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de persistencia para órdenes de producción.
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// CreateHeader persiste la cabecera de la orden y devuelve el ID asignado.
func (r *ProductionOrderRepo) CreateHeader(o *entity.ProductionOrder) error {
	query := `
		INSERT INTO ordenes_produccion (numero_orden, producto_id, cantidad_producir,
			fecha_inicio, fecha_fin_estimada, estado, prioridad, observaciones, usuario_creador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		o.Number, o.ProductID, o.QuantityPlanned, o.StartDate, o.EndDate,
		o.Status, o.Priority, o.Notes, o.ResponsibleID,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden de produccion: %w", err)
	}
	return nil
}

// CreateRequirement persiste un requerimiento de materiales de la orden.
func (r *ProductionOrderRepo) CreateRequirement(req *entity.MaterialRequirement) error {
	query := `
		INSERT INTO requerimientos_materiales (orden_produccion_id, materia_prima_id,
			cantidad_requerida, cantidad_asignada, unidad_medida)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		req.OrderID, req.RawMaterialID, req.QuantityRequired, req.QuantityAssigned,
		req.UnitMeasure,
	).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("insert requerimiento: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden de producción.
func (r *ProductionOrderRepo) GetByID(id int64) (*entity.ProductionOrder, error) {
	query := `
		SELECT ` + productionOrderColumns + `
		FROM ordenes_produccion op
		JOIN productos p ON p.id = op.producto_id
		LEFT JOIN usuarios u ON u.id = op.usuario_creador
		WHERE op.id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.ProductID, &o.ProductName, &o.QuantityPlanned,
		&o.StartDate, &o.EndDate, &o.Status, &o.Priority,
		&o.Notes, &o.ResponsibleID, &o.ResponsibleName, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden de produccion: %w", err)
	}
	return &o, nil
}

// GetRequirementsByOrderID devuelve los requerimientos con el nombre de la
// materia prima resuelto.
func (r *ProductionOrderRepo) GetRequirementsByOrderID(orderID int64) ([]*entity.MaterialRequirement, error) {
	query := `
		SELECT rm.id, rm.orden_produccion_id, rm.materia_prima_id, mp.nombre,
			rm.cantidad_requerida, rm.cantidad_asignada, rm.unidad_medida
		FROM requerimientos_materiales rm
		JOIN materias_primas mp ON mp.id = rm.materia_prima_id
		WHERE rm.orden_produccion_id = $1
		ORDER BY rm.id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get requerimientos: %w", err)
	}
	defer rows.Close()

	var reqs []*entity.MaterialRequirement
	for rows.Next() {
		var req entity.MaterialRequirement
		if err := rows.Scan(
			&req.ID, &req.OrderID, &req.RawMaterialID, &req.RawMaterialName,
			&req.QuantityRequired, &req.QuantityAssigned, &req.UnitMeasure,
		); err != nil {
			return nil, fmt.Errorf("scan requerimiento: %w", err)
		}
		reqs = append(reqs, &req)
	}
	return reqs, rows.Err()
}

// List devuelve las órdenes de producción más recientes primero.
func (r *ProductionOrderRepo) List(limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `
		SELECT ` + productionOrderColumns + `
		FROM ordenes_produccion op
		JOIN productos p ON p.id = op.producto_id
		LEFT JOIN usuarios u ON u.id = op.usuario_creador
		ORDER BY op.fecha_creacion DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes de produccion: %w", err)
	}
	defer rows.Close()

	var orders []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(
			&o.ID, &o.Number, &o.ProductID, &o.ProductName, &o.QuantityPlanned,
			&o.StartDate, &o.EndDate, &o.Status, &o.Priority,
			&o.Notes, &o.ResponsibleID, &o.ResponsibleName, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orden de produccion: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *ProductionOrderRepo) UpdateStatus(id int64, status string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE ordenes_produccion SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado orden de produccion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
