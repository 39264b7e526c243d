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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `
	oc.id, oc.numero_orden, oc.proveedor_id, pr.nombre, oc.fecha_orden,
	oc.fecha_entrega_esperada, oc.estado, oc.subtotal, oc.descuento, oc.impuestos,
	oc.total, COALESCE(oc.observaciones, ''), COALESCE(oc.usuario_creador, 0),
	COALESCE(u.nombre, ''), oc.fecha_creacion`

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// CreateHeader persiste la cabecera de la orden y devuelve el ID asignado.
func (r *PurchaseOrderRepo) CreateHeader(o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO ordenes_compra (numero_orden, proveedor_id, fecha_orden,
			fecha_entrega_esperada, estado, subtotal, descuento, impuestos, total,
			observaciones, usuario_creador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		o.Number, o.SupplierID, o.OrderDate, o.ExpectedDate, o.Status,
		o.Subtotal, o.Discount, o.Tax, o.Total, o.Notes, o.CreatedBy,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden de compra: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de la orden.
func (r *PurchaseOrderRepo) CreateDetail(d *entity.PurchaseOrderDetail) error {
	query := `
		INSERT INTO detalle_orden_compra (orden_compra_id, producto_id, materia_prima_id,
			descripcion, cantidad, unidad_medida, precio_unitario, total_linea)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		d.OrderID, d.ProductID, d.RawMaterialID, d.Description, d.Quantity,
		d.UnitMeasure, d.UnitPrice, d.LineTotal,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert detalle orden de compra: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden de compra.
func (r *PurchaseOrderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM ordenes_compra oc
		JOIN proveedores pr ON pr.id = oc.proveedor_id
		LEFT JOIN usuarios u ON u.id = oc.usuario_creador
		WHERE oc.id = $1`
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Number, &o.SupplierID, &o.SupplierName, &o.OrderDate,
		&o.ExpectedDate, &o.Status, &o.Subtotal, &o.Discount, &o.Tax,
		&o.Total, &o.Notes, &o.CreatedBy, &o.CreatedByName, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden de compra: %w", err)
	}
	return &o, nil
}

// GetDetailsByOrderID devuelve las líneas de la orden.
func (r *PurchaseOrderRepo) GetDetailsByOrderID(orderID int64) ([]*entity.PurchaseOrderDetail, error) {
	query := `
		SELECT id, orden_compra_id, producto_id, materia_prima_id, descripcion,
			cantidad, unidad_medida, precio_unitario, total_linea
		FROM detalle_orden_compra
		WHERE orden_compra_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("get detalle orden de compra: %w", err)
	}
	defer rows.Close()

	var details []*entity.PurchaseOrderDetail
	for rows.Next() {
		var d entity.PurchaseOrderDetail
		if err := rows.Scan(
			&d.ID, &d.OrderID, &d.ProductID, &d.RawMaterialID, &d.Description,
			&d.Quantity, &d.UnitMeasure, &d.UnitPrice, &d.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan detalle orden de compra: %w", err)
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// List devuelve las órdenes de compra más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `
		SELECT ` + purchaseOrderColumns + `
		FROM ordenes_compra oc
		JOIN proveedores pr ON pr.id = oc.proveedor_id
		LEFT JOIN usuarios u ON u.id = oc.usuario_creador
		ORDER BY oc.fecha_creacion DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes de compra: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(
			&o.ID, &o.Number, &o.SupplierID, &o.SupplierName, &o.OrderDate,
			&o.ExpectedDate, &o.Status, &o.Subtotal, &o.Discount, &o.Tax,
			&o.Total, &o.Notes, &o.CreatedBy, &o.CreatedByName, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orden de compra: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id int64, status string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE ordenes_compra SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado orden de compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
