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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `
	v.id, v.numero_factura, v.cliente_id, c.nombre, v.fecha_venta, v.subtotal,
	v.descuento, v.impuestos, v.total, v.estado, COALESCE(v.forma_pago, ''),
	v.fecha_vencimiento, COALESCE(v.observaciones, ''), COALESCE(v.usuario_vendedor, 0),
	COALESCE(u.nombre, ''), v.fecha_creacion`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateHeader persiste la cabecera de la venta y devuelve el ID asignado.
func (r *SaleRepo) CreateHeader(s *entity.Sale) error {
	query := `
		INSERT INTO ventas (numero_factura, cliente_id, fecha_venta, subtotal, descuento,
			impuestos, total, estado, forma_pago, fecha_vencimiento, observaciones,
			usuario_vendedor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, fecha_creacion`
	err := r.q.QueryRow(context.Background(), query,
		s.Number, s.CustomerID, s.SaleDate, s.Subtotal, s.Discount,
		s.Tax, s.Total, s.Status, s.PaymentMethod, s.DueDate, s.Notes, s.SellerID,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de venta.
func (r *SaleRepo) CreateDetail(d *entity.SaleDetail) error {
	query := `
		INSERT INTO detalle_venta (venta_id, producto_id, cantidad, precio_unitario,
			descuento, total_linea)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		d.SaleID, d.ProductID, d.Quantity, d.UnitPrice, d.Discount, d.LineTotal,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM ventas v
		JOIN clientes c ON c.id = v.cliente_id
		LEFT JOIN usuarios u ON u.id = v.usuario_vendedor
		WHERE v.id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Number, &s.CustomerID, &s.CustomerName, &s.SaleDate, &s.Subtotal,
		&s.Discount, &s.Tax, &s.Total, &s.Status, &s.PaymentMethod,
		&s.DueDate, &s.Notes, &s.SellerID, &s.SellerName, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &s, nil
}

// GetDetailsBySaleID devuelve las líneas de la venta.
func (r *SaleRepo) GetDetailsBySaleID(saleID int64) ([]*entity.SaleDetail, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, descuento, total_linea
		FROM detalle_venta
		WHERE venta_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get detalle venta: %w", err)
	}
	defer rows.Close()

	var details []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(
			&d.ID, &d.SaleID, &d.ProductID, &d.Quantity, &d.UnitPrice,
			&d.Discount, &d.LineTotal,
		); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

// List devuelve las ventas más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM ventas v
		JOIN clientes c ON c.id = v.cliente_id
		LEFT JOIN usuarios u ON u.id = v.usuario_vendedor
		ORDER BY v.fecha_creacion DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Number, &s.CustomerID, &s.CustomerName, &s.SaleDate, &s.Subtotal,
			&s.Discount, &s.Tax, &s.Total, &s.Status, &s.PaymentMethod,
			&s.DueDate, &s.Notes, &s.SellerID, &s.SellerName, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

// UpdateStatus cambia el estado de la venta.
func (r *SaleRepo) UpdateStatus(id int64, status string) error {
	tag, err := r.q.Exec(context.Background(), `UPDATE ventas SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
