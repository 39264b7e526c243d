package postgres

import (
	"context"
	"fmt"

	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

var _ repository.SystemLogRepository = (*SystemLogRepo)(nil)

// SystemLogRepo bitácora del sistema sobre PostgreSQL.
type SystemLogRepo struct {
	q Querier
}

// NewSystemLogRepository construye el adaptador de la bitácora.
func NewSystemLogRepository(q Querier) *SystemLogRepo {
	return &SystemLogRepo{q: q}
}

// Append registra una entrada en la bitácora.
func (r *SystemLogRepo) Append(l *entity.SystemLog) error {
	query := `
		INSERT INTO logs_sistema (usuario_id, modulo, accion, detalles, direccion_ip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, fecha`
	err := r.q.QueryRow(context.Background(), query,
		l.UserID, l.Module, l.Action, l.Details, l.IPAddress,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

// List devuelve la bitácora, más reciente primero.
func (r *SystemLogRepo) List(limit, offset int) ([]*entity.SystemLog, error) {
	query := `
		SELECT l.id, COALESCE(l.usuario_id, 0), COALESCE(u.nombre, ''), l.modulo,
			l.accion, COALESCE(l.detalles, ''), COALESCE(l.direccion_ip, ''), l.fecha
		FROM logs_sistema l
		LEFT JOIN usuarios u ON u.id = l.usuario_id
		ORDER BY l.fecha DESC, l.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.SystemLog
	for rows.Next() {
		var l entity.SystemLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.UserName, &l.Module, &l.Action,
			&l.Details, &l.IPAddress, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
