package registry

import (
	"context"
	"fmt"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

// TxRunner ejecuta fn dentro de una transacción con los repos atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// auditor escribe en la bitácora best-effort: las operaciones de registros
// maestros auditan después de confirmar y un fallo solo se loguea.
type auditor struct {
	logs repository.SystemLogRepository
	log  *logger.Logger
}

// pageToken distingue páginas en las claves de caché de listados.
func pageToken(p dto.PageRequest) string {
	return fmt.Sprintf("%d:%d", p.Limit, p.Offset)
}

func (a auditor) record(userID int64, module, action, details string) {
	err := a.logs.Append(&entity.SystemLog{
		UserID:  userID,
		Module:  module,
		Action:  action,
		Details: details,
	})
	if err != nil {
		a.log.Warn().Err(err).Str("accion", action).Msg("bitacora: no se pudo registrar")
	}
}
