// Package documents casos de uso de creación de documentos comerciales:
// órdenes de compra, ventas y órdenes de producción. Cada creación es una
// transacción única: numeración, cabecera, detalles, efectos de stock y
// bitácora se confirman o revierten juntos.
package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

// Tipos de documento para la numeración correlativa.
const (
	DocTypePurchase   = "OC"
	DocTypeSale       = "FAC"
	DocTypeProduction = "OP"
)

// TxRunner ejecuta fn dentro de una transacción con los repos atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx repository.Tx) error) error
}

// pageToken distingue páginas en las claves de caché de listados.
func pageToken(p dto.PageRequest) string {
	return fmt.Sprintf("%d:%d", p.Limit, p.Offset)
}

// nextNumber asigna el correlativo {TIPO}-{año}-{0000} dentro de la
// transacción. El contador es atómico, así que dos documentos concurrentes
// del mismo tipo y año nunca comparten número.
func nextNumber(seq repository.SequenceRepository, docType string, now time.Time) (string, error) {
	year := now.Year()
	n, err := seq.Next(docType, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%04d", docType, year, n), nil
}
