package postgres

import (
	"context"
	"fmt"

	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo correlativos de documentos sobre PostgreSQL.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de correlativos.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente correlativo para (tipo, año). El upsert con
// RETURNING es atómico: bajo concurrencia cada transacción recibe un valor
// distinto y la numeración nunca se repite.
func (r *SequenceRepo) Next(docType string, year int) (int64, error) {
	query := `
		INSERT INTO secuencias_documento (tipo, anio, valor)
		VALUES ($1, $2, 1)
		ON CONFLICT (tipo, anio) DO UPDATE SET valor = secuencias_documento.valor + 1
		RETURNING valor`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, docType, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("next correlativo %s-%d: %w", docType, year, err)
	}
	return value, nil
}
