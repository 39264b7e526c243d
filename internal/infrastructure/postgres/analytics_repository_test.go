package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier captura el SQL emitido sin tocar una base real.
type recordingQuerier struct{ sql []string }

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = append(q.sql, sql)
	return emptyRows{}, nil
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return noopRow{}
}

type noopRow struct{}

func (noopRow) Scan(...any) error { return nil }

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// El umbral de stock bajo es estricto: un ítem exactamente en su mínimo
// no cuenta, ni en el KPI del panel ni en los listados de reposición.
func TestStockBajo_UmbralEstricto(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewAnalyticsRepository(q)

	_, err := repo.GetDashboardKPIs(context.Background())
	require.NoError(t, err)
	_, err = repo.GetLowStockProducts(context.Background())
	require.NoError(t, err)
	_, err = repo.GetLowStockRawMaterials(context.Background())
	require.NoError(t, err)

	require.Len(t, q.sql, 3)
	for _, sql := range q.sql {
		assert.Contains(t, sql, "stock_actual < stock_minimo")
		assert.NotContains(t, sql, "stock_actual <= stock_minimo")
	}
}
