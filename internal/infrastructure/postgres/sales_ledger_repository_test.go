package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitzen/analytics-api/internal/domain/entity"
)

// recordingQuerier captura el SQL y los argumentos de la última consulta y
// devuelve resultados vacíos.
type recordingQuerier struct {
	sql  string
	args []any
}

func (r *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return pgconn.CommandTag{}, nil
}

func (r *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql, r.args = sql, args
	return emptyRows{}, nil
}

func (r *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.sql, r.args = sql, args
	return emptyRow{}
}

func (r *recordingQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

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

type emptyRow struct{}

func (emptyRow) Scan(...any) error { return nil }

// El agregado diario cuenta ventas distintas como clientes y toma el costo del
// catálogo de productos, no del precio de compra capturado en la línea.
func TestGetDailySaleAggregates_ClientesYCostoDelCatalogo(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewSalesLedgerRepository(q)

	_, err := repo.GetDailySaleAggregates(context.Background(), "t1", "s1", -300)
	require.NoError(t, err)

	assert.Contains(t, q.sql, "COUNT(DISTINCT s.id)")
	assert.Contains(t, q.sql, "d.quantity * p.cost")
	assert.NotContains(t, q.sql, "unit_cost")
	assert.Contains(t, q.args, entity.SaleCompleted)
}

func TestGetProductSaleAggregates_CostoDelCatalogo(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewSalesLedgerRepository(q)

	_, err := repo.GetProductSaleAggregates(context.Background(), "t1")
	require.NoError(t, err)

	assert.Contains(t, q.sql, "d.quantity * p.cost")
	assert.NotContains(t, q.sql, "unit_cost")
	assert.Contains(t, q.args, entity.SaleCompleted)
}

// Todas las rutas del ledger filtran por estado como parámetro, nunca con el
// valor numérico embebido en el SQL.
func TestSalesLedger_EstadoComoParametro(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewSalesLedgerRepository(q)
	ctx := context.Background()

	_, err := repo.GetSalesByPaymentMethod(ctx, "t1", "s1", time.Time{})
	require.NoError(t, err)
	assert.NotContains(t, q.sql, "status = 2")
	assert.Contains(t, q.args, entity.SaleCompleted)
}
