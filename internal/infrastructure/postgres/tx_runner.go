package postgres

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profitzen/analytics-api/internal/application/analytics"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

var _ analytics.RollupTxRunner = (*RollupTxRunner)(nil)

// RollupTxRunner ejecuta la regeneración de rollups dentro de una transacción
// PostgreSQL serializada por TENANT con pg_advisory_xact_lock: la corrida
// reemplaza la tabla de desempeño completa del tenant, así que dos tiendas
// del mismo tenant tampoco pueden regenerar a la vez. El lock se libera solo
// con el commit o rollback.
type RollupTxRunner struct {
	pool *pgxpool.Pool
}

// NewRollupTxRunner construye el runner con el pool.
func NewRollupTxRunner(pool *pgxpool.Pool) *RollupTxRunner {
	return &RollupTxRunner{pool: pool}
}

// Run inicia la transacción, toma el advisory lock y ejecuta fn con repos
// atados a la tx; las lecturas del ledger y las escrituras de rollups ven el
// mismo snapshot.
func (r *RollupTxRunner) Run(ctx context.Context, tenantID, storeID string, fn func(
	salesRepo repository.SalesLedgerRepository,
	summaryRepo repository.DailySummaryRepository,
	perfRepo repository.ProductPerformanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(tenantID)); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}

	salesRepo := NewSalesLedgerRepository(tx)
	summaryRepo := NewDailySummaryRepository(tx)
	perfRepo := NewProductPerformanceRepository(tx)

	if err := fn(salesRepo, summaryRepo, perfRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// advisoryLockKey deriva una clave estable de 64 bits para el tenant.
func advisoryLockKey(tenantID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(tenantID))
	return int64(h.Sum64())
}
