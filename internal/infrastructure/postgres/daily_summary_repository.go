package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

var _ repository.DailySummaryRepository = (*DailySummaryRepo)(nil)

// DailySummaryRepo persistencia de los rollups diarios en daily_sales_summaries.
type DailySummaryRepo struct {
	q Querier
}

// NewDailySummaryRepository construye el adaptador sobre un pool o una tx.
func NewDailySummaryRepository(q Querier) *DailySummaryRepo {
	return &DailySummaryRepo{q: q}
}

// DeleteByStore borra todos los rollups de la tienda. Se usa junto con
// BulkInsert dentro de la misma transacción de regeneración.
func (r *DailySummaryRepo) DeleteByStore(ctx context.Context, tenantID, storeID string) error {
	const query = `DELETE FROM daily_sales_summaries WHERE tenant_id = $1 AND store_id = $2`
	if _, err := r.q.Exec(ctx, query, tenantID, storeID); err != nil {
		return fmt.Errorf("summaries.DeleteByStore: %w", err)
	}
	return nil
}

// BulkInsert inserta los rollups en lote con pgx.Batch.
func (r *DailySummaryRepo) BulkInsert(ctx context.Context, summaries []entity.DailySalesSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	const query = `
	INSERT INTO daily_sales_summaries (
	    id, tenant_id, store_id, date,
	    total_sales, total_revenue, total_cost, total_profit,
	    average_ticket, total_items, total_customers, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	batch := &pgx.Batch{}
	for _, s := range summaries {
		batch.Queue(query,
			s.ID, s.TenantID, s.StoreID, s.Date,
			s.TotalSales, s.TotalRevenue, s.TotalCost, s.TotalProfit,
			s.AverageTicket, s.TotalItems, s.TotalCustomers, s.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	for range summaries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("summaries.BulkInsert: %w", err)
		}
	}
	return nil
}

// ListByRange rollups de la tienda con date en [from, to), ascendente.
func (r *DailySummaryRepo) ListByRange(
	ctx context.Context,
	tenantID, storeID string,
	from, to time.Time,
) ([]entity.DailySalesSummary, error) {
	const query = `
	SELECT id, tenant_id, store_id, date,
	       total_sales, total_revenue, total_cost, total_profit,
	       average_ticket, total_items, total_customers, created_at
	FROM daily_sales_summaries
	WHERE tenant_id = $1
	  AND store_id  = $2
	  AND date >= $3
	  AND date <  $4
	ORDER BY date`

	rows, err := r.q.Query(ctx, query, tenantID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("summaries.ListByRange: %w", err)
	}
	defer rows.Close()

	var out []entity.DailySalesSummary
	for rows.Next() {
		var s entity.DailySalesSummary
		if err := rows.Scan(
			&s.ID, &s.TenantID, &s.StoreID, &s.Date,
			&s.TotalSales, &s.TotalRevenue, &s.TotalCost, &s.TotalProfit,
			&s.AverageTicket, &s.TotalItems, &s.TotalCustomers, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("summaries.ListByRange scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
