package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

var _ repository.ProductPerformanceRepository = (*ProductPerformanceRepo)(nil)

// ProductPerformanceRepo persistencia del rollup por producto en product_performance.
type ProductPerformanceRepo struct {
	q Querier
}

// NewProductPerformanceRepository construye el adaptador sobre un pool o una tx.
func NewProductPerformanceRepository(q Querier) *ProductPerformanceRepo {
	return &ProductPerformanceRepo{q: q}
}

func (r *ProductPerformanceRepo) DeleteByTenant(ctx context.Context, tenantID string) error {
	const query = `DELETE FROM product_performance WHERE tenant_id = $1`
	if _, err := r.q.Exec(ctx, query, tenantID); err != nil {
		return fmt.Errorf("performance.DeleteByTenant: %w", err)
	}
	return nil
}

func (r *ProductPerformanceRepo) BulkInsert(ctx context.Context, rows []entity.ProductPerformance) error {
	if len(rows) == 0 {
		return nil
	}
	const query = `
	INSERT INTO product_performance (
	    id, tenant_id, product_id, product_code, product_name,
	    total_sold, total_revenue, total_cost, total_profit,
	    last_sale_date, days_since_last_sale, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	batch := &pgx.Batch{}
	for _, p := range rows {
		batch.Queue(query,
			p.ID, p.TenantID, p.ProductID, p.ProductCode, p.ProductName,
			p.TotalSold, p.TotalRevenue, p.TotalCost, p.TotalProfit,
			p.LastSaleDate, p.DaysSinceLastSale, p.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	for range rows {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("performance.BulkInsert: %w", err)
		}
	}
	return nil
}

func (r *ProductPerformanceRepo) ListByTenant(ctx context.Context, tenantID string) ([]entity.ProductPerformance, error) {
	const query = performanceSelect + `
	WHERE tenant_id = $1
	ORDER BY total_revenue DESC`
	return r.list(ctx, query, tenantID)
}

func (r *ProductPerformanceRepo) ListTop(ctx context.Context, tenantID string, limit int) ([]entity.ProductPerformance, error) {
	const query = performanceSelect + `
	WHERE tenant_id = $1
	ORDER BY total_revenue DESC
	LIMIT $2`
	return r.list(ctx, query, tenantID, limit)
}

const performanceSelect = `
	SELECT id, tenant_id, product_id, product_code, product_name,
	       total_sold, total_revenue, total_cost, total_profit,
	       last_sale_date, days_since_last_sale, created_at
	FROM product_performance`

func (r *ProductPerformanceRepo) list(ctx context.Context, query string, args ...any) ([]entity.ProductPerformance, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("performance.list: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductPerformance
	for rows.Next() {
		var p entity.ProductPerformance
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.ProductID, &p.ProductCode, &p.ProductName,
			&p.TotalSold, &p.TotalRevenue, &p.TotalCost, &p.TotalProfit,
			&p.LastSaleDate, &p.DaysSinceLastSale, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("performance.list scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
