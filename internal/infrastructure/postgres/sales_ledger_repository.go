package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
	"github.com/profitzen/analytics-api/internal/domain/timewindow"
)

var _ repository.SalesLedgerRepository = (*SalesLedgerRepo)(nil)

// SalesLedgerRepo consultas de solo lectura sobre las tablas del ledger de
// ventas (sales, sale_items). Todas las consultas filtran por
// entity.SaleCompleted y acotan el histórico con el piso de la ventana.
// El costo unitario sale siempre del catálogo (products.cost), nunca de la
// línea de venta.
type SalesLedgerRepo struct {
	q Querier
}

// NewSalesLedgerRepository construye el adaptador sobre un pool o una tx.
func NewSalesLedgerRepository(q Querier) *SalesLedgerRepo {
	return &SalesLedgerRepo{q: q}
}

// GetDashboardMetrics bucketiza todas las ventas del último año en un solo
// paso con cláusulas FILTER sobre los cortes de la ventana, en vez de una
// consulta por período.
func (r *SalesLedgerRepo) GetDashboardMetrics(
	ctx context.Context,
	tenantID, storeID string,
	win timewindow.Window,
) (repository.DashboardMetrics, error) {
	const query = `
	SELECT
	    COALESCE(SUM(total) FILTER (WHERE sale_date >= $3 AND sale_date < $4), 0) AS today_revenue,
	    COUNT(*)            FILTER (WHERE sale_date >= $3 AND sale_date < $4)     AS today_sales,
	    COALESCE(SUM(total) FILTER (WHERE sale_date >= $5 AND sale_date < $3), 0) AS yesterday_revenue,
	    COUNT(*)            FILTER (WHERE sale_date >= $5 AND sale_date < $3)     AS yesterday_sales,
	    COALESCE(SUM(total) FILTER (WHERE sale_date >= $6 AND sale_date < $4), 0) AS week_revenue,
	    COALESCE(SUM(total) FILTER (WHERE sale_date >= $7 AND sale_date < $6), 0) AS last_week_revenue,
	    COALESCE(SUM(total) FILTER (WHERE sale_date >= $8 AND sale_date < $4), 0) AS month_revenue,
	    COUNT(*)            FILTER (WHERE sale_date >= $8 AND sale_date < $4)     AS month_sales,
	    COALESCE(SUM(total) FILTER (WHERE sale_date >= $9 AND sale_date < $8), 0) AS last_month_revenue,
	    COUNT(*)            FILTER (WHERE sale_date >= $9 AND sale_date < $8)     AS last_month_sales
	FROM sales
	WHERE tenant_id = $1
	  AND store_id  = $2
	  AND status    = $11
	  AND sale_date >= $10`

	var m repository.DashboardMetrics
	err := r.q.QueryRow(ctx, query,
		tenantID, storeID,
		win.TodayStart, win.TomorrowStart,
		win.YesterdayStart,
		win.WeekStart, win.LastWeekStart,
		win.MonthStart, win.LastMonthStart,
		win.LookbackFloor,
		entity.SaleCompleted,
	).Scan(
		&m.TodayRevenue, &m.TodaySales,
		&m.YesterdayRevenue, &m.YesterdaySales,
		&m.WeekRevenue, &m.LastWeekRevenue,
		&m.MonthRevenue, &m.MonthSales,
		&m.LastMonthRevenue, &m.LastMonthSales,
	)
	if err != nil {
		return repository.DashboardMetrics{}, fmt.Errorf("sales.GetDashboardMetrics: %w", err)
	}
	return m, nil
}

// GetDailySalesSeries agrupa por día calendario local; el offset desplaza los
// timestamps UTC antes del corte por DATE.
func (r *SalesLedgerRepo) GetDailySalesSeries(
	ctx context.Context,
	tenantID, storeID string,
	from time.Time,
	offsetMinutes int,
) ([]repository.DailySalesPoint, error) {
	const query = `
	SELECT
	    DATE(sale_date + make_interval(mins => $4)) AS day,
	    COUNT(*)                                    AS sales_count,
	    COALESCE(SUM(total), 0)                     AS revenue
	FROM sales
	WHERE tenant_id = $1
	  AND store_id  = $2
	  AND status    = $5
	  AND sale_date >= $3
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, tenantID, storeID, from, offsetMinutes, entity.SaleCompleted)
	if err != nil {
		return nil, fmt.Errorf("sales.GetDailySalesSeries: %w", err)
	}
	defer rows.Close()

	var points []repository.DailySalesPoint
	for rows.Next() {
		var p repository.DailySalesPoint
		if err := rows.Scan(&p.Day, &p.SalesCount, &p.Revenue); err != nil {
			return nil, fmt.Errorf("sales.GetDailySalesSeries scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// GetTopProducts los `limit` productos con mayor ingreso desde `from`.
func (r *SalesLedgerRepo) GetTopProducts(
	ctx context.Context,
	tenantID, storeID string,
	from time.Time,
	limit int,
) ([]repository.TopProductRow, error) {
	const query = `
	SELECT
	    d.product_id,
	    p.code,
	    p.name,
	    SUM(d.quantity)              AS quantity_sold,
	    COALESCE(SUM(d.subtotal), 0) AS revenue
	FROM sale_items d
	JOIN sales    s ON s.id = d.sale_id
	JOIN products p ON p.id = d.product_id
	WHERE s.tenant_id = $1
	  AND s.store_id  = $2
	  AND s.status    = $5
	  AND s.sale_date >= $3
	GROUP BY d.product_id, p.code, p.name
	ORDER BY revenue DESC
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, tenantID, storeID, from, limit, entity.SaleCompleted)
	if err != nil {
		return nil, fmt.Errorf("sales.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductRow
	for rows.Next() {
		var t repository.TopProductRow
		if err := rows.Scan(&t.ProductID, &t.ProductCode, &t.ProductName, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("sales.GetTopProducts scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetSalesByPaymentMethod agrupa los ingresos por medio de pago desde `from`.
func (r *SalesLedgerRepo) GetSalesByPaymentMethod(
	ctx context.Context,
	tenantID, storeID string,
	from time.Time,
) ([]repository.PaymentMethodTotal, error) {
	const query = `
	SELECT
	    payment_method,
	    COUNT(*)                AS sales_count,
	    COALESCE(SUM(total), 0) AS amount
	FROM sales
	WHERE tenant_id = $1
	  AND store_id  = $2
	  AND status    = $4
	  AND sale_date >= $3
	GROUP BY payment_method
	ORDER BY amount DESC`

	rows, err := r.q.Query(ctx, query, tenantID, storeID, from, entity.SaleCompleted)
	if err != nil {
		return nil, fmt.Errorf("sales.GetSalesByPaymentMethod: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentMethodTotal
	for rows.Next() {
		var t repository.PaymentMethodTotal
		if err := rows.Scan(&t.Method, &t.SalesCount, &t.Amount); err != nil {
			return nil, fmt.Errorf("sales.GetSalesByPaymentMethod scan: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetDailySaleAggregates agrega todas las ventas Completed por día calendario
// local. El costo y las unidades salen de un subquery por venta para no
// duplicar el total con el join de líneas; el ledger no enlaza clientes en
// esta ruta, así que customers cuenta ventas distintas.
func (r *SalesLedgerRepo) GetDailySaleAggregates(
	ctx context.Context,
	tenantID, storeID string,
	offsetMinutes int,
) ([]repository.DailySaleAggregate, error) {
	const query = `
	SELECT
	    DATE(s.sale_date + make_interval(mins => $3)) AS day,
	    COUNT(*)                                      AS sales_count,
	    COALESCE(SUM(s.total), 0)                     AS revenue,
	    COALESCE(SUM(li.cost), 0)                     AS cost,
	    COALESCE(SUM(li.items), 0)                    AS items,
	    COUNT(DISTINCT s.id)                          AS customers
	FROM sales s
	LEFT JOIN (
	    SELECT d.sale_id,
	           SUM(d.quantity * p.cost) AS cost,
	           SUM(d.quantity)          AS items
	    FROM sale_items d
	    JOIN products p ON p.id = d.product_id
	    GROUP BY d.sale_id
	) li ON li.sale_id = s.id
	WHERE s.tenant_id = $1
	  AND s.store_id  = $2
	  AND s.status    = $4
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, tenantID, storeID, offsetMinutes, entity.SaleCompleted)
	if err != nil {
		return nil, fmt.Errorf("sales.GetDailySaleAggregates: %w", err)
	}
	defer rows.Close()

	var out []repository.DailySaleAggregate
	for rows.Next() {
		var a repository.DailySaleAggregate
		if err := rows.Scan(&a.Day, &a.SalesCount, &a.Revenue, &a.Cost, &a.Items, &a.Customers); err != nil {
			return nil, fmt.Errorf("sales.GetDailySaleAggregates scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetProductSaleAggregates agregados históricos por producto del tenant,
// todas las tiendas incluidas.
func (r *SalesLedgerRepo) GetProductSaleAggregates(
	ctx context.Context,
	tenantID string,
) ([]repository.ProductSaleAggregate, error) {
	const query = `
	SELECT
	    d.product_id,
	    p.code,
	    p.name,
	    SUM(d.quantity)                        AS sold,
	    COALESCE(SUM(d.subtotal), 0)           AS revenue,
	    COALESCE(SUM(d.quantity * p.cost), 0)  AS cost,
	    MAX(s.sale_date)                       AS last_sale_date
	FROM sale_items d
	JOIN sales    s ON s.id = d.sale_id
	JOIN products p ON p.id = d.product_id
	WHERE s.tenant_id = $1
	  AND s.status    = $2
	GROUP BY d.product_id, p.code, p.name`

	rows, err := r.q.Query(ctx, query, tenantID, entity.SaleCompleted)
	if err != nil {
		return nil, fmt.Errorf("sales.GetProductSaleAggregates: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductSaleAggregate
	for rows.Next() {
		var a repository.ProductSaleAggregate
		if err := rows.Scan(&a.ProductID, &a.ProductCode, &a.ProductName, &a.Sold, &a.Revenue, &a.Cost, &a.LastSaleDate); err != nil {
			return nil, fmt.Errorf("sales.GetProductSaleAggregates scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
