package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
	"github.com/profitzen/analytics-api/internal/domain/timewindow"
	"github.com/profitzen/analytics-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

type fakeOffsets struct{ offset int }

func (f fakeOffsets) OffsetFor(string) int { return f.offset }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// fakeSalesLedger devuelve datos fijos por método.
type fakeSalesLedger struct {
	metrics     repository.DashboardMetrics
	metricsErr  error
	series      []repository.DailySalesPoint
	seriesErr   error
	top         []repository.TopProductRow
	topErr      error
	payments    []repository.PaymentMethodTotal
	paymentsErr error
	dailyAggs   []repository.DailySaleAggregate
	productAggs []repository.ProductSaleAggregate
	aggsErr     error
}

func (f *fakeSalesLedger) GetDashboardMetrics(context.Context, string, string, timewindow.Window) (repository.DashboardMetrics, error) {
	return f.metrics, f.metricsErr
}

func (f *fakeSalesLedger) GetDailySalesSeries(context.Context, string, string, time.Time, int) ([]repository.DailySalesPoint, error) {
	return f.series, f.seriesErr
}

func (f *fakeSalesLedger) GetTopProducts(context.Context, string, string, time.Time, int) ([]repository.TopProductRow, error) {
	return f.top, f.topErr
}

func (f *fakeSalesLedger) GetSalesByPaymentMethod(context.Context, string, string, time.Time) ([]repository.PaymentMethodTotal, error) {
	return f.payments, f.paymentsErr
}

func (f *fakeSalesLedger) GetDailySaleAggregates(context.Context, string, string, int) ([]repository.DailySaleAggregate, error) {
	return f.dailyAggs, f.aggsErr
}

func (f *fakeSalesLedger) GetProductSaleAggregates(context.Context, string) ([]repository.ProductSaleAggregate, error) {
	return f.productAggs, f.aggsErr
}

// fakeInventory lista fija de stock bajo.
type fakeInventory struct {
	lowStock []entity.StoreInventoryLevel
	err      error
}

func (f *fakeInventory) GetLowStock(context.Context, string, string) ([]entity.StoreInventoryLevel, error) {
	return f.lowStock, f.err
}

func (f *fakeInventory) ListByStore(context.Context, string, string) ([]entity.StoreInventoryLevel, error) {
	return f.lowStock, f.err
}

// memSummaryRepo repositorio de resúmenes en memoria.
type memSummaryRepo struct {
	rows      []entity.DailySalesSummary
	insertErr error
}

func (m *memSummaryRepo) DeleteByStore(_ context.Context, tenantID, storeID string) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.TenantID != tenantID || r.StoreID != storeID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *memSummaryRepo) BulkInsert(_ context.Context, summaries []entity.DailySalesSummary) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, summaries...)
	return nil
}

func (m *memSummaryRepo) ListByRange(_ context.Context, tenantID, storeID string, from, to time.Time) ([]entity.DailySalesSummary, error) {
	out := make([]entity.DailySalesSummary, 0)
	for _, r := range m.rows {
		if r.TenantID == tenantID && r.StoreID == storeID &&
			!r.Date.Before(from) && r.Date.Before(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// memPerfRepo repositorio de desempeño en memoria.
type memPerfRepo struct {
	rows      []entity.ProductPerformance
	insertErr error
}

func (m *memPerfRepo) DeleteByTenant(_ context.Context, tenantID string) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.TenantID != tenantID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *memPerfRepo) BulkInsert(_ context.Context, rows []entity.ProductPerformance) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *memPerfRepo) ListByTenant(_ context.Context, tenantID string) ([]entity.ProductPerformance, error) {
	out := make([]entity.ProductPerformance, 0)
	for _, r := range m.rows {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memPerfRepo) ListTop(_ context.Context, tenantID string, limit int) ([]entity.ProductPerformance, error) {
	rows, _ := m.ListByTenant(context.Background(), tenantID)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TotalRevenue.GreaterThan(rows[j].TotalRevenue)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// fakeRunner simula la transacción: si el callback falla, restaura el estado
// previo de los repos (rollback).
type fakeRunner struct {
	sales   *fakeSalesLedger
	summary *memSummaryRepo
	perf    *memPerfRepo
}

func (r *fakeRunner) Run(ctx context.Context, _, _ string, fn func(
	salesRepo repository.SalesLedgerRepository,
	summaryRepo repository.DailySummaryRepository,
	perfRepo repository.ProductPerformanceRepository,
) error) error {
	summarySnap := append([]entity.DailySalesSummary(nil), r.summary.rows...)
	perfSnap := append([]entity.ProductPerformance(nil), r.perf.rows...)

	if err := fn(r.sales, r.summary, r.perf); err != nil {
		r.summary.rows = summarySnap
		r.perf.rows = perfSnap
		return err
	}
	return nil
}
