package repository

import (
	"context"
	"time"

	"github.com/profitzen/analytics-api/internal/domain/entity"
)

// DailySummaryRepository persistencia de los rollups diarios por tienda.
// La regeneración es delete + insert dentro de una transacción: el runner
// de rollups pasa implementaciones atadas a la tx.
type DailySummaryRepository interface {
	DeleteByStore(ctx context.Context, tenantID, storeID string) error
	BulkInsert(ctx context.Context, summaries []entity.DailySalesSummary) error
	// ListByRange resúmenes de la tienda con Date en [from, to), ascendente.
	ListByRange(ctx context.Context, tenantID, storeID string, from, to time.Time) ([]entity.DailySalesSummary, error)
}

// ProductPerformanceRepository persistencia del desempeño histórico por
// producto. El alcance es por tenant, no por tienda.
type ProductPerformanceRepository interface {
	DeleteByTenant(ctx context.Context, tenantID string) error
	BulkInsert(ctx context.Context, rows []entity.ProductPerformance) error
	ListByTenant(ctx context.Context, tenantID string) ([]entity.ProductPerformance, error)
	// ListTop los `limit` productos con mayor TotalRevenue del tenant.
	ListTop(ctx context.Context, tenantID string, limit int) ([]entity.ProductPerformance, error)
}
