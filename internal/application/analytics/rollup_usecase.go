package analytics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
	"github.com/profitzen/analytics-api/pkg/logger"
)

// RollupTxRunner ejecuta la regeneración dentro de una transacción de BD,
// pasando repositorios atados a esa tx. La implementación toma además un
// advisory lock por tenant para serializar regeneraciones entre
// instancias del servicio.
type RollupTxRunner interface {
	Run(ctx context.Context, tenantID, storeID string, fn func(
		salesRepo repository.SalesLedgerRepository,
		summaryRepo repository.DailySummaryRepository,
		perfRepo repository.ProductPerformanceRepository,
	) error) error
}

// RollupUseCase regenera los rollups diarios y el desempeño por producto.
//
// La regeneración es destructiva (delete + insert) y corre completa dentro
// de una transacción: los lectores nunca ven el estado intermedio. La
// serialización es por TENANT, no por tienda: el desempeño por producto se
// reemplaza completo a nivel tenant, y dos tiendas regenerando a la vez con
// locks distintos dejarían filas duplicadas por producto. Un mutex por
// tenant evita que dos llamadas concurrentes en el mismo proceso compitan
// por el advisory lock de la BD.
type RollupUseCase struct {
	runner  RollupTxRunner
	offsets OffsetResolver
	log     *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRollupUseCase construye el caso de uso.
func NewRollupUseCase(runner RollupTxRunner, offsets OffsetResolver, log *logger.Logger) *RollupUseCase {
	return &RollupUseCase{
		runner:  runner,
		offsets: offsets,
		log:     log,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (uc *RollupUseCase) lockFor(tenantID string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if m, ok := uc.locks[tenantID]; ok {
		return m
	}
	m := &sync.Mutex{}
	uc.locks[tenantID] = m
	return m
}

// GenerateSummaries recalcula desde cero los resúmenes diarios de la tienda
// y el desempeño histórico por producto del tenant, leyendo y escribiendo en
// la misma transacción. Idempotente: dos corridas seguidas sobre el mismo
// ledger producen filas equivalentes.
func (uc *RollupUseCase) GenerateSummaries(
	ctx context.Context,
	tenantID, storeID string,
	now time.Time,
) (*dto.GenerateSummariesResponse, error) {
	lock := uc.lockFor(tenantID)
	lock.Lock()
	defer lock.Unlock()

	offset := uc.offsets.OffsetFor(tenantID)
	started := time.Now()

	var days, products int
	err := uc.runner.Run(ctx, tenantID, storeID, func(
		salesRepo repository.SalesLedgerRepository,
		summaryRepo repository.DailySummaryRepository,
		perfRepo repository.ProductPerformanceRepository,
	) error {
		dailyAggs, err := salesRepo.GetDailySaleAggregates(ctx, tenantID, storeID, offset)
		if err != nil {
			return fmt.Errorf("agregados diarios: %w", err)
		}
		productAggs, err := salesRepo.GetProductSaleAggregates(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("agregados por producto: %w", err)
		}

		summaries := buildDailySummaries(tenantID, storeID, dailyAggs, offset, now)
		performance := buildProductPerformance(tenantID, productAggs, now)

		if err := summaryRepo.DeleteByStore(ctx, tenantID, storeID); err != nil {
			return fmt.Errorf("borrar resúmenes: %w", err)
		}
		if err := summaryRepo.BulkInsert(ctx, summaries); err != nil {
			return fmt.Errorf("insertar resúmenes: %w", err)
		}
		if err := perfRepo.DeleteByTenant(ctx, tenantID); err != nil {
			return fmt.Errorf("borrar desempeño: %w", err)
		}
		if err := perfRepo.BulkInsert(ctx, performance); err != nil {
			return fmt.Errorf("insertar desempeño: %w", err)
		}

		days = len(summaries)
		products = len(performance)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("regenerar resúmenes: %w", err)
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("store_id", storeID).
		Int("days", days).
		Int("products", products).
		Dur("elapsed", time.Since(started)).
		Msg("resúmenes regenerados")

	return &dto.GenerateSummariesResponse{
		DaysGenerated:     days,
		ProductsGenerated: products,
		Message:           fmt.Sprintf("Se generaron %d resúmenes diarios y %d registros de desempeño", days, products),
	}, nil
}

// buildDailySummaries convierte los agregados por día local en entidades.
// El Day del agregado es la fecha local como medianoche UTC; el Date de la
// entidad es el instante UTC en que ese día local comenzó.
func buildDailySummaries(
	tenantID, storeID string,
	aggs []repository.DailySaleAggregate,
	offsetMinutes int,
	now time.Time,
) []entity.DailySalesSummary {
	out := make([]entity.DailySalesSummary, 0, len(aggs))
	for _, a := range aggs {
		date := a.Day.Add(-time.Duration(offsetMinutes) * time.Minute)
		s := entity.NewDailySalesSummary(
			uuid.NewString(),
			tenantID, storeID,
			date,
			a.SalesCount, a.Revenue, a.Cost, a.Items, a.Customers,
			now,
		)
		out = append(out, s)
	}
	return out
}

// buildProductPerformance convierte los agregados históricos por producto.
func buildProductPerformance(
	tenantID string,
	aggs []repository.ProductSaleAggregate,
	now time.Time,
) []entity.ProductPerformance {
	out := make([]entity.ProductPerformance, 0, len(aggs))
	for _, a := range aggs {
		p := entity.NewProductPerformance(
			uuid.NewString(),
			tenantID,
			a.ProductID, a.ProductCode, a.ProductName,
			a.Sold, a.Revenue, a.Cost,
			a.LastSaleDate,
			now,
		)
		out = append(out, p)
	}
	return out
}
