package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/application/ports"
	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
	"github.com/profitzen/analytics-api/pkg/logger"
)

const (
	deadStockDays    = 30 // días sin venta para considerar stock muerto
	narrativeTimeout = 30 * time.Second
)

// InsightUseCase genera el informe de insights de inventario: riesgo de
// quiebre, plan de compras sugerido, stock muerto y un resumen narrativo.
//
// La tasa diaria del forecaster y el escáner de stock muerto leen el mismo
// rollup de desempeño por producto; el informe refleja la última
// regeneración, no el ledger crudo.
//
// La narrativa se pide al LLM con timeout propio; si falla por cualquier
// motivo el informe sale igual con un resumen determinístico. El LLM nunca
// bloquea la entrega del informe.
type InsightUseCase struct {
	perfRepo      repository.ProductPerformanceRepository
	inventoryRepo repository.StoreInventoryRepository
	llm           ports.LLMService
	log           *logger.Logger
}

// NewInsightUseCase construye el caso de uso.
func NewInsightUseCase(
	perfRepo repository.ProductPerformanceRepository,
	inventoryRepo repository.StoreInventoryRepository,
	llm ports.LLMService,
	log *logger.Logger,
) *InsightUseCase {
	return &InsightUseCase{
		perfRepo:      perfRepo,
		inventoryRepo: inventoryRepo,
		llm:           llm,
		log:           log,
	}
}

// GetInventoryInsights arma el informe completo para la tienda en el
// instante now.
func (uc *InsightUseCase) GetInventoryInsights(
	ctx context.Context,
	tenantID, storeID string,
	now time.Time,
) (*dto.InventoryInsightReportDTO, error) {
	type levelsResult struct {
		levels []entity.StoreInventoryLevel
		err    error
	}
	type perfResult struct {
		rows []entity.ProductPerformance
		err  error
	}

	levelsCh := make(chan levelsResult, 1)
	perfCh := make(chan perfResult, 1)

	go func() {
		levels, err := uc.inventoryRepo.ListByStore(ctx, tenantID, storeID)
		levelsCh <- levelsResult{levels, err}
	}()
	go func() {
		rows, err := uc.perfRepo.ListByTenant(ctx, tenantID)
		perfCh <- perfResult{rows, err}
	}()

	levels := <-levelsCh
	perf := <-perfCh

	if levels.err != nil {
		return nil, fmt.Errorf("insights: niveles de stock: %w", levels.err)
	}
	if perf.err != nil {
		return nil, fmt.Errorf("insights: desempeño de productos: %w", perf.err)
	}

	// Vendido histórico por producto; el forecaster lo amortiza a tasa diaria.
	soldByProduct := make(map[string]decimal.Decimal, len(perf.rows))
	for _, p := range perf.rows {
		soldByProduct[p.ProductID] = p.TotalSold
	}

	risks := assessRisk(levels.levels, soldByProduct)
	purchases, investment := suggestPurchases(risks)
	riskDTOs := mapRisks(risks)
	deadStock := findDeadStock(perf.rows, levels.levels, now)

	narrative, source := uc.buildNarrative(ctx, tenantID, riskDTOs, purchases, investment)

	return &dto.InventoryInsightReportDTO{
		GeneratedAt:         now.UTC().Format(time.RFC3339),
		RiskAssessments:     riskDTOs,
		SuggestedPurchases:  purchases,
		DeadStock:           deadStock,
		EstimatedInvestment: investment,
		Narrative:           narrative,
		NarrativeSource:     source,
	}, nil
}

func (uc *InsightUseCase) buildNarrative(
	ctx context.Context,
	tenantID string,
	risks []dto.RiskAssessmentDTO,
	purchases []dto.SuggestedPurchaseDTO,
	investment decimal.Decimal,
) (string, string) {
	llmCtx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	narrative, err := uc.llm.GenerateInventoryNarrative(llmCtx, risks, purchases)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("tenant_id", tenantID).
			Msg("insights: narrativa IA no disponible, se usa resumen determinístico")
		return fallbackNarrative(risks, investment), "fallback"
	}
	return narrative, "ai"
}

// fallbackNarrative resumen determinístico usado cuando el LLM falla.
func fallbackNarrative(risks []dto.RiskAssessmentDTO, investment decimal.Decimal) string {
	var critical, high, medium int
	for _, r := range risks {
		switch r.RiskLevel {
		case RiskCritical:
			critical++
		case RiskHigh:
			high++
		case RiskMedium:
			medium++
		}
	}
	if critical+high+medium == 0 {
		return "No se detectaron productos en riesgo de quiebre de stock."
	}
	return fmt.Sprintf(
		"Se detectaron %d productos en riesgo crítico, %d en riesgo alto y %d en riesgo medio. "+
			"La inversión estimada para reponer el inventario es de %s.",
		critical, high, medium, investment.StringFixed(2),
	)
}

func mapRisks(items []riskItem) []dto.RiskAssessmentDTO {
	out := make([]dto.RiskAssessmentDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RiskAssessmentDTO{
			ProductID:     it.Level.ProductID,
			ProductCode:   it.Level.ProductCode,
			ProductName:   it.Level.ProductName,
			CurrentStock:  it.Level.CurrentStock,
			DailySaleRate: it.Rate.Round(4),
			DaysRemaining: it.Days.Round(1),
			RiskLevel:     it.Tier,
		})
	}
	return out
}

// findDeadStock productos con historial de ventas pero sin rotación en los
// últimos 30 días. La recencia se recalcula contra now desde LastSaleDate
// para no depender del envejecimiento del rollup.
func findDeadStock(perf []entity.ProductPerformance, levels []entity.StoreInventoryLevel, now time.Time) []dto.DeadStockItemDTO {
	stockByProduct := make(map[string]int, len(levels))
	for _, l := range levels {
		stockByProduct[l.ProductID] = l.CurrentStock
	}

	out := make([]dto.DeadStockItemDTO, 0)
	for _, p := range perf {
		if !p.TotalSold.GreaterThan(decimal.Zero) {
			continue
		}
		days := int(now.Sub(p.LastSaleDate).Hours() / 24)
		if days <= deadStockDays {
			continue
		}
		out = append(out, dto.DeadStockItemDTO{
			ProductID:         p.ProductID,
			ProductCode:       p.ProductCode,
			ProductName:       p.ProductName,
			CurrentStock:      stockByProduct[p.ProductID],
			DaysSinceLastSale: days,
			TotalSold:         p.TotalSold,
		})
	}
	return out
}
