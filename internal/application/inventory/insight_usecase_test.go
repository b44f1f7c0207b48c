package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	levels []entity.StoreInventoryLevel
	err    error
}

func (f *fakeInventoryRepo) GetLowStock(context.Context, string, string) ([]entity.StoreInventoryLevel, error) {
	out := make([]entity.StoreInventoryLevel, 0)
	for _, l := range f.levels {
		if l.CurrentStock <= l.MinimumStock {
			out = append(out, l)
		}
	}
	return out, f.err
}

func (f *fakeInventoryRepo) ListByStore(context.Context, string, string) ([]entity.StoreInventoryLevel, error) {
	return f.levels, f.err
}

type fakePerfRepo struct {
	rows []entity.ProductPerformance
	err  error
}

func (f *fakePerfRepo) DeleteByTenant(context.Context, string) error { return nil }

func (f *fakePerfRepo) BulkInsert(context.Context, []entity.ProductPerformance) error { return nil }

func (f *fakePerfRepo) ListByTenant(context.Context, string) ([]entity.ProductPerformance, error) {
	return f.rows, f.err
}

func (f *fakePerfRepo) ListTop(context.Context, string, int) ([]entity.ProductPerformance, error) {
	return f.rows, f.err
}

type fakeLLM struct {
	narrative string
	err       error
	called    bool
}

func (f *fakeLLM) GenerateInventoryNarrative(_ context.Context, _ []dto.RiskAssessmentDTO, _ []dto.SuggestedPurchaseDTO) (string, error) {
	f.called = true
	return f.narrative, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func perfRow(productID string, totalSold int64, lastSale time.Time, now time.Time) entity.ProductPerformance {
	return entity.NewProductPerformance(
		"id-"+productID, "t1", productID, "C-"+productID, "Producto "+productID,
		decimal.NewFromInt(totalSold), decimal.NewFromInt(totalSold*10), decimal.NewFromInt(totalSold*6),
		lastSale, now,
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetInventoryInsights_InformeCompleto(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	llm := &fakeLLM{narrative: "Resumen generado por IA."}
	uc := NewInsightUseCase(
		&fakePerfRepo{rows: []entity.ProductPerformance{
			perfRow("muerto", 40, now.AddDate(0, 0, -45), now),
			perfRow("p1", 60, now.AddDate(0, 0, -1), now),
		}},
		&fakeInventoryRepo{levels: []entity.StoreInventoryLevel{
			level("p1", 4, 2, "10.00"),
			level("muerto", 30, 2, "3.00"),
		}},
		llm,
		testLogger(),
	)

	report, err := uc.GetInventoryInsights(context.Background(), "t1", "s1", now)
	require.NoError(t, err)

	// p1: tasa 60/30 = 2/día, 2 días restantes → Critical
	require.Len(t, report.RiskAssessments, 1)
	assert.Equal(t, "p1", report.RiskAssessments[0].ProductID)
	assert.Equal(t, RiskCritical, report.RiskAssessments[0].RiskLevel)

	// plan: round(2*21) - 4 = 38 unidades a 10.00
	require.Len(t, report.SuggestedPurchases, 1)
	assert.Equal(t, 38, report.SuggestedPurchases[0].SuggestedQuantity)
	assert.True(t, report.EstimatedInvestment.Equal(decimal.RequireFromString("380.00")),
		"inversión: %s", report.EstimatedInvestment)

	// stock muerto: vendió alguna vez pero lleva 45 días sin rotar
	require.Len(t, report.DeadStock, 1)
	assert.Equal(t, "muerto", report.DeadStock[0].ProductID)
	assert.Equal(t, 45, report.DeadStock[0].DaysSinceLastSale)
	assert.Equal(t, 30, report.DeadStock[0].CurrentStock)

	assert.True(t, llm.called)
	assert.Equal(t, "Resumen generado por IA.", report.Narrative)
	assert.Equal(t, "ai", report.NarrativeSource)
}

// La tasa diaria sale del acumulado histórico del rollup, no de las ventas de
// las últimas semanas: un producto con mucho historial pero sin ventas
// recientes sigue en riesgo si su stock no cubre la tasa amortizada.
func TestGetInventoryInsights_TasaAmortizadaSobreHistorico(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	uc := NewInsightUseCase(
		&fakePerfRepo{rows: []entity.ProductPerformance{
			perfRow("p1", 300, now.AddDate(0, 0, -45), now),
		}},
		&fakeInventoryRepo{levels: []entity.StoreInventoryLevel{
			level("p1", 5, 10, "4.00"),
		}},
		&fakeLLM{narrative: "ok"},
		testLogger(),
	)

	report, err := uc.GetInventoryInsights(context.Background(), "t1", "s1", now)
	require.NoError(t, err)

	// tasa = 300/30 = 10/día → 0.5 días restantes → Critical
	require.Len(t, report.RiskAssessments, 1)
	risk := report.RiskAssessments[0]
	assert.Equal(t, "p1", risk.ProductID)
	assert.Equal(t, RiskCritical, risk.RiskLevel)
	assert.True(t, risk.DailySaleRate.Equal(decimal.NewFromInt(10)),
		"tasa diaria: %s", risk.DailySaleRate)

	// y a la vez lleva 45 días sin rotar, así que también es stock muerto
	require.Len(t, report.DeadStock, 1)
	assert.Equal(t, "p1", report.DeadStock[0].ProductID)
}

// Si el LLM falla, el informe sale igual con el resumen determinístico.
func TestGetInventoryInsights_FallbackSinLLM(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	uc := NewInsightUseCase(
		&fakePerfRepo{rows: []entity.ProductPerformance{
			perfRow("p1", 30, now.AddDate(0, 0, -1), now),
		}},
		&fakeInventoryRepo{levels: []entity.StoreInventoryLevel{
			level("p1", 2, 0, "5.00"),
		}},
		&fakeLLM{err: errors.New("api caída")},
		testLogger(),
	)

	report, err := uc.GetInventoryInsights(context.Background(), "t1", "s1", now)
	require.NoError(t, err)

	assert.Equal(t, "fallback", report.NarrativeSource)
	assert.Contains(t, report.Narrative, "1 productos en riesgo crítico")
	assert.Contains(t, report.Narrative, "inversión estimada")
}

// Sin riesgos la narrativa de fallback lo dice explícitamente.
func TestFallbackNarrative_SinRiesgos(t *testing.T) {
	got := fallbackNarrative(nil, decimal.Zero)
	assert.Equal(t, "No se detectaron productos en riesgo de quiebre de stock.", got)
}

// Un error de datos sí aborta el informe; la degradación es solo para el LLM.
func TestGetInventoryInsights_ErrorDeDatos(t *testing.T) {
	uc := NewInsightUseCase(
		&fakePerfRepo{err: errors.New("conexión perdida")},
		&fakeInventoryRepo{},
		&fakeLLM{narrative: "no debería llamarse"},
		testLogger(),
	)

	_, err := uc.GetInventoryInsights(context.Background(), "t1", "s1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "desempeño de productos")
}

func TestLowStock_Severidades(t *testing.T) {
	repo := &fakeInventoryRepo{levels: []entity.StoreInventoryLevel{
		level("agotado", 0, 10, "1.00"),
		level("mitad", 5, 10, "1.00"),
		level("justo", 9, 10, "1.00"),
		level("sano", 50, 10, "1.00"),
	}}
	uc := NewLowStockUseCase(repo)

	items, err := uc.GetLowStock(context.Background(), "t1", "s1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	bySeverity := map[string]string{}
	for _, it := range items {
		bySeverity[it.ProductID] = it.Severity
	}
	assert.Equal(t, "critical", bySeverity["agotado"])
	assert.Equal(t, "high", bySeverity["mitad"])
	assert.Equal(t, "medium", bySeverity["justo"])
}
