// Package analytics contiene los casos de uso del dashboard de ventas,
// los reportes sobre rollups diarios y la regeneración de resúmenes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
	"github.com/profitzen/analytics-api/internal/domain/timewindow"
	"github.com/profitzen/analytics-api/pkg/logger"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

var oneHundred = decimal.NewFromInt(100)

// OffsetResolver resuelve el offset horario en minutos de cada tenant.
// config.AnalyticsConfig lo implementa.
type OffsetResolver interface {
	OffsetFor(tenantID string) int
}

// DashboardUseCase genera el resumen comercial del día, la semana y el mes.
//
// Los KPIs y las listas salen del ledger de ventas (consultas read-only);
// la lista de stock bajo sale del inventario y se degrada a vacía si la
// consulta falla, para no tumbar el dashboard completo.
type DashboardUseCase struct {
	salesRepo     repository.SalesLedgerRepository
	inventoryRepo repository.StoreInventoryRepository
	offsets       OffsetResolver
	log           *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	salesRepo repository.SalesLedgerRepository,
	inventoryRepo repository.StoreInventoryRepository,
	offsets OffsetResolver,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		salesRepo:     salesRepo,
		inventoryRepo: inventoryRepo,
		offsets:       offsets,
		log:           log,
	}
}

// GetDashboard construye el DashboardDTO del tenant+tienda en el instante now.
//
// Cinco llamadas en paralelo:
//  1. GetDashboardMetrics          → KPIs bucketizados en un solo paso
//  2. GetDailySalesSeries(30 días) → serie diaria
//  3. GetTopProducts(30 días)      → top 5 por ingreso
//  4. GetSalesByPaymentMethod(mes) → medios de pago
//  5. GetLowStock                  → alertas de stock (degradable)
func (uc *DashboardUseCase) GetDashboard(
	ctx context.Context,
	tenantID, storeID string,
	now time.Time,
) (*dto.DashboardDTO, error) {
	offset := uc.offsets.OffsetFor(tenantID)
	win := timewindow.Compute(now, offset)

	type metricsResult struct {
		m   repository.DashboardMetrics
		err error
	}
	type seriesResult struct {
		points []repository.DailySalesPoint
		err    error
	}
	type topResult struct {
		rows []repository.TopProductRow
		err  error
	}
	type paymentsResult struct {
		totals []repository.PaymentMethodTotal
		err    error
	}
	type stockResult struct {
		levels []entity.StoreInventoryLevel
		err    error
	}

	metricsCh := make(chan metricsResult, 1)
	seriesCh := make(chan seriesResult, 1)
	topCh := make(chan topResult, 1)
	paymentsCh := make(chan paymentsResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		m, err := uc.salesRepo.GetDashboardMetrics(ctx, tenantID, storeID, win)
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		points, err := uc.salesRepo.GetDailySalesSeries(ctx, tenantID, storeID, win.ThirtyDaysStart, offset)
		seriesCh <- seriesResult{points, err}
	}()
	go func() {
		rows, err := uc.salesRepo.GetTopProducts(ctx, tenantID, storeID, win.ThirtyDaysStart, dashboardTopProducts)
		topCh <- topResult{rows, err}
	}()
	go func() {
		totals, err := uc.salesRepo.GetSalesByPaymentMethod(ctx, tenantID, storeID, win.MonthStart)
		paymentsCh <- paymentsResult{totals, err}
	}()
	go func() {
		levels, err := uc.inventoryRepo.GetLowStock(ctx, tenantID, storeID)
		stockCh <- stockResult{levels, err}
	}()

	metrics := <-metricsCh
	series := <-seriesCh
	top := <-topCh
	payments := <-paymentsCh
	stock := <-stockCh

	if metrics.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de ventas: %w", metrics.err)
	}
	if series.err != nil {
		return nil, fmt.Errorf("dashboard: serie diaria: %w", series.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("dashboard: medios de pago: %w", payments.err)
	}

	lowStock := []dto.LowStockItemDTO{}
	if stock.err != nil {
		uc.log.Warn().Err(stock.err).
			Str("tenant_id", tenantID).
			Str("store_id", storeID).
			Msg("dashboard: stock bajo no disponible, se devuelve lista vacía")
	} else {
		lowStock = mapLowStock(stock.levels)
	}

	m := metrics.m
	out := &dto.DashboardDTO{
		TodayRevenue:     m.TodayRevenue.Round(2),
		TodaySales:       m.TodaySales,
		TodayTicket:      averageTicket(m.TodayRevenue, m.TodaySales),
		YesterdayRevenue: m.YesterdayRevenue.Round(2),
		YesterdaySales:   m.YesterdaySales,
		TodayGrowth:      growthPct(m.TodayRevenue, m.YesterdayRevenue),
		WeekGrowth:       growthPct(m.WeekRevenue, m.LastWeekRevenue),
		MonthGrowth:      growthPct(m.MonthRevenue, m.LastMonthRevenue),
		WeekRevenue:      m.WeekRevenue.Round(2),
		LastWeekRevenue:  m.LastWeekRevenue.Round(2),
		MonthRevenue:     m.MonthRevenue.Round(2),
		MonthSales:       m.MonthSales,
		MonthTicket:      averageTicket(m.MonthRevenue, m.MonthSales),
		LastMonthRevenue: m.LastMonthRevenue.Round(2),
		LastMonthSales:   m.LastMonthSales,
		LastMonthTicket:  averageTicket(m.LastMonthRevenue, m.LastMonthSales),
		DailySales:       make([]dto.DailySalesDTO, 0, len(series.points)),
		TopProducts:      make([]dto.TopProductDTO, 0, len(top.rows)),
		PaymentMethods:   mapPaymentMethods(payments.totals),
		LowStockItems:    lowStock,
	}

	for _, p := range series.points {
		out.DailySales = append(out.DailySales, dto.DailySalesDTO{
			Date:       p.Day.Format("2006-01-02"),
			SalesCount: p.SalesCount,
			Revenue:    p.Revenue.Round(2),
		})
	}
	for _, r := range top.rows {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:    r.ProductID,
			ProductCode:  r.ProductCode,
			ProductName:  r.ProductName,
			QuantitySold: r.QuantitySold,
			Revenue:      r.Revenue.Round(2),
		})
	}

	return out, nil
}

// growthPct crecimiento porcentual de current sobre previous.
// Devuelve 0 cuando previous es 0 o negativo para no dividir por cero.
func growthPct(current, previous decimal.Decimal) decimal.Decimal {
	if previous.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(oneHundred).Round(2)
}

// averageTicket ticket promedio; 0 cuando no hubo ventas.
func averageTicket(revenue decimal.Decimal, sales int) decimal.Decimal {
	if sales <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(sales))).Round(2)
}

func mapPaymentMethods(totals []repository.PaymentMethodTotal) []dto.PaymentMethodDTO {
	grandTotal := decimal.Zero
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Amount)
	}
	out := make([]dto.PaymentMethodDTO, 0, len(totals))
	for _, t := range totals {
		pct := decimal.Zero
		if grandTotal.GreaterThan(decimal.Zero) {
			pct = t.Amount.Div(grandTotal).Mul(oneHundred).Round(2)
		}
		out = append(out, dto.PaymentMethodDTO{
			Method:     t.Method.Label(),
			SalesCount: t.SalesCount,
			Amount:     t.Amount.Round(2),
			Percentage: pct,
		})
	}
	return out
}

func mapLowStock(levels []entity.StoreInventoryLevel) []dto.LowStockItemDTO {
	out := make([]dto.LowStockItemDTO, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.LowStockItemDTO{
			ProductID:    l.ProductID,
			ProductCode:  l.ProductCode,
			ProductName:  l.ProductName,
			CurrentStock: l.CurrentStock,
			MinimumStock: l.MinimumStock,
			Severity:     l.Severity(),
		})
	}
	return out
}
