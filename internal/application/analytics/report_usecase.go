package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/application/ports"
	"github.com/profitzen/analytics-api/internal/domain"
	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

const localDateLayout = "2006-01-02"

// ReportUseCase reportes de ventas construidos sobre los rollups diarios.
// Nunca toca el ledger crudo: si los rollups están desactualizados, el
// reporte refleja la última regeneración.
type ReportUseCase struct {
	summaryRepo repository.DailySummaryRepository
	perfRepo    repository.ProductPerformanceRepository
	exporter    ports.ReportExporter
	offsets     OffsetResolver
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	summaryRepo repository.DailySummaryRepository,
	perfRepo repository.ProductPerformanceRepository,
	exporter ports.ReportExporter,
	offsets OffsetResolver,
) *ReportUseCase {
	return &ReportUseCase{
		summaryRepo: summaryRepo,
		perfRepo:    perfRepo,
		exporter:    exporter,
		offsets:     offsets,
	}
}

// GetSalesReport totaliza los rollups diarios del rango [startDate, endDate]
// (fechas calendario locales del tenant, ambas inclusive).
func (uc *ReportUseCase) GetSalesReport(
	ctx context.Context,
	tenantID, storeID string,
	startDate, endDate string,
) (*dto.SalesReportDTO, error) {
	offset := uc.offsets.OffsetFor(tenantID)
	from, to, err := parseLocalRange(startDate, endDate, offset)
	if err != nil {
		return nil, err
	}

	summaries, err := uc.summaryRepo.ListByRange(ctx, tenantID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}

	report := &dto.SalesReportDTO{
		StartDate:    startDate,
		EndDate:      endDate,
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
		Days:         make([]dto.DailySummaryDTO, 0, len(summaries)),
	}
	for _, s := range summaries {
		report.TotalSales += s.TotalSales
		report.TotalRevenue = report.TotalRevenue.Add(s.TotalRevenue)
		report.TotalCost = report.TotalCost.Add(s.TotalCost)
		report.TotalProfit = report.TotalProfit.Add(s.TotalProfit)
		report.Days = append(report.Days, mapDailySummary(s, offset))
	}
	report.TotalRevenue = report.TotalRevenue.Round(2)
	report.TotalCost = report.TotalCost.Round(2)
	report.TotalProfit = report.TotalProfit.Round(2)
	report.AverageTicket = averageTicket(report.TotalRevenue, report.TotalSales)

	return report, nil
}

// ExportSalesReportPDF genera el reporte y lo exporta a PDF.
func (uc *ReportUseCase) ExportSalesReportPDF(
	ctx context.Context,
	tenantID, storeID, storeName string,
	startDate, endDate string,
) ([]byte, error) {
	report, err := uc.GetSalesReport(ctx, tenantID, storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.exporter.ExportSalesReport(report, storeName)
	if err != nil {
		return nil, fmt.Errorf("exportar reporte a PDF: %w", err)
	}
	return pdf, nil
}

// GetDailySummaries lista los rollups del rango sin totalizar.
func (uc *ReportUseCase) GetDailySummaries(
	ctx context.Context,
	tenantID, storeID string,
	startDate, endDate string,
) ([]dto.DailySummaryDTO, error) {
	offset := uc.offsets.OffsetFor(tenantID)
	from, to, err := parseLocalRange(startDate, endDate, offset)
	if err != nil {
		return nil, err
	}
	summaries, err := uc.summaryRepo.ListByRange(ctx, tenantID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("resúmenes diarios: %w", err)
	}
	out := make([]dto.DailySummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, mapDailySummary(s, offset))
	}
	return out, nil
}

// ComparePeriods compara dos rangos de fechas locales sobre los rollups.
// Los crecimientos son 0 cuando la base del período previo es 0.
func (uc *ReportUseCase) ComparePeriods(
	ctx context.Context,
	tenantID, storeID string,
	req dto.ComparePeriodRequest,
) (*dto.PeriodComparisonDTO, error) {
	current, err := uc.periodTotals(ctx, tenantID, storeID, req.CurrentStart, req.CurrentEnd)
	if err != nil {
		return nil, fmt.Errorf("período actual: %w", err)
	}
	previous, err := uc.periodTotals(ctx, tenantID, storeID, req.PreviousStart, req.PreviousEnd)
	if err != nil {
		return nil, fmt.Errorf("período previo: %w", err)
	}

	return &dto.PeriodComparisonDTO{
		Current:       current,
		Previous:      previous,
		RevenueGrowth: growthPct(current.TotalRevenue, previous.TotalRevenue),
		SalesGrowth:   growthPct(decimal.NewFromInt(int64(current.TotalSales)), decimal.NewFromInt(int64(previous.TotalSales))),
		ProfitGrowth:  growthPct(current.TotalProfit, previous.TotalProfit),
	}, nil
}

// GetTopProducts top N productos del tenant por ingreso histórico.
func (uc *ReportUseCase) GetTopProducts(ctx context.Context, tenantID string, limit int) ([]dto.ProductPerformanceDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.perfRepo.ListTop(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("top productos: %w", err)
	}
	return mapPerformance(rows), nil
}

// GetProductPerformance desempeño histórico de todos los productos del tenant.
func (uc *ReportUseCase) GetProductPerformance(ctx context.Context, tenantID string) ([]dto.ProductPerformanceDTO, error) {
	rows, err := uc.perfRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("desempeño de productos: %w", err)
	}
	return mapPerformance(rows), nil
}

func (uc *ReportUseCase) periodTotals(
	ctx context.Context,
	tenantID, storeID string,
	startDate, endDate string,
) (dto.PeriodTotalsDTO, error) {
	offset := uc.offsets.OffsetFor(tenantID)
	from, to, err := parseLocalRange(startDate, endDate, offset)
	if err != nil {
		return dto.PeriodTotalsDTO{}, err
	}
	summaries, err := uc.summaryRepo.ListByRange(ctx, tenantID, storeID, from, to)
	if err != nil {
		return dto.PeriodTotalsDTO{}, err
	}
	totals := dto.PeriodTotalsDTO{
		StartDate:    startDate,
		EndDate:      endDate,
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for _, s := range summaries {
		totals.TotalSales += s.TotalSales
		totals.TotalRevenue = totals.TotalRevenue.Add(s.TotalRevenue)
		totals.TotalProfit = totals.TotalProfit.Add(s.TotalProfit)
	}
	totals.TotalRevenue = totals.TotalRevenue.Round(2)
	totals.TotalProfit = totals.TotalProfit.Round(2)
	return totals, nil
}

// parseLocalRange convierte fechas calendario locales YYYY-MM-DD a los
// instantes UTC [from, to) que cubren esos días completos en el huso del
// tenant. endDate es inclusivo.
func parseLocalRange(startDate, endDate string, offsetMinutes int) (time.Time, time.Time, error) {
	start, err := time.Parse(localDateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidDateRange, startDate)
	}
	end, err := time.Parse(localDateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidDateRange, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidDateRange)
	}
	shift := -time.Duration(offsetMinutes) * time.Minute
	from := start.Add(shift)
	to := end.AddDate(0, 0, 1).Add(shift)
	return from, to, nil
}

func mapDailySummary(s entity.DailySalesSummary, offsetMinutes int) dto.DailySummaryDTO {
	local := s.Date.Add(time.Duration(offsetMinutes) * time.Minute)
	return dto.DailySummaryDTO{
		Date:           local.Format(localDateLayout),
		TotalSales:     s.TotalSales,
		TotalRevenue:   s.TotalRevenue.Round(2),
		TotalCost:      s.TotalCost.Round(2),
		TotalProfit:    s.TotalProfit.Round(2),
		AverageTicket:  s.AverageTicket,
		TotalItems:     s.TotalItems,
		TotalCustomers: s.TotalCustomers,
	}
}

func mapPerformance(rows []entity.ProductPerformance) []dto.ProductPerformanceDTO {
	out := make([]dto.ProductPerformanceDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, dto.ProductPerformanceDTO{
			ProductID:         p.ProductID,
			ProductCode:       p.ProductCode,
			ProductName:       p.ProductName,
			TotalSold:         p.TotalSold,
			TotalRevenue:      p.TotalRevenue.Round(2),
			TotalProfit:       p.TotalProfit.Round(2),
			LastSaleDate:      p.LastSaleDate.UTC().Format(time.RFC3339),
			DaysSinceLastSale: p.DaysSinceLastSale,
		})
	}
	return out
}
