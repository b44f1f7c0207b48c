package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain"
	"github.com/profitzen/analytics-api/internal/domain/entity"
)

type fakeExporter struct {
	pdf []byte
	err error
}

func (f *fakeExporter) ExportSalesReport(*dto.SalesReportDTO, string) ([]byte, error) {
	return f.pdf, f.err
}

// summaryFor crea un rollup del día local indicado (huso de Lima).
func summaryFor(tenantID, storeID string, y int, m time.Month, d int, sales int, revenue, cost string) entity.DailySalesSummary {
	date := time.Date(y, m, d, 5, 0, 0, 0, time.UTC) // 00:00 Lima
	return entity.NewDailySalesSummary(
		"id", tenantID, storeID, date,
		sales, dec(revenue), dec(cost), decimal.NewFromInt(int64(sales)), sales,
		time.Now(),
	)
}

func reportFixture(rows ...entity.DailySalesSummary) *ReportUseCase {
	return NewReportUseCase(
		&memSummaryRepo{rows: rows},
		&memPerfRepo{},
		&fakeExporter{pdf: []byte("%PDF-")},
		fakeOffsets{offset: limaOffset},
	)
}

func TestGetSalesReport_TotalizaElRango(t *testing.T) {
	uc := reportFixture(
		summaryFor("t1", "s1", 2026, 3, 10, 2, "200.00", "120.00"),
		summaryFor("t1", "s1", 2026, 3, 11, 3, "400.00", "220.00"),
		summaryFor("t1", "s1", 2026, 3, 20, 9, "999.00", "900.00"), // fuera del rango
	)

	report, err := uc.GetSalesReport(context.Background(), "t1", "s1", "2026-03-10", "2026-03-11")
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalSales)
	assert.True(t, report.TotalRevenue.Equal(dec("600.00")))
	assert.True(t, report.TotalProfit.Equal(dec("260.00")))
	assert.True(t, report.AverageTicket.Equal(dec("120.00")), "ticket: %s", report.AverageTicket)

	require.Len(t, report.Days, 2)
	assert.Equal(t, "2026-03-10", report.Days[0].Date)
	assert.Equal(t, "2026-03-11", report.Days[1].Date)
}

// El rango es de fechas locales: una venta del día 11 a las 23:00 Lima vive
// en UTC el día 12, pero el rollup del 11 (05:00 UTC) entra completo.
func TestGetSalesReport_RangoInclusivo(t *testing.T) {
	uc := reportFixture(summaryFor("t1", "s1", 2026, 3, 11, 1, "100.00", "60.00"))

	report, err := uc.GetSalesReport(context.Background(), "t1", "s1", "2026-03-11", "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalSales)
}

func TestGetSalesReport_RangoInvalido(t *testing.T) {
	uc := reportFixture()

	_, err := uc.GetSalesReport(context.Background(), "t1", "s1", "2026-03-11", "2026-03-10")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = uc.GetSalesReport(context.Background(), "t1", "s1", "11/03/2026", "2026-03-12")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestComparePeriods_Crecimientos(t *testing.T) {
	uc := reportFixture(
		summaryFor("t1", "s1", 2026, 3, 1, 10, "1000.00", "600.00"),
		summaryFor("t1", "s1", 2026, 2, 1, 5, "500.00", "300.00"),
	)

	cmp, err := uc.ComparePeriods(context.Background(), "t1", "s1", dto.ComparePeriodRequest{
		CurrentStart: "2026-03-01", CurrentEnd: "2026-03-31",
		PreviousStart: "2026-02-01", PreviousEnd: "2026-02-28",
	})
	require.NoError(t, err)

	assert.True(t, cmp.RevenueGrowth.Equal(dec("100.00")), "revenue growth: %s", cmp.RevenueGrowth)
	assert.True(t, cmp.SalesGrowth.Equal(dec("100.00")))
	assert.True(t, cmp.ProfitGrowth.Equal(dec("100.00")))
	assert.Equal(t, 10, cmp.Current.TotalSales)
	assert.Equal(t, 5, cmp.Previous.TotalSales)
}

// Período previo sin datos: los crecimientos se reportan como 0.
func TestComparePeriods_PrevioVacio(t *testing.T) {
	uc := reportFixture(summaryFor("t1", "s1", 2026, 3, 1, 10, "1000.00", "600.00"))

	cmp, err := uc.ComparePeriods(context.Background(), "t1", "s1", dto.ComparePeriodRequest{
		CurrentStart: "2026-03-01", CurrentEnd: "2026-03-31",
		PreviousStart: "2026-02-01", PreviousEnd: "2026-02-28",
	})
	require.NoError(t, err)
	assert.True(t, cmp.RevenueGrowth.IsZero())
	assert.True(t, cmp.SalesGrowth.IsZero())
	assert.True(t, cmp.ProfitGrowth.IsZero())
}

func TestExportSalesReportPDF(t *testing.T) {
	uc := reportFixture(summaryFor("t1", "s1", 2026, 3, 11, 1, "100.00", "60.00"))

	pdf, err := uc.ExportSalesReportPDF(context.Background(), "t1", "s1", "Tienda Centro", "2026-03-11", "2026-03-11")
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}

func TestExportSalesReportPDF_ErrorDelExportador(t *testing.T) {
	uc := NewReportUseCase(
		&memSummaryRepo{},
		&memPerfRepo{},
		&fakeExporter{err: errors.New("maroto falló")},
		fakeOffsets{offset: limaOffset},
	)

	_, err := uc.ExportSalesReportPDF(context.Background(), "t1", "s1", "Tienda", "2026-03-11", "2026-03-11")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exportar reporte")
}

func TestParseLocalRange(t *testing.T) {
	from, to, err := parseLocalRange("2026-03-10", "2026-03-11", limaOffset)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 12, 5, 0, 0, 0, time.UTC), to)

	// offset positivo: el día local comienza antes de la medianoche UTC
	from, _, err = parseLocalRange("2026-03-10", "2026-03-10", 480)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 16, 0, 0, 0, time.UTC), from)
}
