package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGetDashboard_KPIsYCrecimientos(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)

	sales := &fakeSalesLedger{
		metrics: repository.DashboardMetrics{
			TodayRevenue:     dec("300.00"),
			TodaySales:       3,
			YesterdayRevenue: dec("200.00"),
			YesterdaySales:   2,
			WeekRevenue:      dec("1500.00"),
			LastWeekRevenue:  dec("1000.00"),
			MonthRevenue:     dec("4400.00"),
			MonthSales:       40,
			LastMonthRevenue: dec("4000.00"),
			LastMonthSales:   38,
		},
		series: []repository.DailySalesPoint{
			{Day: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), SalesCount: 2, Revenue: dec("200.00")},
			{Day: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), SalesCount: 3, Revenue: dec("300.00")},
		},
		payments: []repository.PaymentMethodTotal{
			{Method: entity.PaymentCash, SalesCount: 30, Amount: dec("3300.00")},
			{Method: entity.PaymentCard, SalesCount: 10, Amount: dec("1100.00")},
		},
	}
	uc := NewDashboardUseCase(sales, &fakeInventory{}, fakeOffsets{offset: -300}, testLogger())

	dash, err := uc.GetDashboard(context.Background(), "t1", "s1", now)
	require.NoError(t, err)

	assert.Equal(t, 3, dash.TodaySales)
	assert.True(t, dash.TodayTicket.Equal(dec("100.00")), "ticket de hoy: %s", dash.TodayTicket)
	assert.True(t, dash.TodayGrowth.Equal(dec("50.00")), "crecimiento de hoy: %s", dash.TodayGrowth)
	assert.True(t, dash.WeekGrowth.Equal(dec("50.00")))
	assert.True(t, dash.MonthGrowth.Equal(dec("10.00")))
	assert.True(t, dash.MonthTicket.Equal(dec("110.00")))

	// los valores crudos de los períodos previos viajan junto a los crecimientos
	assert.True(t, dash.YesterdayRevenue.Equal(dec("200.00")), "venta de ayer: %s", dash.YesterdayRevenue)
	assert.Equal(t, 2, dash.YesterdaySales)
	assert.True(t, dash.LastWeekRevenue.Equal(dec("1000.00")))
	assert.True(t, dash.LastMonthRevenue.Equal(dec("4000.00")))
	assert.Equal(t, 38, dash.LastMonthSales)
	assert.True(t, dash.LastMonthTicket.Equal(dec("105.26")), "ticket del mes pasado: %s", dash.LastMonthTicket)

	require.Len(t, dash.DailySales, 2)
	assert.Equal(t, "2026-03-14", dash.DailySales[0].Date)

	require.Len(t, dash.PaymentMethods, 2)
	assert.Equal(t, "Efectivo", dash.PaymentMethods[0].Method)
	assert.True(t, dash.PaymentMethods[0].Percentage.Equal(dec("75.00")),
		"porcentaje efectivo: %s", dash.PaymentMethods[0].Percentage)
}

// Con base previa en cero el crecimiento se reporta como 0, no como infinito.
func TestGetDashboard_CrecimientoConBaseCero(t *testing.T) {
	sales := &fakeSalesLedger{
		metrics: repository.DashboardMetrics{
			TodayRevenue:     dec("300.00"),
			TodaySales:       3,
			YesterdayRevenue: decimal.Zero,
		},
	}
	uc := NewDashboardUseCase(sales, &fakeInventory{}, fakeOffsets{}, testLogger())

	dash, err := uc.GetDashboard(context.Background(), "t1", "s1", time.Now())
	require.NoError(t, err)
	assert.True(t, dash.TodayGrowth.IsZero())
	assert.True(t, dash.WeekGrowth.IsZero())
	assert.True(t, dash.MonthGrowth.IsZero())
}

// Sin ventas el ticket promedio es 0, nunca división por cero.
func TestGetDashboard_TicketSinVentas(t *testing.T) {
	uc := NewDashboardUseCase(&fakeSalesLedger{}, &fakeInventory{}, fakeOffsets{}, testLogger())

	dash, err := uc.GetDashboard(context.Background(), "t1", "s1", time.Now())
	require.NoError(t, err)
	assert.True(t, dash.TodayTicket.IsZero())
	assert.True(t, dash.MonthTicket.IsZero())
}

// Si la consulta de stock falla, el dashboard sale con la lista vacía.
func TestGetDashboard_StockBajoDegradado(t *testing.T) {
	inventory := &fakeInventory{err: errors.New("timeout de inventario")}
	uc := NewDashboardUseCase(&fakeSalesLedger{}, inventory, fakeOffsets{}, testLogger())

	dash, err := uc.GetDashboard(context.Background(), "t1", "s1", time.Now())
	require.NoError(t, err)
	assert.NotNil(t, dash.LowStockItems)
	assert.Empty(t, dash.LowStockItems)
}

// Un error en las métricas sí aborta el dashboard.
func TestGetDashboard_ErrorEnMetricas(t *testing.T) {
	sales := &fakeSalesLedger{metricsErr: errors.New("conexión perdida")}
	uc := NewDashboardUseCase(sales, &fakeInventory{}, fakeOffsets{}, testLogger())

	_, err := uc.GetDashboard(context.Background(), "t1", "s1", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "métricas de ventas")
}

func TestGrowthPct(t *testing.T) {
	assert.True(t, growthPct(dec("150"), dec("100")).Equal(dec("50.00")))
	assert.True(t, growthPct(dec("50"), dec("100")).Equal(dec("-50.00")))
	assert.True(t, growthPct(dec("100"), decimal.Zero).IsZero())
	assert.True(t, growthPct(decimal.Zero, decimal.Zero).IsZero())
}
