package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/timewindow"
)

// DashboardMetrics resultado crudo de la consulta de KPIs en un solo paso.
// La DB bucketiza las ventas con FILTER sobre los cortes de la ventana;
// el use case calcula crecimientos y tickets promedio.
type DashboardMetrics struct {
	TodayRevenue     decimal.Decimal
	TodaySales       int
	YesterdayRevenue decimal.Decimal
	YesterdaySales   int
	WeekRevenue      decimal.Decimal
	LastWeekRevenue  decimal.Decimal
	MonthRevenue     decimal.Decimal
	MonthSales       int
	LastMonthRevenue decimal.Decimal
	LastMonthSales   int
}

// DailySalesPoint punto de la serie diaria del dashboard.
// Day es la fecha calendario local (medianoche UTC como etiqueta).
type DailySalesPoint struct {
	Day        time.Time
	SalesCount int
	Revenue    decimal.Decimal
}

// TopProductRow producto del ranking de 30 días.
type TopProductRow struct {
	ProductID    string
	ProductCode  string
	ProductName  string
	QuantitySold decimal.Decimal
	Revenue      decimal.Decimal
}

// PaymentMethodTotal ingresos agrupados por medio de pago.
type PaymentMethodTotal struct {
	Method     entity.PaymentMethod
	SalesCount int
	Amount     decimal.Decimal
}

// DailySaleAggregate agregado por día calendario local para la regeneración
// de rollups. Day es la fecha local como medianoche UTC (etiqueta); el use
// case la convierte al instante UTC del inicio del día local con el offset.
type DailySaleAggregate struct {
	Day        time.Time
	SalesCount int
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	Items      decimal.Decimal
	Customers  int
}

// ProductSaleAggregate agregado histórico por producto para la regeneración
// de ProductPerformance.
type ProductSaleAggregate struct {
	ProductID    string
	ProductCode  string
	ProductName  string
	Sold         decimal.Decimal
	Revenue      decimal.Decimal
	Cost         decimal.Decimal
	LastSaleDate time.Time
}

// SalesLedgerRepository consultas de solo lectura sobre el ledger de ventas
// (ventas, líneas y pagos). Todas las consultas filtran status=Completed y
// respetan la cancelación del contexto.
type SalesLedgerRepository interface {
	// GetDashboardMetrics ejecuta la consulta de KPIs en un solo paso sobre
	// las ventas crudas, bucketizada con los cortes de la ventana y limitada
	// por el piso de 1 año.
	GetDashboardMetrics(ctx context.Context, tenantID, storeID string, win timewindow.Window) (DashboardMetrics, error)

	// GetDailySalesSeries serie por día calendario local desde `from`.
	GetDailySalesSeries(ctx context.Context, tenantID, storeID string, from time.Time, offsetMinutes int) ([]DailySalesPoint, error)

	// GetTopProducts top `limit` productos por subtotal vendido desde `from`.
	GetTopProducts(ctx context.Context, tenantID, storeID string, from time.Time, limit int) ([]TopProductRow, error)

	// GetSalesByPaymentMethod ingresos por medio de pago desde `from`.
	GetSalesByPaymentMethod(ctx context.Context, tenantID, storeID string, from time.Time) ([]PaymentMethodTotal, error)

	// GetDailySaleAggregates agregados por día local de TODAS las ventas
	// Completed del tenant+tienda (sin ventana), para regenerar los rollups.
	GetDailySaleAggregates(ctx context.Context, tenantID, storeID string, offsetMinutes int) ([]DailySaleAggregate, error)

	// GetProductSaleAggregates agregados históricos por producto del tenant.
	GetProductSaleAggregates(ctx context.Context, tenantID string) ([]ProductSaleAggregate, error)
}
