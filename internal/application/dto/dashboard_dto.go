package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/analytics/dashboard.
// KPIs de hoy, la semana y el mes, más las listas de soporte del widget.
type DashboardDTO struct {
	// Métricas del día actual y de ayer (día calendario local del tenant)
	TodayRevenue     decimal.Decimal `json:"today_revenue"`
	TodaySales       int             `json:"today_sales"`
	TodayTicket      decimal.Decimal `json:"today_ticket"` // ticket promedio de hoy; 0 sin ventas
	YesterdayRevenue decimal.Decimal `json:"yesterday_revenue"`
	YesterdaySales   int             `json:"yesterday_sales"`

	// Crecimientos porcentuales; 0 cuando el período previo fue 0
	TodayGrowth decimal.Decimal `json:"today_growth"` // vs ayer
	WeekGrowth  decimal.Decimal `json:"week_growth"`  // últimos 7 días vs los 7 previos
	MonthGrowth decimal.Decimal `json:"month_growth"` // mes en curso vs mes anterior

	// Métricas acumuladas y sus períodos previos
	WeekRevenue      decimal.Decimal `json:"week_revenue"`
	LastWeekRevenue  decimal.Decimal `json:"last_week_revenue"`
	MonthRevenue     decimal.Decimal `json:"month_revenue"`
	MonthSales       int             `json:"month_sales"`
	MonthTicket      decimal.Decimal `json:"month_ticket"`
	LastMonthRevenue decimal.Decimal `json:"last_month_revenue"`
	LastMonthSales   int             `json:"last_month_sales"`
	LastMonthTicket  decimal.Decimal `json:"last_month_ticket"`

	// Listas de soporte
	DailySales     []DailySalesDTO    `json:"daily_sales"`     // serie de los últimos 30 días
	TopProducts    []TopProductDTO    `json:"top_products"`    // top 5 por ingreso, 30 días
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"` // mes en curso
	LowStockItems  []LowStockItemDTO  `json:"low_stock_items"` // vacío si la consulta falla
}

// DailySalesDTO punto de la serie diaria.
type DailySalesDTO struct {
	Date       string          `json:"date"` // fecha local YYYY-MM-DD
	SalesCount int             `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto del ranking de ventas.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// PaymentMethodDTO ingresos por medio de pago.
type PaymentMethodDTO struct {
	Method     string          `json:"method"` // nombre legible: Efectivo, Tarjeta, ...
	SalesCount int             `json:"sales_count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"` // participación sobre el total del mes
}

// LowStockItemDTO producto en o bajo su stock mínimo.
type LowStockItemDTO struct {
	ProductID    string `json:"product_id"`
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
	Severity     string `json:"severity"` // critical | high | medium
}
