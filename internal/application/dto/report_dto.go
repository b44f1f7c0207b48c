package dto

import "github.com/shopspring/decimal"

// ── Reporte de ventas ─────────────────────────────────────────────────────────

// SalesReportDTO respuesta de GET /api/analytics/sales/report.
// Construido sobre los rollups diarios, no sobre las ventas crudas.
type SalesReportDTO struct {
	StartDate     string            `json:"start_date"` // fecha local YYYY-MM-DD
	EndDate       string            `json:"end_date"`
	TotalSales    int               `json:"total_sales"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalCost     decimal.Decimal   `json:"total_cost"`
	TotalProfit   decimal.Decimal   `json:"total_profit"`
	AverageTicket decimal.Decimal   `json:"average_ticket"` // ponderado por ventas; 0 sin ventas
	Days          []DailySummaryDTO `json:"days"`
}

// DailySummaryDTO un día del reporte.
type DailySummaryDTO struct {
	Date           string          `json:"date"` // fecha local YYYY-MM-DD
	TotalSales     int             `json:"total_sales"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	TotalItems     decimal.Decimal `json:"total_items"`
	TotalCustomers int             `json:"total_customers"`
}

// ── Comparación de períodos ───────────────────────────────────────────────────

// ComparePeriodRequest parámetros de GET /api/analytics/sales/comparison.
type ComparePeriodRequest struct {
	CurrentStart  string `query:"current_start"`  // YYYY-MM-DD
	CurrentEnd    string `query:"current_end"`    // YYYY-MM-DD
	PreviousStart string `query:"previous_start"` // YYYY-MM-DD
	PreviousEnd   string `query:"previous_end"`   // YYYY-MM-DD
}

// PeriodComparisonDTO comparación de dos rangos de fechas.
type PeriodComparisonDTO struct {
	Current       PeriodTotalsDTO `json:"current"`
	Previous      PeriodTotalsDTO `json:"previous"`
	RevenueGrowth decimal.Decimal `json:"revenue_growth"` // %; 0 cuando el previo fue 0
	SalesGrowth   decimal.Decimal `json:"sales_growth"`
	ProfitGrowth  decimal.Decimal `json:"profit_growth"`
}

// PeriodTotalsDTO totales de un rango.
type PeriodTotalsDTO struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// ── Regeneración ──────────────────────────────────────────────────────────────

// GenerateSummariesResponse resultado de POST /api/analytics/generate-summaries.
type GenerateSummariesResponse struct {
	DaysGenerated     int    `json:"days_generated"`
	ProductsGenerated int    `json:"products_generated"`
	Message           string `json:"message"`
}
