package dto

import "github.com/shopspring/decimal"

// ── Riesgo de quiebre ─────────────────────────────────────────────────────────

// RiskAssessmentDTO producto en riesgo de quiebre de stock.
type RiskAssessmentDTO struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	CurrentStock  int             `json:"current_stock"`
	DailySaleRate decimal.Decimal `json:"daily_sale_rate"` // vendido histórico / 30
	DaysRemaining decimal.Decimal `json:"days_remaining"`  // 999 cuando la tasa es 0
	RiskLevel     string          `json:"risk_level"`      // Critical | High | Medium
}

// SuggestedPurchaseDTO línea del plan de compras sugerido.
type SuggestedPurchaseDTO struct {
	ProductID         string          `json:"product_id"`
	ProductCode       string          `json:"product_code"`
	ProductName       string          `json:"product_name"`
	CurrentStock      int             `json:"current_stock"`
	SuggestedQuantity int             `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"` // cantidad * costo unitario
	Reason            string          `json:"reason"`
}

// ── Informe de insights ───────────────────────────────────────────────────────

// InventoryInsightReportDTO respuesta de GET /api/analytics/inventory/insights.
type InventoryInsightReportDTO struct {
	GeneratedAt         string                 `json:"generated_at"` // RFC 3339
	RiskAssessments     []RiskAssessmentDTO    `json:"risk_assessments"`
	SuggestedPurchases  []SuggestedPurchaseDTO `json:"suggested_purchases"`
	DeadStock           []DeadStockItemDTO     `json:"dead_stock"`
	EstimatedInvestment decimal.Decimal        `json:"estimated_investment"` // suma de costos del plan
	Narrative           string                 `json:"narrative"`
	NarrativeSource     string                 `json:"narrative_source"` // ai | fallback
}

// DeadStockItemDTO producto con ventas históricas pero sin rotación reciente.
type DeadStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	ProductCode       string          `json:"product_code"`
	ProductName       string          `json:"product_name"`
	CurrentStock      int             `json:"current_stock"`
	DaysSinceLastSale int             `json:"days_since_last_sale"`
	TotalSold         decimal.Decimal `json:"total_sold"`
}

// ── Desempeño de productos ────────────────────────────────────────────────────

// ProductPerformanceDTO desempeño histórico agregado de un producto.
type ProductPerformanceDTO struct {
	ProductID         string          `json:"product_id"`
	ProductCode       string          `json:"product_code"`
	ProductName       string          `json:"product_name"`
	TotalSold         decimal.Decimal `json:"total_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	LastSaleDate      string          `json:"last_sale_date"` // RFC 3339
	DaysSinceLastSale int             `json:"days_since_last_sale"`
}
