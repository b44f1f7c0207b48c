package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPerformance rollup de desempeño histórico por (tenant, producto).
// Se reemplaza completo por tenant en cada regeneración.
//
// DaysSinceLastSale se calcula contra el "now" del momento de la regeneración;
// entre regeneraciones el campo envejece sin actualizarse. Es una staleness
// conocida del modelo, no un bug: el consumidor que necesite el valor fresco
// debe recalcularlo desde LastSaleDate.
type ProductPerformance struct {
	ID                string
	TenantID          string
	ProductID         string
	ProductCode       string
	ProductName       string
	TotalSold         decimal.Decimal
	TotalRevenue      decimal.Decimal
	TotalCost         decimal.Decimal
	TotalProfit       decimal.Decimal
	LastSaleDate      time.Time
	DaysSinceLastSale int
	CreatedAt         time.Time
}

// NewProductPerformance construye el rollup calculando profit y recencia contra now.
func NewProductPerformance(
	id, tenantID, productID, productCode, productName string,
	totalSold, totalRevenue, totalCost decimal.Decimal,
	lastSaleDate, now time.Time,
) ProductPerformance {
	days := int(now.Sub(lastSaleDate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return ProductPerformance{
		ID:                id,
		TenantID:          tenantID,
		ProductID:         productID,
		ProductCode:       productCode,
		ProductName:       productName,
		TotalSold:         totalSold,
		TotalRevenue:      totalRevenue,
		TotalCost:         totalCost,
		TotalProfit:       totalRevenue.Sub(totalCost),
		LastSaleDate:      lastSaleDate,
		DaysSinceLastSale: days,
		CreatedAt:         now,
	}
}
