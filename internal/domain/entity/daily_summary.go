package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesSummary rollup diario por (tenant, tienda, día calendario local).
// Date es el instante UTC del inicio del día local; la regeneración reemplaza
// todas las filas de la clave (tenant, tienda) de una sola vez, así que nunca
// hay dos filas para el mismo día después de un ciclo completo.
type DailySalesSummary struct {
	ID             string
	TenantID       string
	StoreID        string
	Date           time.Time
	TotalSales     int
	TotalRevenue   decimal.Decimal
	TotalCost      decimal.Decimal
	TotalProfit    decimal.Decimal
	AverageTicket  decimal.Decimal
	TotalItems     decimal.Decimal
	TotalCustomers int
	CreatedAt      time.Time
}

// NewDailySalesSummary construye el rollup calculando profit y ticket promedio.
// AverageTicket es 0 cuando no hay ventas (nunca divide por cero).
func NewDailySalesSummary(
	id, tenantID, storeID string,
	date time.Time,
	totalSales int,
	totalRevenue, totalCost, totalItems decimal.Decimal,
	totalCustomers int,
	createdAt time.Time,
) DailySalesSummary {
	avgTicket := decimal.Zero
	if totalSales > 0 {
		avgTicket = totalRevenue.Div(decimal.NewFromInt(int64(totalSales))).Round(2)
	}
	return DailySalesSummary{
		ID:             id,
		TenantID:       tenantID,
		StoreID:        storeID,
		Date:           date,
		TotalSales:     totalSales,
		TotalRevenue:   totalRevenue,
		TotalCost:      totalCost,
		TotalProfit:    totalRevenue.Sub(totalCost),
		AverageTicket:  avgTicket,
		TotalItems:     totalItems,
		TotalCustomers: totalCustomers,
		CreatedAt:      createdAt,
	}
}
