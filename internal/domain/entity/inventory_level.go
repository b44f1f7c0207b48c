package entity

import "github.com/shopspring/decimal"

// StoreInventoryLevel stock actual de un producto en una tienda.
// Entrada de solo lectura para el escáner de stock bajo y el forecaster;
// la mantiene el servicio de inventario, no este módulo.
type StoreInventoryLevel struct {
	TenantID     string
	StoreID      string
	ProductID    string
	ProductCode  string
	ProductName  string
	CurrentStock int
	MinimumStock int
	// UnitCost precio de compra unitario (base de costo del catálogo).
	UnitCost decimal.Decimal
}

// Severity urgencia de la alerta de stock bajo: critical cuando no queda
// stock, high cuando está a la mitad del mínimo o menos, medium en el resto.
func (l StoreInventoryLevel) Severity() string {
	switch {
	case l.CurrentStock <= 0:
		return "critical"
	case float64(l.CurrentStock) <= float64(l.MinimumStock)/2.0:
		return "high"
	default:
		return "medium"
	}
}
