// Package inventory contiene los casos de uso de alertas de stock y el
// informe de insights de inventario (riesgo de quiebre, plan de compras,
// stock muerto y narrativa ejecutiva).
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain/entity"
)

// Niveles de riesgo de quiebre.
const (
	RiskCritical = "Critical"
	RiskHigh     = "High"
	RiskMedium   = "Medium"
	RiskLow      = "Low"
)

const (
	riskWindowDays  = 30 // ventana fija sobre la que se amortiza el vendido histórico
	coverageDays    = 21 // días de cobertura objetivo del plan de compras
	noSalesHorizon  = 999
	fallbackRestock = 10 // cantidad sugerida sin mínimo configurado ni tasa
)

var (
	riskWindow = decimal.NewFromInt(riskWindowDays)
	coverage   = decimal.NewFromInt(coverageDays)
)

// riskItem producto en riesgo con los insumos que el plan de compras reutiliza.
type riskItem struct {
	Level entity.StoreInventoryLevel
	Rate  decimal.Decimal // vendido histórico amortizado sobre la ventana fija
	Days  decimal.Decimal // días de stock restantes a la tasa actual
	Tier  string
}

// assessRisk clasifica cada producto de la tienda según los días de stock
// que le quedan a su tasa diaria estimada. soldByProduct trae el vendido
// histórico del rollup de desempeño; la tasa es una amortización sobre una
// ventana fija de 30 días, no una tasa reciente real.
//
// Reglas, en orden:
//  1. tasa = vendido histórico / 30
//  2. tasa 0 con stock positivo: sin historial de ventas, fuera del informe
//  3. días restantes = stock / tasa; 999 si la tasa es 0
//  4. corte por días: <=3 Critical, <=7 High, <=14 Medium, resto Low
//  5. sin stock: siempre Critical con 0 días
//  6. stock en o bajo el mínimo (y positivo) sube Low/Medium a High
//
// Solo se devuelven los niveles distintos de Low, ordenados por días
// restantes ascendente.
func assessRisk(levels []entity.StoreInventoryLevel, soldByProduct map[string]decimal.Decimal) []riskItem {
	out := make([]riskItem, 0)
	for _, l := range levels {
		sold := soldByProduct[l.ProductID]
		rate := sold.Div(riskWindow)

		if rate.IsZero() && l.CurrentStock > 0 {
			continue
		}

		days := decimal.NewFromInt(noSalesHorizon)
		if rate.GreaterThan(decimal.Zero) {
			days = decimal.NewFromInt(int64(l.CurrentStock)).Div(rate)
		}

		tier := tierForDays(days)
		if l.CurrentStock <= 0 {
			tier = RiskCritical
			days = decimal.Zero
		}
		if l.CurrentStock <= l.MinimumStock && l.CurrentStock > 0 &&
			(tier == RiskLow || tier == RiskMedium) {
			tier = RiskHigh
		}
		if tier == RiskLow {
			continue
		}

		out = append(out, riskItem{Level: l, Rate: rate, Days: days, Tier: tier})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Days.LessThan(out[j].Days)
	})
	return out
}

func tierForDays(days decimal.Decimal) string {
	switch {
	case days.LessThanOrEqual(decimal.NewFromInt(3)):
		return RiskCritical
	case days.LessThanOrEqual(decimal.NewFromInt(7)):
		return RiskHigh
	case days.LessThanOrEqual(decimal.NewFromInt(14)):
		return RiskMedium
	default:
		return RiskLow
	}
}

// suggestPurchases arma el plan de compras para cubrir coverageDays de venta.
// Solo planifica los productos Critical o High; los Medium quedan en el
// informe de riesgo pero no generan compra.
//
// Cantidad sugerida = round(tasa * 21) - stock actual. Si el producto está
// sin stock y la cantidad calculada no es positiva, se repone al mínimo
// configurado, o a una cantidad base si no hay mínimo. Solo se emiten
// cantidades positivas, ordenadas por costo estimado descendente.
func suggestPurchases(items []riskItem) ([]dto.SuggestedPurchaseDTO, decimal.Decimal) {
	out := make([]dto.SuggestedPurchaseDTO, 0, len(items))
	investment := decimal.Zero

	for _, it := range items {
		if it.Tier != RiskCritical && it.Tier != RiskHigh {
			continue
		}

		qty := it.Rate.Mul(coverage).Round(0).IntPart() - int64(it.Level.CurrentStock)
		if it.Level.CurrentStock <= 0 && qty <= 0 {
			if it.Level.MinimumStock > 0 {
				qty = int64(it.Level.MinimumStock)
			} else {
				qty = fallbackRestock
			}
		}
		if qty <= 0 {
			continue
		}

		cost := it.Level.UnitCost.Mul(decimal.NewFromInt(qty)).Round(2)
		investment = investment.Add(cost)
		out = append(out, dto.SuggestedPurchaseDTO{
			ProductID:         it.Level.ProductID,
			ProductCode:       it.Level.ProductCode,
			ProductName:       it.Level.ProductName,
			CurrentStock:      it.Level.CurrentStock,
			SuggestedQuantity: int(qty),
			EstimatedCost:     cost,
			Reason:            purchaseReason(it),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedCost.GreaterThan(out[j].EstimatedCost)
	})
	return out, investment
}

func purchaseReason(it riskItem) string {
	if it.Level.CurrentStock <= 0 && it.Rate.IsZero() {
		return "Sin stock y sin historial de ventas, reponer al nivel base"
	}
	if it.Tier == RiskCritical {
		return "Riesgo crítico de quiebre, stock para " + it.Days.Round(1).String() + " días"
	}
	return "Riesgo alto de quiebre, stock para " + it.Days.Round(1).String() + " días"
}
