package entity

// SaleStatus estado del documento de venta en el ledger transaccional.
// Solo las ventas Completed alimentan la agregación; los repositorios del
// ledger reciben el estado como parámetro de consulta.
type SaleStatus int

const (
	SalePending   SaleStatus = 1
	SaleCompleted SaleStatus = 2
	SaleRefunded  SaleStatus = 4
)

// PaymentMethod medio de pago registrado en la venta.
type PaymentMethod int

const (
	PaymentCash          PaymentMethod = 1 // Efectivo
	PaymentCard          PaymentMethod = 2 // Tarjeta
	PaymentTransfer      PaymentMethod = 3 // Transferencia
	PaymentDigitalWallet PaymentMethod = 4 // Yape / Plin
	PaymentCredit        PaymentMethod = 5 // Crédito (fiado)
)

// Label nombre legible del medio de pago para reportes.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCash:
		return "Efectivo"
	case PaymentCard:
		return "Tarjeta"
	case PaymentTransfer:
		return "Transferencia"
	case PaymentDigitalWallet:
		return "Billetera digital"
	case PaymentCredit:
		return "Crédito"
	default:
		return "Otro"
	}
}
