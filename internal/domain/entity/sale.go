package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/settlement"
)

// Sale cabecera de una venta cerrada en caja. Los totales son los que produjo
// el calculador de liquidación en el momento del cobro; después de persistir
// no se mutan.
type Sale struct {
	ID         string
	Number     string // consecutivo legible del ticket
	CustomerID string // opcional
	CashierID  string // usuario que cerró la venta
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	Tendered   decimal.Decimal // total ofrecido (uno o varios instrumentos)
	Change     decimal.Decimal // cambio agregado entregado al cliente
	CreatedAt  time.Time
}

// SaleItem línea de la venta. UnitPrice es el precio congelado al cobrar,
// Subtotal = UnitPrice * Quantity redondeado.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	SKU       string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
	Subtotal  decimal.Decimal
}

// SalePayment un instrumento del pago (una venta puede dividirse en varios).
// Se construye al cobrar, se valida y jamás se muta después.
type SalePayment struct {
	ID     string
	SaleID string
	Method settlement.PaymentMethod
	Amount decimal.Decimal
}
