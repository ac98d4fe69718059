package settlement

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Resultados con nombre del validador de pago. Conjunto cerrado: el handler
// los traduce a código HTTP y mensaje para el cajero.
var (
	ErrInsufficientPayment = errors.New("INSUFFICIENT_PAYMENT")
	ErrSplitUnderpaid      = errors.New("SPLIT_UNDERPAID")
	ErrSplitInvalidAmount  = errors.New("SPLIT_INVALID_AMOUNT")
)

// PaymentMethod instrumento de pago de una venta.
type PaymentMethod string

// Métodos de pago válidos.
const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
	MethodMobile   PaymentMethod = "MOBILE"
)

// ParsePaymentMethod valida un método de pago recibido por la API.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodCash, MethodCard, MethodTransfer, MethodMobile:
		return PaymentMethod(s), true
	}
	return "", false
}

// DiscountKind tipo de descuento aplicado al carrito.
type DiscountKind string

// Tipos de descuento.
const (
	DiscountPercentage DiscountKind = "PERCENTAGE"
	DiscountFixed      DiscountKind = "FIXED"
)

// LineItem línea del carrito tal como la ve el calculador: precio unitario y
// cantidad. La validación de stock es del caso de uso, no de la aritmética.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Totals totales derivados del carrito. Se recalculan en cada mutación del
// carrito, nunca se mutan de forma independiente.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// SplitEntry un instrumento dentro de un pago dividido.
type SplitEntry struct {
	Amount decimal.Decimal
	Method PaymentMethod
}

// Round2 redondea a 2 decimales con regla half-up (para montos no negativos,
// Round de decimal — half away from zero — coincide con half-up: 10.005 → 10.01).
// Se aplica después de CADA operación aritmética para que el error de redondeo
// no se acumule a lo largo de subtotal → descuento → total → cambio.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeTotals calcula subtotal y total del carrito con un descuento ya
// resuelto en monto. Pura e idempotente: mismas entradas, mismos bits.
// Total nunca es negativo por grande que sea el descuento.
func ComputeTotals(items []LineItem, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	subtotal = Round2(subtotal)

	total := Round2(subtotal.Sub(discount))
	if total.IsNegative() {
		total = decimal.Zero.Round(2)
	}
	return Totals{
		Subtotal: subtotal,
		Discount: Round2(discount),
		Total:    total,
	}
}

// ComputeDiscountAmount resuelve un descuento (porcentual o fijo) a monto.
// En ambos casos el resultado se acota al subtotal: un descuento jamás produce
// un total negativo.
func ComputeDiscountAmount(subtotal, value decimal.Decimal, kind DiscountKind) decimal.Decimal {
	var amount decimal.Decimal
	switch kind {
	case DiscountPercentage:
		amount = Round2(subtotal.Mul(value).Div(decimal.NewFromInt(100)))
	case DiscountFixed:
		amount = Round2(value)
	default:
		return decimal.Zero.Round(2)
	}
	if amount.GreaterThan(subtotal) {
		amount = Round2(subtotal)
	}
	if amount.IsNegative() {
		amount = decimal.Zero.Round(2)
	}
	return amount
}

// ValidateSinglePayment valida el pago con un solo instrumento. Solo el
// efectivo se compara contra el total: para tarjeta/transferencia/billetera la
// pasarela externa es la autoridad del cobro; este chequeo existe únicamente
// para que el cajero no cierre una venta en efectivo por debajo del total.
func ValidateSinglePayment(amountPaid, total decimal.Decimal, method PaymentMethod) error {
	if method == MethodCash && amountPaid.LessThan(total) {
		return ErrInsufficientPayment
	}
	return nil
}

// ComputeChange calcula el cambio a entregar, nunca negativo.
func ComputeChange(amountPaid, total decimal.Decimal) decimal.Decimal {
	change := Round2(amountPaid.Sub(total))
	if change.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return change
}

// ValidateSplitPayment valida un pago dividido en varios instrumentos.
// La suma se redondea una sola vez al final, no por entrada, para no componer
// errores de redondeo. No hay tope superior: el sobrante se reporta como una
// sola cifra de cambio agregada, sin asignarlo a un instrumento en particular.
func ValidateSplitPayment(entries []SplitEntry, total decimal.Decimal) error {
	sum := decimal.Zero
	for _, e := range entries {
		if !e.Amount.GreaterThan(decimal.Zero) {
			return ErrSplitInvalidAmount
		}
		sum = sum.Add(e.Amount)
	}
	if Round2(sum).LessThan(total) {
		return ErrSplitUnderpaid
	}
	return nil
}

// SplitTendered suma total ofrecida en un pago dividido, redondeada al final.
func SplitTendered(entries []SplitEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return Round2(sum)
}
