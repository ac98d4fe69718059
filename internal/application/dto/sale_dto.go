package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItemRequest una línea del carrito en caja.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// SplitPaymentRequest un instrumento dentro de un pago dividido.
type SplitPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // CASH, CARD, TRANSFER, MOBILE
}

// CheckoutRequest entrada del cobro en caja. El pago es de un solo
// instrumento (Method + AmountPaid) o dividido (SplitPayments, excluyente).
// El descuento llega como tipo + valor y se resuelve a monto en el servidor.
type CheckoutRequest struct {
	CustomerID    string                `json:"customer_id"`
	Items         []CheckoutItemRequest `json:"items" validate:"required,min=1"`
	DiscountKind  string                `json:"discount_kind"`  // PERCENTAGE | FIXED | vacío
	DiscountValue decimal.Decimal       `json:"discount_value"`
	Method        string                `json:"method"`
	AmountPaid    decimal.Decimal       `json:"amount_paid"`
	SplitPayments []SplitPaymentRequest `json:"split_payments"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalePaymentResponse instrumento cobrado en una venta.
type SalePaymentResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse salida de una venta liquidada.
type SaleResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	CustomerID string                `json:"customer_id,omitempty"`
	CashierID  string                `json:"cashier_id"`
	Subtotal   decimal.Decimal       `json:"subtotal"`
	Discount   decimal.Decimal       `json:"discount"`
	Total      decimal.Decimal       `json:"total"`
	Tendered   decimal.Decimal       `json:"tendered"`
	Change     decimal.Decimal       `json:"change"`
	Items      []SaleItemResponse    `json:"items"`
	Payments   []SalePaymentResponse `json:"payments"`
	CreatedAt  time.Time             `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
