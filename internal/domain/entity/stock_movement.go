package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementIN         = "IN"         // entrada por compra o devolución
	MovementOUT        = "OUT"        // salida por venta o merma
	MovementAdjustment = "ADJUSTMENT" // conciliación contra conteo físico
)

// StockMovement registro inmutable de cada cambio de stock de un producto.
// Quantity es el delta aplicado (negativo en OUT); StockAfter el stock
// resultante, para auditar la conciliación.
type StockMovement struct {
	ID         string
	ProductID  string
	UserID     string
	Type       string // IN, OUT, ADJUSTMENT
	Quantity   int64
	StockAfter int64
	Reason     string
	SaleID     string // referencia a la venta cuando el OUT viene de caja
	CreatedAt  time.Time
}
