package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo. Stock es el disponible de
// la tienda; se modifica únicamente vía movimientos (nunca por update directo).
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	CategoryID   string
	BrandID      string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo de compra
	Stock        int64
	ReorderLevel int64  // umbral de alerta de stock bajo
	ImageURL     string // URL pública en el bucket de imágenes
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el producto está en o por debajo del umbral de reposición.
func (p *Product) LowStock() bool {
	return p.Stock <= p.ReorderLevel
}
