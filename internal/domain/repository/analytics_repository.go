package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary agregado de ventas para el dashboard.
type SalesSummary struct {
	SaleCount     int64
	Revenue       decimal.Decimal
	DiscountTotal decimal.Decimal
	ByMethod      map[string]decimal.Decimal // monto cobrado por instrumento
}

// AnalyticsRepository consultas agregadas de solo lectura para reportes.
type AnalyticsRepository interface {
	SalesSummary(from, to time.Time) (*SalesSummary, error)
	TopProducts(from, to time.Time, limit int) ([]ProductSales, error)
}

// ProductSales ventas acumuladas de un producto en un rango.
type ProductSales struct {
	ProductID string
	Name      string
	Quantity  int64
	Revenue   decimal.Decimal
}
