package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen del negocio para el panel principal.
type DashboardResponse struct {
	From          string                     `json:"from"`
	To            string                     `json:"to"`
	SaleCount     int64                      `json:"sale_count"`
	Revenue       decimal.Decimal            `json:"revenue"`
	DiscountTotal decimal.Decimal            `json:"discount_total"`
	ByMethod      map[string]decimal.Decimal `json:"by_method"`
	TopProducts   []TopProductResponse       `json:"top_products"`
	LowStock      []ProductResponse          `json:"low_stock"`
}

// TopProductResponse producto más vendido en el rango.
type TopProductResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}
