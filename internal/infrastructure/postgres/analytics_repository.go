package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard. Siempre sobre el
// pool (no participa en transacciones).
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SalesSummary agrega las ventas del rango [from, to): conteo, ingreso,
// descuento total y monto cobrado por instrumento.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) SalesSummary(from, to time.Time) (*repository.SalesSummary, error) {
	const query = `
	SELECT
	    COUNT(*)                       AS sale_count,
	    COALESCE(SUM(total), 0)        AS revenue,
	    COALESCE(SUM(discount), 0)     AS discount_total
	FROM sales
	WHERE created_at >= $1 AND created_at < $2`

	summary := &repository.SalesSummary{ByMethod: make(map[string]decimal.Decimal)}
	err := r.pool.QueryRow(context.Background(), query, from, to).
		Scan(&summary.SaleCount, &summary.Revenue, &summary.DiscountTotal)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesSummary: %w", err)
	}

	const byMethodQuery = `
	SELECT p.method, COALESCE(SUM(p.amount), 0) AS amount
	FROM sale_payments p
	JOIN sales s ON s.id = p.sale_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY p.method`

	rows, err := r.pool.Query(context.Background(), byMethodQuery, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesSummary by method: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var amount decimal.Decimal
		if err := rows.Scan(&method, &amount); err != nil {
			return nil, fmt.Errorf("analytics.SalesSummary scan: %w", err)
		}
		summary.ByMethod[method] = amount
	}
	return summary, rows.Err()
}

// TopProducts devuelve los `limit` productos con mayor ingreso en el rango.
func (r *AnalyticsRepo) TopProducts(from, to time.Time, limit int) ([]repository.ProductSales, error) {
	const query = `
	SELECT
	    i.product_id,
	    i.name,
	    SUM(i.quantity)  AS quantity,
	    SUM(i.subtotal)  AS revenue
	FROM sale_items i
	JOIN sales s ON s.id = i.sale_id
	WHERE s.created_at >= $1 AND s.created_at < $2
	GROUP BY i.product_id, i.name
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(context.Background(), query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSales
	for rows.Next() {
		var row repository.ProductSales
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.TopProducts rows: %w", err)
	}
	if results == nil {
		results = []repository.ProductSales{}
	}
	return results, nil
}
