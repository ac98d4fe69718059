package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/settlement"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, COALESCE(customer_id, ''), cashier_id, subtotal, discount, total, tendered, change, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sales (id, number, customer_id, cashier_id, subtotal, discount, total, tendered, change, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`,
		sale.ID, sale.Number, sale.CustomerID, sale.CashierID,
		sale.Subtotal, sale.Discount, sale.Total, sale.Tendered, sale.Change, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sale_items (id, sale_id, product_id, sku, name, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.SaleID, item.ProductID, item.SKU, item.Name,
		item.UnitPrice, item.Quantity, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// CreatePayment persiste un instrumento de pago de la venta.
func (r *SaleRepo) CreatePayment(payment *entity.SalePayment) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO sale_payments (id, sale_id, method, amount)
		VALUES ($1, $2, $3, $4)`,
		payment.ID, payment.SaleID, string(payment.Method), payment.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert sale payment: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(),
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.Number, &s.CustomerID, &s.CashierID,
		&s.Subtotal, &s.Discount, &s.Total, &s.Tendered, &s.Change, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID obtiene las líneas de una venta.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, product_id, sku, name, unit_price, quantity, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY name ASC`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.SKU, &it.Name,
			&it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetPaymentsBySaleID obtiene los instrumentos de pago de una venta.
func (r *SaleRepo) GetPaymentsBySaleID(saleID string) ([]*entity.SalePayment, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, sale_id, method, amount FROM sale_payments WHERE sale_id = $1`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalePayment
	for rows.Next() {
		var p entity.SalePayment
		var method string
		if err := rows.Scan(&p.ID, &p.SaleID, &method, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan sale payment: %w", err)
		}
		p.Method = settlement.PaymentMethod(method)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista ventas con paginación, de la más reciente a la más antigua.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Number, &s.CustomerID, &s.CashierID,
			&s.Subtotal, &s.Discount, &s.Total, &s.Tendered, &s.Change, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
