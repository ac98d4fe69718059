package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas (cabecera, líneas y pagos).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	CreatePayment(payment *entity.SalePayment) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	GetPaymentsBySaleID(saleID string) ([]*entity.SalePayment, error)
	List(limit, offset int) ([]*entity.Sale, error)
}

// StockMovementRepository puerto de persistencia para el kardex de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
