package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock aplica el delta sobre el stock actual de forma atómica y
	// devuelve el stock resultante. Falla con ErrInsufficientStock si el
	// resultado sería negativo.
	UpdateStock(id string, delta int64) (int64, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit int) ([]*entity.Product, error)
	Delete(id string) error
}
