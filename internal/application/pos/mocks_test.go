package pos_test

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Dobles de prueba en memoria para el caso de uso de checkout.

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, delta int64) (int64, error) {
	p, ok := r.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, domain.ErrInsufficientStock
	}
	p.Stock += delta
	return p.Stock, nil
}
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error)                  { return nil, nil }
func (r *fakeProductRepo) ListByCategory(string, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListLowStock(int) ([]*entity.Product, error)               { return nil, nil }
func (r *fakeProductRepo) Delete(string) error                                       { return nil }

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) Update(c *entity.Customer) error            { return nil }
func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error)  { return nil, nil }
func (r *fakeCustomerRepo) Delete(string) error                        { return nil }

type fakeSaleRepo struct {
	sales    []*entity.Sale
	items    []*entity.SaleItem
	payments []*entity.SalePayment
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error             { r.sales = append(r.sales, s); return nil }
func (r *fakeSaleRepo) CreateItem(i *entity.SaleItem) error     { r.items = append(r.items, i); return nil }
func (r *fakeSaleRepo) CreatePayment(p *entity.SalePayment) error {
	r.payments = append(r.payments, p)
	return nil
}
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}
func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, i := range r.items {
		if i.SaleID == saleID {
			out = append(out, i)
		}
	}
	return out, nil
}
func (r *fakeSaleRepo) GetPaymentsBySaleID(saleID string) ([]*entity.SalePayment, error) {
	var out []*entity.SalePayment
	for _, p := range r.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeSaleRepo) List(int, int) ([]*entity.Sale, error) { return r.sales, nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) ListByProduct(string, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes. Si el
// callback falla, descarta lo escrito (simula el rollback).
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
	saleRepo    *fakeSaleRepo
}

func (r *fakeTxRunner) RunCheckout(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	// Copia para poder "revertir" en caso de error
	backupStock := make(map[string]int64)
	for id, p := range r.productRepo.products {
		backupStock[id] = p.Stock
	}
	backupMovs := len(r.movRepo.movements)
	backupSales := len(r.saleRepo.sales)
	backupItems := len(r.saleRepo.items)
	backupPays := len(r.saleRepo.payments)

	if err := fn(r.movRepo, r.productRepo, r.saleRepo); err != nil {
		for id, stock := range backupStock {
			r.productRepo.products[id].Stock = stock
		}
		r.movRepo.movements = r.movRepo.movements[:backupMovs]
		r.saleRepo.sales = r.saleRepo.sales[:backupSales]
		r.saleRepo.items = r.saleRepo.items[:backupItems]
		r.saleRepo.payments = r.saleRepo.payments[:backupPays]
		return err
	}
	return nil
}

type fakeReceipts struct{}

func (fakeReceipts) Generate(*entity.Sale, []*entity.SaleItem, []*entity.SalePayment) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}
