package pos

import (
	"context"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// CheckoutTxRunner abre una transacción con los repos que necesita el cobro:
// kardex, productos y ventas. Lo implementa infraestructura/postgres.
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptGenerator genera la representación PDF del ticket de una venta.
type ReceiptGenerator interface {
	Generate(sale *entity.Sale, items []*entity.SaleItem, payments []*entity.SalePayment) ([]byte, error)
}
