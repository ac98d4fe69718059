package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/pos"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/settlement"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

type checkoutFixture struct {
	uc          *pos.CheckoutUseCase
	productRepo *fakeProductRepo
	saleRepo    *fakeSaleRepo
	movRepo     *fakeMovementRepo
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	now := time.Now()
	productRepo := newFakeProductRepo(
		&entity.Product{ID: "p1", SKU: "CAM-001", Name: "Camiseta", Price: dec("8500"), Stock: 10, CreatedAt: now},
		&entity.Product{ID: "p2", SKU: "GOR-001", Name: "Gorra", Price: dec("3200"), Stock: 5, CreatedAt: now},
	)
	customerRepo := newFakeCustomerRepo(
		&entity.Customer{ID: "c1", Name: "Cliente Frecuente"},
	)
	saleRepo := &fakeSaleRepo{}
	movRepo := &fakeMovementRepo{}
	tx := &fakeTxRunner{movRepo: movRepo, productRepo: productRepo, saleRepo: saleRepo}
	uc := pos.NewCheckoutUseCase(tx, productRepo, customerRepo, saleRepo, fakeReceipts{})
	return &checkoutFixture{uc: uc, productRepo: productRepo, saleRepo: saleRepo, movRepo: movRepo}
}

// Escenario de referencia: 2×8500 + 1×3200, descuento fijo 1000, efectivo 20000.
func TestCheckout_EfectivoConCambio(t *testing.T) {
	f := newCheckoutFixture(t)

	out, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		DiscountKind:  string(settlement.DiscountFixed),
		DiscountValue: dec("1000"),
		Method:        "CASH",
		AmountPaid:    dec("20000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "20200.00", out.Subtotal.StringFixed(2))
	assert.Equal(t, "19200.00", out.Total.StringFixed(2))
	assert.Equal(t, "800.00", out.Change.StringFixed(2))
	assert.Len(t, out.Items, 2)
	assert.Len(t, out.Payments, 1)

	// El stock bajó y quedó kardex con referencia a la venta
	p1, _ := f.productRepo.GetByID("p1")
	assert.Equal(t, int64(8), p1.Stock)
	require.Len(t, f.movRepo.movements, 2)
	assert.Equal(t, out.ID, f.movRepo.movements[0].SaleID)
	assert.Equal(t, entity.MovementOUT, f.movRepo.movements[0].Type)
}

func TestCheckout_EfectivoInsuficiente(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
		DiscountKind:  string(settlement.DiscountFixed),
		DiscountValue: dec("1000"),
		Method:        "CASH",
		AmountPaid:    dec("19000"),
	})
	assert.ErrorIs(t, err, settlement.ErrInsufficientPayment)

	// Nada persistido, stock intacto
	assert.Empty(t, f.saleRepo.sales)
	p1, _ := f.productRepo.GetByID("p1")
	assert.Equal(t, int64(10), p1.Stock)
}

func TestCheckout_PagoDividido(t *testing.T) {
	f := newCheckoutFixture(t)

	out, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 2}},
		SplitPayments: []dto.SplitPaymentRequest{
			{Amount: dec("10000"), Method: "CASH"},
			{Amount: dec("7000"), Method: "CARD"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "17000.00", out.Total.StringFixed(2))
	assert.Equal(t, "0.00", out.Change.StringFixed(2))
	assert.Len(t, out.Payments, 2)
	assert.Len(t, f.saleRepo.payments, 2)
}

func TestCheckout_PagoDivididoInsuficiente(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 2}},
		SplitPayments: []dto.SplitPaymentRequest{
			{Amount: dec("10000"), Method: "CASH"},
		},
	})
	assert.ErrorIs(t, err, settlement.ErrSplitUnderpaid)
	assert.Empty(t, f.saleRepo.sales)
}

func TestCheckout_StockInsuficiente(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items:  []dto.CheckoutItemRequest{{ProductID: "p2", Quantity: 50}},
		Method: "CASH", AmountPaid: dec("999999"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.saleRepo.sales)
	assert.Empty(t, f.movRepo.movements)
}

// Tarjeta cobra exacto vía pasarela: no se compara AmountPaid y no hay cambio.
func TestCheckout_TarjetaNoValidaMonto(t *testing.T) {
	f := newCheckoutFixture(t)

	out, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items:  []dto.CheckoutItemRequest{{ProductID: "p2", Quantity: 1}},
		Method: "CARD",
	})
	require.NoError(t, err)
	assert.Equal(t, "3200.00", out.Tendered.StringFixed(2))
	assert.Equal(t, "0.00", out.Change.StringFixed(2))
}

func TestCheckout_PagoSimpleYDivididoExcluyentes(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
		Method:        "CASH",
		AmountPaid:    dec("10000"),
		SplitPayments: []dto.SplitPaymentRequest{{Amount: dec("10000"), Method: "CARD"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheckout_ClienteInexistente(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		CustomerID: "no-existe",
		Items:      []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
		Method:     "CASH", AmountPaid: dec("10000"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckout_DescuentoPorcentualMayorAlSubtotal(t *testing.T) {
	f := newCheckoutFixture(t)

	// 100% de descuento: total 0, cualquier efectivo alcanza
	out, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items:         []dto.CheckoutItemRequest{{ProductID: "p2", Quantity: 1}},
		DiscountKind:  string(settlement.DiscountPercentage),
		DiscountValue: dec("100"),
		Method:        "CASH",
		AmountPaid:    dec("0"),
	})
	require.NoError(t, err)
	assert.True(t, out.Total.IsZero())
}

func TestGetSale_ConLineasYPagos(t *testing.T) {
	f := newCheckoutFixture(t)

	created, err := f.uc.Checkout(context.Background(), "cajero-1", dto.CheckoutRequest{
		Items:  []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: 1}},
		Method: "CASH", AmountPaid: dec("8500"),
	})
	require.NoError(t, err)

	got, err := f.uc.GetSale(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 1)
	assert.Len(t, got.Payments, 1)
	assert.Equal(t, "CASH", got.Payments[0].Method)
}
