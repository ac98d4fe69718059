package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/domain/settlement"
)

// CheckoutUseCase cierra una venta en caja: valida el carrito, liquida totales
// con el calculador de dominio, valida el pago (simple o dividido) y persiste
// venta, líneas, pagos y salidas de stock en una sola transacción.
type CheckoutUseCase struct {
	txRunner     CheckoutTxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	receipts     ReceiptGenerator
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner CheckoutTxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	receipts ReceiptGenerator,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		receipts:     receipts,
	}
}

// Checkout procesa el cobro. El flujo es lineal, sin reintentos: cualquier
// rechazo (stock, pago corto) revierte todo y el cajero corrige la entrada.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, cashierID string, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(in.SplitPayments) > 0 && in.Method != "" {
		// pago simple y dividido son excluyentes
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional: si viene, debe existir
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar productos y congelar precios (lectura fuera de la tx)
	productsByID := make(map[string]*entity.Product, len(in.Items))
	lines := make([]settlement.LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.Stock < item.Quantity {
			return nil, domain.ErrInsufficientStock
		}
		productsByID[item.ProductID] = product
		lines = append(lines, settlement.LineItem{UnitPrice: product.Price, Quantity: item.Quantity})
	}

	// Liquidación: subtotal → descuento → total → validación del pago → cambio
	subtotal := settlement.ComputeTotals(lines, decimal.Zero).Subtotal
	discount := decimal.Zero
	if in.DiscountKind != "" {
		discount = settlement.ComputeDiscountAmount(subtotal, in.DiscountValue, settlement.DiscountKind(in.DiscountKind))
	}
	totals := settlement.ComputeTotals(lines, discount)

	var tendered decimal.Decimal
	var payments []entity.SalePayment
	if len(in.SplitPayments) > 0 {
		entries := make([]settlement.SplitEntry, 0, len(in.SplitPayments))
		for _, sp := range in.SplitPayments {
			method, ok := settlement.ParsePaymentMethod(sp.Method)
			if !ok {
				return nil, domain.ErrInvalidInput
			}
			entries = append(entries, settlement.SplitEntry{Amount: sp.Amount, Method: method})
		}
		if err := settlement.ValidateSplitPayment(entries, totals.Total); err != nil {
			return nil, err
		}
		tendered = settlement.SplitTendered(entries)
		for _, e := range entries {
			payments = append(payments, entity.SalePayment{Method: e.Method, Amount: settlement.Round2(e.Amount)})
		}
	} else {
		method, ok := settlement.ParsePaymentMethod(in.Method)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		if err := settlement.ValidateSinglePayment(in.AmountPaid, totals.Total, method); err != nil {
			return nil, err
		}
		tendered = settlement.Round2(in.AmountPaid)
		if method != settlement.MethodCash {
			// La pasarela cobra exacto; el registro guarda el total
			tendered = totals.Total
		}
		payments = append(payments, entity.SalePayment{Method: method, Amount: tendered})
	}
	change := settlement.ComputeChange(tendered, totals.Total)

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		Number:     fmt.Sprintf("POS-%d", now.Unix()),
		CustomerID: in.CustomerID,
		CashierID:  cashierID,
		Subtotal:   totals.Subtotal,
		Discount:   totals.Discount,
		Total:      totals.Total,
		Tendered:   tendered,
		Change:     change,
		CreatedAt:  now,
	}

	var items []*entity.SaleItem
	err := uc.txRunner.RunCheckout(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Salida de stock por cada línea; sin stock → rollback completo
		for _, item := range in.Items {
			if err := inventory.RegisterSaleOUTInTx(
				movRepo, productRepo,
				item.ProductID, cashierID, sale.ID,
				item.Quantity,
			); err != nil {
				return err
			}
		}

		// 2) Cabecera, líneas y pagos
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			product := productsByID[item.ProductID]
			line := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: product.ID,
				SKU:       product.SKU,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  item.Quantity,
				Subtotal:  settlement.Round2(product.Price.Mul(decimal.NewFromInt(item.Quantity))),
			}
			if err := saleRepo.CreateItem(line); err != nil {
				return err
			}
			items = append(items, line)
		}
		for i := range payments {
			payments[i].ID = uuid.New().String()
			payments[i].SaleID = sale.ID
			if err := saleRepo.CreatePayment(&payments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items, payments), nil
}

// GetSale obtiene una venta con líneas y pagos.
func (uc *CheckoutUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	paymentPtrs, err := uc.saleRepo.GetPaymentsBySaleID(id)
	if err != nil {
		return nil, err
	}
	payments := make([]entity.SalePayment, 0, len(paymentPtrs))
	for _, p := range paymentPtrs {
		payments = append(payments, *p)
	}
	return toSaleResponse(sale, items, payments), nil
}

// ListSales lista ventas con paginación (bitácora financiera).
func (uc *CheckoutUseCase) ListSales(limit, offset int) (*dto.SaleListResponse, error) {
	sales, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, dto.SaleResponse{
			ID:         s.ID,
			Number:     s.Number,
			CustomerID: s.CustomerID,
			CashierID:  s.CashierID,
			Subtotal:   s.Subtotal,
			Discount:   s.Discount,
			Total:      s.Total,
			Tendered:   s.Tendered,
			Change:     s.Change,
			CreatedAt:  s.CreatedAt,
		})
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ReceiptPDF genera el ticket PDF de una venta.
func (uc *CheckoutUseCase) ReceiptPDF(id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.saleRepo.GetPaymentsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.Generate(sale, items, payments)
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, payments []entity.SalePayment) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         sale.ID,
		Number:     sale.Number,
		CustomerID: sale.CustomerID,
		CashierID:  sale.CashierID,
		Subtotal:   sale.Subtotal,
		Discount:   sale.Discount,
		Total:      sale.Total,
		Tendered:   sale.Tendered,
		Change:     sale.Change,
		Items:      make([]dto.SaleItemResponse, 0, len(items)),
		Payments:   make([]dto.SalePaymentResponse, 0, len(payments)),
		CreatedAt:  sale.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.SalePaymentResponse{
			Method: string(p.Method),
			Amount: p.Amount,
		})
	}
	return resp
}
