package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// StockUseCase registra movimientos de stock (entradas, salidas y
// conciliaciones) aplicando el delta al producto y el registro del kardex en
// una sola transacción.
type StockUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, movRepo: movRepo}
}

// RegisterMovement aplica un movimiento manual. IN suma, OUT resta (falla con
// ErrInsufficientStock si no alcanza), ADJUSTMENT lleva el stock a la cantidad
// contada y registra el delta resultante.
func (uc *StockUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var delta int64
		switch in.Type {
		case entity.MovementIN:
			if in.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			delta = in.Quantity
		case entity.MovementOUT:
			if in.Quantity <= 0 {
				return domain.ErrInvalidInput
			}
			delta = -in.Quantity
		case entity.MovementAdjustment:
			// Quantity es el stock contado; el delta sale de la diferencia
			if in.Quantity < 0 {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByID(in.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			delta = in.Quantity - product.Stock
		default:
			return domain.ErrInvalidInput
		}

		movement, err := applyMovement(movRepo, productRepo, applyMovementInput{
			ProductID: in.ProductID,
			UserID:    userID,
			Type:      in.Type,
			Delta:     delta,
			Reason:    in.Reason,
		})
		if err != nil {
			return err
		}
		out = toMovementResponse(movement)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterSaleOUTInTx registra la salida de stock de una línea de venta usando
// los repos de la transacción abierta por el checkout. La referencia a la venta
// queda en el movimiento para auditoría.
func RegisterSaleOUTInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID, userID, saleID string,
	quantity int64,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	_, err := applyMovement(movRepo, productRepo, applyMovementInput{
		ProductID: productID,
		UserID:    userID,
		Type:      entity.MovementOUT,
		Delta:     -quantity,
		Reason:    "venta",
		SaleID:    saleID,
	})
	return err
}

// ListByProduct lista el kardex de un producto.
func (uc *StockUseCase) ListByProduct(productID string, limit, offset int) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

type applyMovementInput struct {
	ProductID string
	UserID    string
	Type      string
	Delta     int64
	Reason    string
	SaleID    string
}

// applyMovement aplica el delta al stock del producto (atómico en DB) y
// persiste el registro del kardex con el stock resultante.
func applyMovement(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in applyMovementInput,
) (*entity.StockMovement, error) {
	stockAfter, err := productRepo.UpdateStock(in.ProductID, in.Delta)
	if err != nil {
		return nil, err
	}
	movement := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		UserID:     in.UserID,
		Type:       in.Type,
		Quantity:   in.Delta,
		StockAfter: stockAfter,
		Reason:     in.Reason,
		SaleID:     in.SaleID,
		CreatedAt:  time.Now(),
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return movement, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		StockAfter: m.StockAfter,
		Reason:     m.Reason,
		SaleID:     m.SaleID,
		CreatedAt:  m.CreatedAt,
	}
}
