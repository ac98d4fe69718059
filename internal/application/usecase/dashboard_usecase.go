package usecase

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

const topProductsLimit = 5

// DashboardUseCase arma el resumen del panel: ventas del rango, productos más
// vendidos y alertas de stock bajo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, productRepo repository.ProductRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, productRepo: productRepo}
}

// Summary devuelve el resumen del rango [from, to). Si el rango viene vacío se
// usa el día en curso.
func (uc *DashboardUseCase) Summary(from, to time.Time) (*dto.DashboardResponse, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return nil, domain.ErrInvalidInput
	}

	summary, err := uc.analyticsRepo.SalesSummary(from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.analyticsRepo.TopProducts(from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock(20)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		From:          from.Format(time.RFC3339),
		To:            to.Format(time.RFC3339),
		SaleCount:     summary.SaleCount,
		Revenue:       summary.Revenue,
		DiscountTotal: summary.DiscountTotal,
		ByMethod:      summary.ByMethod,
		TopProducts:   make([]dto.TopProductResponse, 0, len(top)),
		LowStock:      make([]dto.ProductResponse, 0, len(lowStock)),
	}
	for _, p := range top {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   p.Revenue,
		})
	}
	for _, p := range lowStock {
		resp.LowStock = append(resp.LowStock, dto.ProductResponse{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			ReorderLevel: p.ReorderLevel,
			LowStock:     true,
			ImageURL:     p.ImageURL,
		})
	}
	return resp, nil
}
