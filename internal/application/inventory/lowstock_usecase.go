package inventory

import (
	"context"
	"fmt"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

// LowStockUseCase lista los productos en o bajo su stock mínimo.
type LowStockUseCase struct {
	inventoryRepo repository.StoreInventoryRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(inventoryRepo repository.StoreInventoryRepository) *LowStockUseCase {
	return &LowStockUseCase{inventoryRepo: inventoryRepo}
}

// GetLowStock alertas de stock bajo de la tienda con su severidad.
func (uc *LowStockUseCase) GetLowStock(ctx context.Context, tenantID, storeID string) ([]dto.LowStockItemDTO, error) {
	levels, err := uc.inventoryRepo.GetLowStock(ctx, tenantID, storeID)
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}
	out := make([]dto.LowStockItemDTO, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.LowStockItemDTO{
			ProductID:    l.ProductID,
			ProductCode:  l.ProductCode,
			ProductName:  l.ProductName,
			CurrentStock: l.CurrentStock,
			MinimumStock: l.MinimumStock,
			Severity:     l.Severity(),
		})
	}
	return out, nil
}
