package repository

import (
	"context"

	"github.com/profitzen/analytics-api/internal/domain/entity"
)

// StoreInventoryRepository lecturas sobre los niveles de stock por tienda.
type StoreInventoryRepository interface {
	// GetLowStock productos con CurrentStock <= MinimumStock, ordenados por
	// stock ascendente.
	GetLowStock(ctx context.Context, tenantID, storeID string) ([]entity.StoreInventoryLevel, error)
	// ListByStore todos los niveles de la tienda.
	ListByStore(ctx context.Context, tenantID, storeID string) ([]entity.StoreInventoryLevel, error)
}
