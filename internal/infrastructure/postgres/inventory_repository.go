package postgres

import (
	"context"
	"fmt"

	"github.com/profitzen/analytics-api/internal/domain/entity"
	"github.com/profitzen/analytics-api/internal/domain/repository"
)

var _ repository.StoreInventoryRepository = (*StoreInventoryRepo)(nil)

// StoreInventoryRepo lecturas sobre store_inventory, que mantiene el
// servicio de inventario. Este módulo nunca escribe en estas tablas.
type StoreInventoryRepo struct {
	q Querier
}

// NewStoreInventoryRepository construye el adaptador.
func NewStoreInventoryRepository(q Querier) *StoreInventoryRepo {
	return &StoreInventoryRepo{q: q}
}

const inventorySelect = `
	SELECT i.tenant_id, i.store_id, i.product_id,
	       p.code, p.name,
	       i.current_stock, i.minimum_stock,
	       p.cost
	FROM store_inventory i
	JOIN products p ON p.id = i.product_id`

// GetLowStock productos en o bajo su stock mínimo, los más agotados primero.
func (r *StoreInventoryRepo) GetLowStock(ctx context.Context, tenantID, storeID string) ([]entity.StoreInventoryLevel, error) {
	const query = inventorySelect + `
	WHERE i.tenant_id = $1
	  AND i.store_id  = $2
	  AND i.current_stock <= i.minimum_stock
	ORDER BY i.current_stock`
	return r.list(ctx, query, tenantID, storeID)
}

// ListByStore todos los niveles de la tienda.
func (r *StoreInventoryRepo) ListByStore(ctx context.Context, tenantID, storeID string) ([]entity.StoreInventoryLevel, error) {
	const query = inventorySelect + `
	WHERE i.tenant_id = $1
	  AND i.store_id  = $2
	ORDER BY p.name`
	return r.list(ctx, query, tenantID, storeID)
}

func (r *StoreInventoryRepo) list(ctx context.Context, query string, args ...any) ([]entity.StoreInventoryLevel, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory.list: %w", err)
	}
	defer rows.Close()

	var out []entity.StoreInventoryLevel
	for rows.Next() {
		var l entity.StoreInventoryLevel
		if err := rows.Scan(
			&l.TenantID, &l.StoreID, &l.ProductID,
			&l.ProductCode, &l.ProductName,
			&l.CurrentStock, &l.MinimumStock,
			&l.UnitCost,
		); err != nil {
			return nil, fmt.Errorf("inventory.list scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
