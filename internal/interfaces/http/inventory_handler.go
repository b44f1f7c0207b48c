package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/application/inventory"
	"github.com/profitzen/analytics-api/pkg/logger"
)

// InventoryHandler maneja las alertas de stock y el informe de insights.
type InventoryHandler struct {
	lowStockUC *inventory.LowStockUseCase
	insightUC  *inventory.InsightUseCase
	log        *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(lowStockUC *inventory.LowStockUseCase, insightUC *inventory.InsightUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{lowStockUC: lowStockUC, insightUC: insightUC, log: log}
}

func (h *InventoryHandler) fail(c *fiber.Ctx, op string, err error) error {
	h.log.Error().Err(err).Str("op", op).Str("tenant_id", GetTenantID(c)).Msg("inventario: operación fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL_ERROR", Message: "datos no disponibles, intente más tarde",
	})
}

// GetLowStock godoc
// @Summary      Productos en o bajo su stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	items, err := h.lowStockUC.GetLowStock(c.Context(), GetTenantID(c), GetStoreID(c))
	if err != nil {
		return h.fail(c, "low_stock", err)
	}
	return c.JSON(items)
}

// GetInventoryInsights godoc
// @Summary      Informe de insights de inventario
// @Description  Riesgo de quiebre de stock, plan de compras sugerido, stock muerto
//               y resumen narrativo (IA con fallback determinístico).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryInsightReportDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/inventory/insights [get]
func (h *InventoryHandler) GetInventoryInsights(c *fiber.Ctx) error {
	report, err := h.insightUC.GetInventoryInsights(c.Context(), GetTenantID(c), GetStoreID(c), time.Now())
	if err != nil {
		return h.fail(c, "inventory_insights", err)
	}
	return c.JSON(report)
}
