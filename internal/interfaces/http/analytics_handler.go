package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/profitzen/analytics-api/internal/application/analytics"
	"github.com/profitzen/analytics-api/internal/application/dto"
	"github.com/profitzen/analytics-api/internal/domain"
	"github.com/profitzen/analytics-api/pkg/logger"
)

// AnalyticsHandler maneja los endpoints del dashboard, reportes y regeneración.
type AnalyticsHandler struct {
	dashboardUC *analytics.DashboardUseCase
	reportUC    *analytics.ReportUseCase
	rollupUC    *analytics.RollupUseCase
	log         *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	dashboardUC *analytics.DashboardUseCase,
	reportUC *analytics.ReportUseCase,
	rollupUC *analytics.RollupUseCase,
	log *logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		dashboardUC: dashboardUC,
		reportUC:    reportUC,
		rollupUC:    rollupUC,
		log:         log,
	}
}

// fail mapea errores de use case a respuestas HTTP. El detalle de los errores
// internos queda en el log, nunca en el cuerpo de la respuesta.
func (h *AnalyticsHandler) fail(c *fiber.Ctx, op string, err error) error {
	if errors.Is(err, domain.ErrInvalidDateRange) || errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	}
	h.log.Error().Err(err).Str("op", op).Str("tenant_id", GetTenantID(c)).Msg("analytics: operación fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL_ERROR", Message: "datos no disponibles, intente más tarde",
	})
}

// dateRange lee start_date/end_date con defaults: primer día del mes y hoy.
func dateRange(c *fiber.Ctx) (string, string) {
	now := time.Now().UTC()
	start := c.Query("start_date")
	if start == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	end := c.Query("end_date")
	if end == "" {
		end = now.Format("2006-01-02")
	}
	return start, end
}

// GetDashboard godoc
// @Summary      Dashboard comercial de la tienda
// @Description  KPIs de hoy/semana/mes con crecimientos, serie diaria de 30 días,
//               top 5 productos, medios de pago del mes y alertas de stock bajo.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := h.dashboardUC.GetDashboard(c.Context(), GetTenantID(c), GetStoreID(c), time.Now())
	if err != nil {
		return h.fail(c, "dashboard", err)
	}
	return c.JSON(dashboard)
}

// GetSalesReport godoc
// @Summary      Reporte de ventas por rango de fechas
// @Description  Totales y detalle diario sobre los rollups; refleja la última regeneración.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD, fecha local). Default: primer día del mes."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD, fecha local, inclusive). Default: hoy."
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/report [get]
func (h *AnalyticsHandler) GetSalesReport(c *fiber.Ctx) error {
	start, end := dateRange(c)
	report, err := h.reportUC.GetSalesReport(c.Context(), GetTenantID(c), GetStoreID(c), start, end)
	if err != nil {
		return h.fail(c, "sales_report", err)
	}
	return c.JSON(report)
}

// ExportSalesReportPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD, fecha local)."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD, fecha local, inclusive)."
// @Param        store_name  query  string  false  "Nombre de la tienda para el encabezado."
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/report/pdf [get]
func (h *AnalyticsHandler) ExportSalesReportPDF(c *fiber.Ctx) error {
	start, end := dateRange(c)
	storeName := c.Query("store_name", "Tienda")

	pdf, err := h.reportUC.ExportSalesReportPDF(c.Context(), GetTenantID(c), GetStoreID(c), storeName, start, end)
	if err != nil {
		return h.fail(c, "sales_report_pdf", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas-`+start+`-`+end+`.pdf"`)
	return c.Send(pdf)
}

// GetDailySummaries godoc
// @Summary      Resúmenes diarios del rango
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Inicio (YYYY-MM-DD, fecha local)."
// @Param        end_date    query  string  false  "Fin (YYYY-MM-DD, fecha local, inclusive)."
// @Success      200  {array}  dto.DailySummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/daily [get]
func (h *AnalyticsHandler) GetDailySummaries(c *fiber.Ctx) error {
	start, end := dateRange(c)
	days, err := h.reportUC.GetDailySummaries(c.Context(), GetTenantID(c), GetStoreID(c), start, end)
	if err != nil {
		return h.fail(c, "daily_summaries", err)
	}
	return c.JSON(days)
}

// ComparePeriods godoc
// @Summary      Comparación de dos períodos de ventas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        current_start   query  string  true  "Inicio del período actual (YYYY-MM-DD)."
// @Param        current_end     query  string  true  "Fin del período actual (YYYY-MM-DD)."
// @Param        previous_start  query  string  true  "Inicio del período previo (YYYY-MM-DD)."
// @Param        previous_end    query  string  true  "Fin del período previo (YYYY-MM-DD)."
// @Success      200  {object}  dto.PeriodComparisonDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/sales/comparison [get]
func (h *AnalyticsHandler) ComparePeriods(c *fiber.Ctx) error {
	var req dto.ComparePeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	cmp, err := h.reportUC.ComparePeriods(c.Context(), GetTenantID(c), GetStoreID(c), req)
	if err != nil {
		return h.fail(c, "compare_periods", err)
	}
	return c.JSON(cmp)
}

// GetTopProducts godoc
// @Summary      Top productos por ingreso histórico
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máx. productos (default 10)."
// @Success      200  {array}  dto.ProductPerformanceDTO
// @Router       /api/analytics/products/top [get]
func (h *AnalyticsHandler) GetTopProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	products, err := h.reportUC.GetTopProducts(c.Context(), GetTenantID(c), limit)
	if err != nil {
		return h.fail(c, "top_products", err)
	}
	return c.JSON(products)
}

// GetProductPerformance godoc
// @Summary      Desempeño histórico de todos los productos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductPerformanceDTO
// @Router       /api/analytics/products/performance [get]
func (h *AnalyticsHandler) GetProductPerformance(c *fiber.Ctx) error {
	products, err := h.reportUC.GetProductPerformance(c.Context(), GetTenantID(c))
	if err != nil {
		return h.fail(c, "product_performance", err)
	}
	return c.JSON(products)
}

// GenerateSummaries godoc
// @Summary      Regenera los rollups de la tienda
// @Description  Recalcula desde cero los resúmenes diarios y el desempeño por producto.
//               Serializado por tenant; solo admin y gerente.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GenerateSummariesResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/generate-summaries [post]
func (h *AnalyticsHandler) GenerateSummaries(c *fiber.Ctx) error {
	resp, err := h.rollupUC.GenerateSummaries(c.Context(), GetTenantID(c), GetStoreID(c), time.Now())
	if err != nil {
		return h.fail(c, "generate_summaries", err)
	}
	return c.JSON(resp)
}
