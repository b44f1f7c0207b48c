package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/profitzen/analytics-api/internal/application/analytics"
	"github.com/profitzen/analytics-api/internal/application/inventory"
	"github.com/profitzen/analytics-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	RollupUC    *analytics.RollupUseCase
	LowStockUC  *inventory.LowStockUseCase
	InsightUC   *inventory.InsightUseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Todo el módulo de analítica requiere Bearer Token
	analyticsGroup := api.Group("/analytics", AuthMiddleware(deps.JWTSecret))

	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.ReportUC, deps.RollupUC, deps.Log)
	analyticsGroup.Get("/dashboard", analyticsHandler.GetDashboard)
	analyticsGroup.Get("/sales/report", analyticsHandler.GetSalesReport)
	analyticsGroup.Get("/sales/report/pdf", analyticsHandler.ExportSalesReportPDF)
	analyticsGroup.Get("/sales/daily", analyticsHandler.GetDailySummaries)
	analyticsGroup.Get("/sales/comparison", analyticsHandler.ComparePeriods)
	analyticsGroup.Get("/products/top", analyticsHandler.GetTopProducts)
	analyticsGroup.Get("/products/performance", analyticsHandler.GetProductPerformance)

	// La regeneración es destructiva: solo admin y gerente
	analyticsGroup.Post("/generate-summaries",
		RequireRole("admin", "gerente"),
		analyticsHandler.GenerateSummaries,
	)

	inventoryHandler := NewInventoryHandler(deps.LowStockUC, deps.InsightUC, deps.Log)
	analyticsGroup.Get("/inventory/low-stock", inventoryHandler.GetLowStock)
	analyticsGroup.Get("/inventory/insights", inventoryHandler.GetInventoryInsights)
}
