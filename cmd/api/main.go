package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/profitzen/analytics-api/internal/application/analytics"
	appinventory "github.com/profitzen/analytics-api/internal/application/inventory"
	infraai "github.com/profitzen/analytics-api/internal/infrastructure/ai"
	infrapdf "github.com/profitzen/analytics-api/internal/infrastructure/pdf"
	"github.com/profitzen/analytics-api/internal/infrastructure/postgres"
	httpRouter "github.com/profitzen/analytics-api/internal/interfaces/http"
	"github.com/profitzen/analytics-api/pkg/config"
	"github.com/profitzen/analytics-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Adaptadores de persistencia (lecturas sobre el pool)
	salesRepo := postgres.NewSalesLedgerRepository(pool)
	summaryRepo := postgres.NewDailySummaryRepository(pool)
	perfRepo := postgres.NewProductPerformanceRepository(pool)
	inventoryRepo := postgres.NewStoreInventoryRepository(pool)
	rollupRunner := postgres.NewRollupTxRunner(pool)

	// Adaptadores externos
	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	reportExporter := infrapdf.NewMarotoReportExporter()

	// Casos de uso
	dashboardUC := appanalytics.NewDashboardUseCase(salesRepo, inventoryRepo, cfg.Analytics, log)
	reportUC := appanalytics.NewReportUseCase(summaryRepo, perfRepo, reportExporter, cfg.Analytics)
	rollupUC := appanalytics.NewRollupUseCase(rollupRunner, cfg.Analytics, log)
	lowStockUC := appinventory.NewLowStockUseCase(inventoryRepo)
	insightUC := appinventory.NewInsightUseCase(perfRepo, inventoryRepo, anthropicSvc, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Profitzen Analytics API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		RollupUC:    rollupUC,
		LowStockUC:  lowStockUC,
		InsightUC:   insightUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
