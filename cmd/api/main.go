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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Nido-api/internal/application/alert"
	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/application/inventory"
	"github.com/jhoicas/Nido-api/internal/application/report"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	infracache "github.com/jhoicas/Nido-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Nido-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Nido-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Nido-api/internal/interfaces/http"
	"github.com/jhoicas/Nido-api/pkg/config"
	"github.com/jhoicas/Nido-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	childRepo := postgres.NewChildRepository(pool)
	eventRepo := postgres.NewUsageEventRepository(pool)
	lotRepo := postgres.NewInventoryLotRepository(pool)
	alertCfgRepo := postgres.NewAlertConfigRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de estimaciones: opcional, REDIS_ADDR vacío lo desactiva.
	var estimateCache *infracache.RedisEstimateCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, continuando sin cache de estimaciones")
		} else {
			estimateCache = infracache.NewRedisEstimateCache(redisClient)
			defer redisClient.Close()
		}
	}

	clk := clock.NewSystem()
	th := domforecast.Thresholds{
		CriticalExpiryDays: cfg.Forecast.CriticalExpiryDays,
		LowExpiryDays:      cfg.Forecast.LowExpiryDays,
		FullCoverageDays:   cfg.Forecast.FullCoverageDays,
		DefaultDailyRate:   cfg.Forecast.DefaultDailyRate,
		WindowDays:         cfg.Forecast.WindowDays,
	}
	alertDefaults := entity.AlertConfig{
		LowStockThreshold:      cfg.Alert.LowStockThreshold,
		CriticalStockThreshold: cfg.Alert.CriticalStockThreshold,
		WindowDays:             cfg.Forecast.WindowDays,
	}

	// nil tipado: las interfaces de cache/invalidador aceptan "sin cache".
	var cachePort appforecast.EstimateCache
	var invalidatorPort inventory.EstimateInvalidator
	if estimateCache != nil {
		cachePort = estimateCache
		invalidatorPort = estimateCache
	}

	estimatorUC := appforecast.NewEstimatorUseCase(eventRepo, cachePort, th)
	supplyUC := appforecast.NewSupplyUseCase(lotRepo, estimatorUC, clk, th)
	dashboardUC := appforecast.NewDashboardUseCase(childRepo, lotRepo, supplyUC, clk, th)
	usageUC := inventory.NewUsageUseCase(txRunner, childRepo, invalidatorPort, clk)
	lotUC := inventory.NewLotUseCase(txRunner, lotRepo, childRepo, invalidatorPort, clk)
	alertCfgUC := alert.NewConfigUseCase(alertCfgRepo, clk, alertDefaults)
	evaluatorUC := alert.NewEvaluatorUseCase(lotRepo, alertCfgRepo, alertDefaults)

	// PDF: informe semanal de suministros por niño
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewSupplyReportUseCase(childRepo, dashboardUC, reportGenerator)

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
		Title:    "Nido API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EstimatorUC: estimatorUC,
		SupplyUC:    supplyUC,
		DashboardUC: dashboardUC,
		UsageUC:     usageUC,
		LotUC:       lotUC,
		AlertCfgUC:  alertCfgUC,
		EvaluatorUC: evaluatorUC,
		ReportUC:    reportUC,
		ChildRepo:   childRepo,
		Clock:       clk,
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
