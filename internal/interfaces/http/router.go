package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/alert"
	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/application/inventory"
	"github.com/jhoicas/Nido-api/internal/application/report"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EstimatorUC *appforecast.EstimatorUseCase
	SupplyUC    *appforecast.SupplyUseCase
	DashboardUC *appforecast.DashboardUseCase
	UsageUC     *inventory.UsageUseCase
	LotUC       *inventory.LotUseCase
	AlertCfgUC  *alert.ConfigUseCase
	EvaluatorUC *alert.EvaluatorUseCase
	ReportUC    *report.SupplyReportUseCase
	ChildRepo   repository.ChildRepository
	Clock       clock.Clock
}

// Router registra las rutas de la API. Todas exigen X-Caregiver-ID: la
// autenticación real vive en el gateway del hogar, aquí solo se propaga la
// identidad resuelta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", CaregiverMiddleware())

	// Consultas por niño
	children := api.Group("/children/:id")
	forecastHandler := NewForecastHandler(deps.EstimatorUC, deps.SupplyUC, deps.ChildRepo, deps.Clock)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	children.Get("/forecast", forecastHandler.GetForecast)
	children.Get("/estimate", forecastHandler.GetEstimate)
	children.Get("/dashboard", dashboardHandler.GetSummary)
	children.Get("/report", reportHandler.DownloadSupplyReport)

	// Eventos de consumo y lotes
	inventoryHandler := NewInventoryHandler(deps.UsageUC, deps.LotUC)
	api.Post("/usage-events", inventoryHandler.LogUsage)
	api.Delete("/usage-events/:id", inventoryHandler.VoidUsage)
	api.Post("/lots", inventoryHandler.RegisterLot)
	api.Post("/lots/:id/deliver", inventoryHandler.MarkDelivered)
	api.Post("/lots/:id/adjust", inventoryHandler.AdjustStock)
	api.Delete("/lots/:id", inventoryHandler.RemoveLot)
	children.Get("/lots", inventoryHandler.ListLots)

	// Alertas
	alertHandler := NewAlertHandler(deps.AlertCfgUC, deps.EvaluatorUC)
	api.Get("/children/:childId/alert-settings", alertHandler.GetConfig)
	api.Put("/children/:childId/alert-settings", alertHandler.SaveConfig)
	children.Get("/alerts", alertHandler.Evaluate)
}
