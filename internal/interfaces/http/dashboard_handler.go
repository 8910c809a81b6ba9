package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/domain"
)

// DashboardHandler maneja el resumen de preparación del tablero principal.
type DashboardHandler struct {
	dashboard *appforecast.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(dashboard *appforecast.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetSummary godoc
// @Summary      Resumen de preparación de un niño
// @Description  Conteo de lotes por estado, días de cobertura (mínimo entre
//
//	categorías con stock), puntaje 0-100 y gasto mensual proyectado.
//
// @Tags         dashboard
// @Produce      json
// @Param        id  path  string  true  "ID del niño"
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/children/{id}/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	childID := c.Params("id")

	summary, err := h.dashboard.ComputeSummary(c.Context(), childID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "niño no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	counts := make(map[string]int, len(summary.CountsByBucket))
	for bucket, n := range summary.CountsByBucket {
		counts[string(bucket)] = n
	}

	return c.JSON(dto.DashboardSummaryDTO{
		ChildID:               summary.ChildID,
		AsOf:                  summary.AsOf,
		CountsByBucket:        counts,
		ReadinessScore:        summary.ReadinessScore,
		DaysOfCoverage:        summary.DaysOfCoverage,
		EstimatedMonthlySpend: appforecast.EstimatedMonthlySpend(summary),
		Categories:            toCategoryForecastDTOs(summary.ChildID, summary.Categories, summary.AsOf),
	})
}
