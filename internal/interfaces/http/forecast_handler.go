package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// ForecastHandler maneja las consultas de pronóstico por niño.
type ForecastHandler struct {
	estimator *appforecast.EstimatorUseCase
	supply    *appforecast.SupplyUseCase
	childRepo repository.ChildRepository
	clk       clock.Clock
}

// NewForecastHandler construye el handler.
func NewForecastHandler(estimator *appforecast.EstimatorUseCase, supply *appforecast.SupplyUseCase, childRepo repository.ChildRepository, clk clock.Clock) *ForecastHandler {
	return &ForecastHandler{estimator: estimator, supply: supply, childRepo: childRepo, clk: clk}
}

// ensureChild verifica que el niño exista antes de calcular pronósticos; un
// niño inexistente responde 404 en vez de listas vacías.
func (h *ForecastHandler) ensureChild(c *fiber.Ctx, childID string) (bool, error) {
	if _, err := h.childRepo.GetByID(c.Context(), childID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "niño no encontrado"})
		}
		return false, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return true, nil
}

// GetForecast godoc
// @Summary      Pronóstico de suministro por categoría de un niño
// @Tags         forecast
// @Produce      json
// @Param        id            path   string  true   "ID del niño"
// @Param        category_key  query  string  false  "Limitar a una categoría"
// @Success      200  {object}  dto.ForecastResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/children/{id}/forecast [get]
func (h *ForecastHandler) GetForecast(c *fiber.Ctx) error {
	childID := c.Params("id")
	if ok, err := h.ensureChild(c, childID); !ok {
		return err
	}
	categoryKey := c.Query("category_key")
	now := h.clk.Now()

	var (
		categories []domforecast.CategorySupply
		err        error
	)
	if categoryKey != "" {
		var cs domforecast.CategorySupply
		cs, err = h.supply.ComputeCategoryAt(c.Context(), childID, categoryKey, now)
		categories = []domforecast.CategorySupply{cs}
	} else {
		categories, err = h.supply.ComputeAllAt(c.Context(), childID, now)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.JSON(dto.ForecastResponse{
		ChildID:    childID,
		AsOf:       now,
		Categories: toCategoryForecastDTOs(childID, categories, now),
	})
}

// GetEstimate godoc
// @Summary      Tasa de consumo estimada de una categoría
// @Tags         forecast
// @Produce      json
// @Param        id            path   string  true   "ID del niño"
// @Param        category_key  query  string  true   "Categoría, ej. diaper_t3"
// @Param        window_days   query  int     false  "Ventana en días (default configurado)"
// @Success      200  {object}  dto.ConsumptionEstimateDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/children/{id}/estimate [get]
func (h *ForecastHandler) GetEstimate(c *fiber.Ctx) error {
	childID := c.Params("id")
	if ok, err := h.ensureChild(c, childID); !ok {
		return err
	}
	categoryKey := c.Query("category_key")
	if categoryKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category_key requerido"})
	}
	windowDays := c.QueryInt("window_days")

	est, err := h.estimator.Estimate(c.Context(), childID, categoryKey, windowDays, h.clk.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toEstimateDTO(est))
}

// ── Mapeo dominio -> DTO ──────────────────────────────────────────────────────

func toEstimateDTO(est domforecast.ConsumptionEstimate) dto.ConsumptionEstimateDTO {
	return dto.ConsumptionEstimateDTO{
		ChildID:     est.ChildID,
		CategoryKey: est.CategoryKey,
		DailyRate:   est.DailyRate,
		WindowDays:  est.WindowDays,
		SampleCount: est.SampleCount,
	}
}

func toLotStatusDTO(s domforecast.StatusClassification) dto.LotStatusDTO {
	return dto.LotStatusDTO{
		LotID:              s.LotID,
		CategoryKey:        s.CategoryKey,
		Bucket:             string(s.Bucket),
		IsPendingDelivery:  s.IsPendingDelivery,
		DaysUntilDepletion: s.DaysUntilDepletion,
		DaysUntilExpiry:    s.DaysUntilExpiry,
		IsExpired:          s.IsExpired,
	}
}

func toCategoryForecastDTOs(childID string, categories []domforecast.CategorySupply, now time.Time) []dto.CategoryForecastDTO {
	out := make([]dto.CategoryForecastDTO, 0, len(categories))
	for _, cs := range categories {
		lots := make([]dto.LotStatusDTO, 0, len(cs.Lots))
		for _, s := range cs.Lots {
			lots = append(lots, toLotStatusDTO(s))
		}
		depletionDate := now.Add(time.Duration(cs.DaysUntilDepletion * 24 * float64(time.Hour)))
		out = append(out, dto.CategoryForecastDTO{
			CategoryKey:     cs.CategoryKey,
			OnHandQuantity:  cs.OnHandQuantity,
			PendingQuantity: cs.PendingQuantity,
			Estimate: dto.ConsumptionEstimateDTO{
				ChildID:     childID,
				CategoryKey: cs.CategoryKey,
				DailyRate:   cs.DailyRate,
			},
			DaysUntilDepletion: cs.DaysUntilDepletion,
			DepletionDate:      depletionDate,
			Lots:               lots,
		})
	}
	return out
}
