package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/alert"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// AlertHandler maneja la configuración de umbrales y la evaluación de alertas.
type AlertHandler struct {
	configUC    *alert.ConfigUseCase
	evaluatorUC *alert.EvaluatorUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(configUC *alert.ConfigUseCase, evaluatorUC *alert.EvaluatorUseCase) *AlertHandler {
	return &AlertHandler{configUC: configUC, evaluatorUC: evaluatorUC}
}

// GetConfig godoc
// @Summary      Umbrales de alerta vigentes del cuidador para un niño
// @Tags         alerts
// @Produce      json
// @Param        childId  path  string  true  "ID del niño"
// @Success      200  {object}  dto.AlertConfigDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/children/{childId}/alert-settings [get]
func (h *AlertHandler) GetConfig(c *fiber.Ctx) error {
	caregiverID := GetCaregiverID(c)
	cfg, err := h.configUC.Get(c.Context(), caregiverID, c.Params("childId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toAlertConfigDTO(cfg))
}

// SaveConfig godoc
// @Summary      Guardar umbrales de alerta del cuidador
// @Description  Exige umbral crítico < umbral bajo; una configuración inválida
//
//	se rechaza con 400, nunca se corrige intercambiando valores.
//
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        childId  path  string                  true  "ID del niño"
// @Param        body     body  dto.AlertConfigRequest  true  "low_stock_threshold, critical_stock_threshold, window_days"
// @Success      200  {object}  dto.AlertConfigDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/children/{childId}/alert-settings [put]
func (h *AlertHandler) SaveConfig(c *fiber.Ctx) error {
	caregiverID := GetCaregiverID(c)
	var in dto.AlertConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.ChildID = c.Params("childId")

	cfg, err := h.configUC.Save(c.Context(), caregiverID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidThresholds) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_THRESHOLDS", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toAlertConfigDTO(cfg))
}

// Evaluate godoc
// @Summary      Evaluar alertas de stock de un niño
// @Description  Una decisión por lote activo. Los lotes pendientes de entrega
//
//	nunca disparan alerta.
//
// @Tags         alerts
// @Produce      json
// @Param        id  path  string  true  "ID del niño"
// @Success      200  {array}   dto.AlertDecisionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/children/{id}/alerts [get]
func (h *AlertHandler) Evaluate(c *fiber.Ctx) error {
	caregiverID := GetCaregiverID(c)
	decisions, err := h.evaluatorUC.Evaluate(c.Context(), caregiverID, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(decisions)
}

func toAlertConfigDTO(cfg *entity.AlertConfig) dto.AlertConfigDTO {
	return dto.AlertConfigDTO{
		CaregiverID:            cfg.CaregiverID,
		ChildID:                cfg.ChildID,
		LowStockThreshold:      cfg.LowStockThreshold,
		CriticalStockThreshold: cfg.CriticalStockThreshold,
		WindowDays:             cfg.WindowDays,
		UpdatedAt:              cfg.UpdatedAt,
	}
}
