package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/application/inventory"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// InventoryHandler maneja eventos de consumo y lotes de suministro.
type InventoryHandler struct {
	usageUC *inventory.UsageUseCase
	lotUC   *inventory.LotUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(usageUC *inventory.UsageUseCase, lotUC *inventory.LotUseCase) *InventoryHandler {
	return &InventoryHandler{usageUC: usageUC, lotUC: lotUC}
}

// LogUsage godoc
// @Summary      Registrar un evento de consumo
// @Description  Inserta el evento y descuenta una unidad del lote disponible
//
//	más antiguo de la categoría, en una sola transacción.
//
// @Tags         usage
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogUsageRequest  true  "child_id, category_key, atributos opcionales"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/usage-events [post]
func (h *InventoryHandler) LogUsage(c *fiber.Ctx) error {
	caregiverID := GetCaregiverID(c)
	var in dto.LogUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	event, err := h.usageUC.LogUsage(c.Context(), caregiverID, in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": event.ID})
}

// VoidUsage godoc
// @Summary      Anular un evento de consumo
// @Description  Soft delete del evento y restauración de la unidad al lote del
//
//	que se descontó más recientemente. Anular dos veces devuelve 409.
//
// @Tags         usage
// @Produce      json
// @Param        id  path  string  true  "ID del evento"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/usage-events/{id} [delete]
func (h *InventoryHandler) VoidUsage(c *fiber.Ctx) error {
	if err := h.usageUC.VoidUsage(c.Context(), c.Params("id")); err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "evento anulado"})
}

// RegisterLot godoc
// @Summary      Dar de alta un lote comprado
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterLotRequest  true  "child_id, category_key, quantity_purchased, unit_cost, is_pending_delivery, expires_at"
// @Success      201  {object}  dto.LotDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *InventoryHandler) RegisterLot(c *fiber.Ctx) error {
	var in dto.RegisterLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.lotUC.RegisterLot(c.Context(), in)
	if err != nil {
		return mapInventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLotDTO(lot))
}

// ListLots godoc
// @Summary      Listar lotes activos de un niño
// @Tags         lots
// @Produce      json
// @Param        id            path   string  true   "ID del niño"
// @Param        category_key  query  string  false  "Filtrar por categoría"
// @Success      200  {array}   dto.LotDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/children/{id}/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	lots, err := h.lotUC.ListLots(c.Context(), c.Params("id"), c.Query("category_key"))
	if err != nil {
		return mapInventoryError(c, err)
	}
	out := make([]dto.LotDTO, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotDTO(lot))
	}
	return c.JSON(out)
}

// MarkDelivered godoc
// @Summary      Marcar un lote pendiente como entregado
// @Tags         lots
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/deliver [post]
func (h *InventoryHandler) MarkDelivered(c *fiber.Ctx) error {
	if err := h.lotUC.MarkDelivered(c.Context(), c.Params("id")); err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote entregado"})
}

// AdjustStock godoc
// @Summary      Ajustar manualmente la cantidad restante de un lote
// @Description  new_quantity es la cantidad resultante, acotada a
//
//	[0, quantity_purchased]; fuera de rango se rechaza, nunca se recorta.
//
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.AdjustStockRequest  true  "new_quantity, reason"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.lotUC.AdjustStock(c.Context(), c.Params("id"), in); err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock ajustado"})
}

// RemoveLot godoc
// @Summary      Eliminar lógicamente un lote
// @Tags         lots
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [delete]
func (h *InventoryHandler) RemoveLot(c *fiber.Ctx) error {
	if err := h.lotUC.RemoveLot(c.Context(), c.Params("id")); err != nil {
		return mapInventoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote eliminado"})
}

func toLotDTO(lot *entity.InventoryLot) dto.LotDTO {
	return dto.LotDTO{
		ID:                lot.ID,
		ChildID:           lot.ChildID,
		CategoryKey:       lot.CategoryKey,
		QuantityPurchased: lot.QuantityPurchased,
		QuantityRemaining: lot.QuantityRemaining,
		IsPendingDelivery: lot.IsPendingDelivery,
		UnitCost:          lot.UnitCost,
		ExpiresAt:         lot.ExpiresAt,
		CreatedAt:         lot.CreatedAt,
	}
}

// mapInventoryError traduce errores de dominio a códigos HTTP.
func mapInventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "sin stock disponible en la categoría"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrCorruptQuantity):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CORRUPT_QUANTITY", Message: "cantidades del lote inconsistentes"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
