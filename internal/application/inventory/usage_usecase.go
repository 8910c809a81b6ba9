// Package inventory implementa la ruta de escritura del almacén de eventos:
// registro de consumos, altas y ajustes de lotes. Las mutaciones corren en
// transacción con bloqueo de fila (SELECT FOR UPDATE) para sostener el
// invariante 0 <= restante <= comprado bajo cuidadores concurrentes.
package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// UsageUseCase registra y anula eventos de consumo de forma transaccional.
// Un evento equivale siempre a una unidad consumida de la categoría.
type UsageUseCase struct {
	txRunner    TxRunner
	childRepo   repository.ChildRepository
	invalidator EstimateInvalidator // opcional; nil = sin cache
	clk         clock.Clock
}

// NewUsageUseCase construye el caso de uso. invalidator puede ser nil.
func NewUsageUseCase(
	txRunner TxRunner,
	childRepo repository.ChildRepository,
	invalidator EstimateInvalidator,
	clk clock.Clock,
) *UsageUseCase {
	return &UsageUseCase{txRunner: txRunner, childRepo: childRepo, invalidator: invalidator, clk: clk}
}

// LogUsage inserta el evento y descuenta una unidad del lote elegible más
// antiguo (no pendiente, con stock, vencimiento más próximo primero) en una
// sola transacción. Sin lote elegible devuelve ErrInsufficientStock.
//
// Los eventos son inmutables: las correcciones pasan por VoidUsage, nunca por
// edición.
func (uc *UsageUseCase) LogUsage(ctx context.Context, caregiverID string, in dto.LogUsageRequest) (*entity.UsageEvent, error) {
	if caregiverID == "" || in.ChildID == "" || in.CategoryKey == "" {
		return nil, domain.ErrInvalidInput
	}

	child, err := uc.childRepo.GetByID(ctx, in.ChildID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clk.Now()
	loggedAt := now
	if in.LoggedAt != nil {
		loggedAt = in.LoggedAt.UTC()
		if loggedAt.After(now) {
			return nil, domain.ErrInvalidInput
		}
	}

	event := &entity.UsageEvent{
		ID:          uuid.New().String(),
		ChildID:     in.ChildID,
		CategoryKey: in.CategoryKey,
		LoggedAt:    loggedAt,
		Attributes: entity.UsageAttributes{
			Wet:       in.Wet,
			Soiled:    in.Soiled,
			Leaked:    in.Leaked,
			Overnight: in.Overnight,
		},
		CaregiverID: caregiverID,
	}

	err = uc.txRunner.Run(ctx, func(
		eventRepo repository.UsageEventRepository,
		lotRepo repository.InventoryLotRepository,
	) error {
		// Bloquea el lote elegible más antiguo de la categoría
		lot, err := lotRepo.GetOldestConsumableForUpdate(ctx, in.ChildID, in.CategoryKey)
		if err != nil {
			if err == domain.ErrNotFound {
				return domain.ErrInsufficientStock
			}
			return err
		}
		if !lot.QuantityValid() {
			return domain.ErrCorruptQuantity
		}
		if err := lotRepo.UpdateQuantity(ctx, lot.ID, lot.QuantityRemaining-1, now); err != nil {
			return err
		}
		return eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, in.ChildID, in.CategoryKey)
	return event, nil
}

// VoidUsage anula un evento (soft delete) y restaura una unidad al lote del
// que se descontó más recientemente. Preserva la pista de auditoría: el
// evento sigue existiendo, marcado como eliminado.
func (uc *UsageUseCase) VoidUsage(ctx context.Context, eventID string) error {
	if eventID == "" {
		return domain.ErrInvalidInput
	}
	now := uc.clk.Now()

	var childID, categoryKey string
	err := uc.txRunner.Run(ctx, func(
		eventRepo repository.UsageEventRepository,
		lotRepo repository.InventoryLotRepository,
	) error {
		event, err := eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if event.DeletedAt != nil {
			return domain.ErrConflict
		}
		childID, categoryKey = event.ChildID, event.CategoryKey

		if err := eventRepo.SoftDelete(ctx, eventID, now); err != nil {
			return err
		}

		// Restaura la unidad al último lote descontado; si ninguno aplica
		// (ej. el lote fue eliminado) la anulación queda solo en el evento.
		lot, err := lotRepo.GetLastConsumedForUpdate(ctx, childID, categoryKey)
		if err != nil {
			if err == domain.ErrNotFound {
				return nil
			}
			return err
		}
		if lot.QuantityRemaining < lot.QuantityPurchased {
			return lotRepo.UpdateQuantity(ctx, lot.ID, lot.QuantityRemaining+1, now)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, childID, categoryKey)
	return nil
}

func (uc *UsageUseCase) invalidate(ctx context.Context, childID, categoryKey string) {
	if uc.invalidator != nil {
		// Best effort: la escritura ya quedó confirmada.
		_ = uc.invalidator.Invalidate(ctx, childID, categoryKey)
	}
}
