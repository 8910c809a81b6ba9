// Package alert implementa el evaluador de umbrales de alerta. Decide por lote
// si corresponde alertar según las unidades restantes y la configuración del
// cuidador; la entrega de la notificación pertenece a un colaborador externo.
package alert

import (
	"context"
	"fmt"

	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// Niveles de alerta por cantidad.
const (
	LevelCritical = "critical"
	LevelLow      = "low"
)

// EvaluatorUseCase evalúa los lotes de un niño contra los umbrales por
// cantidad del cuidador. Los umbrales son independientes de la clasificación
// por días del motor de pronóstico.
type EvaluatorUseCase struct {
	lotRepo  repository.InventoryLotRepository
	cfgRepo  repository.AlertConfigRepository
	defaults entity.AlertConfig
}

// NewEvaluatorUseCase construye el evaluador. defaults se usa cuando el
// cuidador aún no guardó configuración propia.
func NewEvaluatorUseCase(
	lotRepo repository.InventoryLotRepository,
	cfgRepo repository.AlertConfigRepository,
	defaults entity.AlertConfig,
) *EvaluatorUseCase {
	return &EvaluatorUseCase{lotRepo: lotRepo, cfgRepo: cfgRepo, defaults: defaults}
}

// Evaluate devuelve una decisión por cada lote activo del niño.
//
// Un lote pendiente de entrega nunca dispara alerta: su stock todavía no
// cuenta como disponible y alertar por él duplicaría el mensaje del pedido
// en camino.
func (uc *EvaluatorUseCase) Evaluate(ctx context.Context, caregiverID, childID string) ([]dto.AlertDecisionDTO, error) {
	cfg, err := uc.config(ctx, caregiverID, childID)
	if err != nil {
		return nil, err
	}

	lots, err := uc.lotRepo.ListByChild(ctx, childID, "", false)
	if err != nil {
		return nil, fmt.Errorf("alertas: lotes del niño: %w", err)
	}

	decisions := make([]dto.AlertDecisionDTO, 0, len(lots))
	for _, lot := range lots {
		d := dto.AlertDecisionDTO{
			LotID:             lot.ID,
			CategoryKey:       lot.CategoryKey,
			QuantityRemaining: lot.QuantityRemaining,
			IsPendingDelivery: lot.IsPendingDelivery,
		}
		if !lot.IsPendingDelivery && lot.QuantityValid() {
			switch {
			case lot.QuantityRemaining <= cfg.CriticalStockThreshold:
				d.ShouldAlert = true
				d.Level = LevelCritical
			case lot.QuantityRemaining <= cfg.LowStockThreshold:
				d.ShouldAlert = true
				d.Level = LevelLow
			}
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}

func (uc *EvaluatorUseCase) config(ctx context.Context, caregiverID, childID string) (*entity.AlertConfig, error) {
	cfg, err := uc.cfgRepo.Get(ctx, caregiverID, childID)
	if err != nil {
		if err == domain.ErrNotFound {
			d := uc.defaults
			d.CaregiverID = caregiverID
			d.ChildID = childID
			return &d, nil
		}
		return nil, fmt.Errorf("alertas: configuración: %w", err)
	}
	return cfg, nil
}
