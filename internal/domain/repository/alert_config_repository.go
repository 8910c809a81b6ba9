package repository

import (
	"context"

	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// AlertConfigRepository puerto para la configuración de umbrales de alerta.
// La validación del invariante (crítico < bajo) ocurre en el caso de uso,
// antes de llegar aquí.
type AlertConfigRepository interface {
	Get(ctx context.Context, caregiverID, childID string) (*entity.AlertConfig, error)
	Upsert(ctx context.Context, cfg *entity.AlertConfig) error
}
