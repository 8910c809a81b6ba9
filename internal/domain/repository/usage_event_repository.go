package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// UsageEventRepository define el puerto de consulta/registro de eventos de
// consumo. El motor de pronóstico solo lee; las escrituras pasan por la ruta
// transaccional del caso de uso de inventario.
type UsageEventRepository interface {
	Create(ctx context.Context, event *entity.UsageEvent) error
	GetByID(ctx context.Context, id string) (*entity.UsageEvent, error)

	// ListSince devuelve los eventos activos (no eliminados) de un niño y una
	// categoría con logged_at en [since, ahora], orden cronológico ascendente.
	ListSince(ctx context.Context, childID, categoryKey string, since time.Time) ([]*entity.UsageEvent, error)

	// CountSince cuenta los eventos activos de la ventana sin materializarlos;
	// es lo único que necesita el estimador de tasa.
	CountSince(ctx context.Context, childID, categoryKey string, since time.Time) (int, error)

	// SoftDelete marca un evento como eliminado (corrección con auditoría).
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
