package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// InventoryLotRepository define el puerto para lotes de suministro.
// Las operaciones de mutación se usan dentro de transacciones (TxRunner) para
// mantener el invariante 0 <= restante <= comprado bajo escritores concurrentes.
type InventoryLotRepository interface {
	Create(ctx context.Context, lot *entity.InventoryLot) error
	GetByID(ctx context.Context, id string) (*entity.InventoryLot, error)

	// ListByChild devuelve los lotes de un niño, opcionalmente filtrados por
	// categoría (categoryKey vacío = todas) e incluyendo eliminados si se pide.
	ListByChild(ctx context.Context, childID, categoryKey string, includeDeleted bool) ([]*entity.InventoryLot, error)

	// ListActiveCategories devuelve las categorías con al menos un lote activo.
	ListActiveCategories(ctx context.Context, childID string) ([]string, error)

	// GetOldestConsumableForUpdate bloquea (SELECT FOR UPDATE) el lote activo
	// más antiguo con stock disponible de la categoría: no pendiente de entrega,
	// restante > 0, ordenado por vencimiento más próximo y luego fecha de compra.
	// Devuelve ErrNotFound si no hay lote elegible.
	GetOldestConsumableForUpdate(ctx context.Context, childID, categoryKey string) (*entity.InventoryLot, error)

	// GetForUpdate bloquea un lote puntual por id.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryLot, error)

	// UpdateQuantity fija la cantidad restante (y updated_at) de un lote.
	UpdateQuantity(ctx context.Context, id string, quantityRemaining int, at time.Time) error

	// MarkDelivered cambia un lote pendiente de entrega a disponible.
	MarkDelivered(ctx context.Context, id string, at time.Time) error

	// SoftDelete marca el lote como eliminado.
	SoftDelete(ctx context.Context, id string, at time.Time) error

	// GetLastConsumedForUpdate bloquea el lote del que se descontó más
	// recientemente en la categoría (para restaurar una unidad al anular un
	// evento). Devuelve ErrNotFound si ninguno aplica.
	GetLastConsumedForUpdate(ctx context.Context, childID, categoryKey string) (*entity.InventoryLot, error)
}
