package inventory

import (
	"context"

	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el registro del
// evento de consumo y el descuento del lote.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		eventRepo repository.UsageEventRepository,
		lotRepo repository.InventoryLotRepository,
	) error) error
}

// EstimateInvalidator borra las estimaciones cacheadas de (niño, categoría).
// Toda escritura de eventos o lotes invalida; un fallo aquí no interrumpe la
// escritura ya confirmada.
type EstimateInvalidator interface {
	Invalidate(ctx context.Context, childID, categoryKey string) error
}
