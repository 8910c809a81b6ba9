package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// LotUseCase gestiona el ciclo de vida de los lotes: alta de compra, llegada
// de entrega, ajuste manual de stock y eliminación lógica.
type LotUseCase struct {
	txRunner    TxRunner
	lotRepo     repository.InventoryLotRepository
	childRepo   repository.ChildRepository
	invalidator EstimateInvalidator // opcional
	clk         clock.Clock
}

// NewLotUseCase construye el caso de uso. invalidator puede ser nil.
func NewLotUseCase(
	txRunner TxRunner,
	lotRepo repository.InventoryLotRepository,
	childRepo repository.ChildRepository,
	invalidator EstimateInvalidator,
	clk clock.Clock,
) *LotUseCase {
	return &LotUseCase{txRunner: txRunner, lotRepo: lotRepo, childRepo: childRepo, invalidator: invalidator, clk: clk}
}

// RegisterLot da de alta un lote comprado. Con IsPendingDelivery=true el lote
// entra como pedido en camino: suministro futuro, no disponible.
func (uc *LotUseCase) RegisterLot(ctx context.Context, in dto.RegisterLotRequest) (*entity.InventoryLot, error) {
	if in.ChildID == "" || in.CategoryKey == "" || in.QuantityPurchased <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) {
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
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return nil, domain.ErrInvalidInput
	}

	lot := &entity.InventoryLot{
		ID:                uuid.New().String(),
		ChildID:           in.ChildID,
		CategoryKey:       in.CategoryKey,
		QuantityPurchased: in.QuantityPurchased,
		QuantityRemaining: in.QuantityPurchased,
		IsPendingDelivery: in.IsPendingDelivery,
		UnitCost:          in.UnitCost,
		ExpiresAt:         in.ExpiresAt,
		CreatedAt:         now,
	}
	if err := uc.lotRepo.Create(ctx, lot); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, lot.ChildID, lot.CategoryKey)
	return lot, nil
}

// MarkDelivered cambia un lote pendiente a disponible. Sobre un lote ya
// disponible devuelve ErrConflict.
func (uc *LotUseCase) MarkDelivered(ctx context.Context, lotID string) error {
	if lotID == "" {
		return domain.ErrInvalidInput
	}
	now := uc.clk.Now()

	var childID, categoryKey string
	err := uc.txRunner.Run(ctx, func(
		_ repository.UsageEventRepository,
		lotRepo repository.InventoryLotRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if !lot.Active() {
			return domain.ErrNotFound
		}
		if !lot.IsPendingDelivery {
			return domain.ErrConflict
		}
		childID, categoryKey = lot.ChildID, lot.CategoryKey
		return lotRepo.MarkDelivered(ctx, lotID, now)
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, childID, categoryKey)
	return nil
}

// AdjustStock fija la cantidad restante de un lote (corrección manual, ej.
// conteo físico). La cantidad resultante debe quedar en [0, comprado]; fuera
// de ese rango se rechaza en lugar de recortar.
func (uc *LotUseCase) AdjustStock(ctx context.Context, lotID string, in dto.AdjustStockRequest) error {
	if lotID == "" {
		return domain.ErrInvalidInput
	}
	now := uc.clk.Now()

	var childID, categoryKey string
	err := uc.txRunner.Run(ctx, func(
		_ repository.UsageEventRepository,
		lotRepo repository.InventoryLotRepository,
	) error {
		lot, err := lotRepo.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if !lot.Active() {
			return domain.ErrNotFound
		}
		if in.NewQuantity < 0 || in.NewQuantity > lot.QuantityPurchased {
			return domain.ErrInvalidInput
		}
		childID, categoryKey = lot.ChildID, lot.CategoryKey
		return lotRepo.UpdateQuantity(ctx, lotID, in.NewQuantity, now)
	})
	if err != nil {
		return err
	}

	uc.invalidate(ctx, childID, categoryKey)
	return nil
}

// RemoveLot elimina lógicamente un lote (consumido y reemplazado, o retiro
// explícito). El historial de eventos asociado se conserva.
func (uc *LotUseCase) RemoveLot(ctx context.Context, lotID string) error {
	if lotID == "" {
		return domain.ErrInvalidInput
	}
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return err
	}
	if !lot.Active() {
		return domain.ErrNotFound
	}
	if err := uc.lotRepo.SoftDelete(ctx, lotID, uc.clk.Now()); err != nil {
		return err
	}

	uc.invalidate(ctx, lot.ChildID, lot.CategoryKey)
	return nil
}

// ListLots lista los lotes activos de un niño, opcionalmente filtrados por
// categoría (categoryKey vacío = todas).
func (uc *LotUseCase) ListLots(ctx context.Context, childID, categoryKey string) ([]*entity.InventoryLot, error) {
	if childID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.childRepo.GetByID(ctx, childID); err != nil {
		return nil, err
	}
	return uc.lotRepo.ListByChild(ctx, childID, categoryKey, false)
}

func (uc *LotUseCase) invalidate(ctx context.Context, childID, categoryKey string) {
	if uc.invalidator != nil {
		_ = uc.invalidator.Invalidate(ctx, childID, categoryKey)
	}
}
