package forecast

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// SupplyUseCase combina lotes vigentes con la estimación de consumo para
// producir días restantes por lote y por categoría, con la clasificación de
// cada lote.
type SupplyUseCase struct {
	lotRepo   repository.InventoryLotRepository
	estimator *EstimatorUseCase
	clk       clock.Clock
	th        domforecast.Thresholds
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(
	lotRepo repository.InventoryLotRepository,
	estimator *EstimatorUseCase,
	clk clock.Clock,
	th domforecast.Thresholds,
) *SupplyUseCase {
	return &SupplyUseCase{lotRepo: lotRepo, estimator: estimator, clk: clk, th: th}
}

// ComputeAll calcula el suministro de todas las categorías activas del niño,
// con un único "ahora" tomado al inicio de la invocación.
func (uc *SupplyUseCase) ComputeAll(ctx context.Context, childID string) ([]domforecast.CategorySupply, error) {
	return uc.ComputeAllAt(ctx, childID, uc.clk.Now())
}

// ComputeAllAt variante con "ahora" explícito, usada por el agregador del
// tablero para que toda la pasada comparta el mismo instante.
func (uc *SupplyUseCase) ComputeAllAt(ctx context.Context, childID string, now time.Time) ([]domforecast.CategorySupply, error) {
	categories, err := uc.lotRepo.ListActiveCategories(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("suministro: categorías activas: %w", err)
	}
	sort.Strings(categories)

	out := make([]domforecast.CategorySupply, 0, len(categories))
	for _, cat := range categories {
		cs, err := uc.ComputeCategoryAt(ctx, childID, cat, now)
		if err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, nil
}

// ComputeCategoryAt calcula el suministro de una categoría en el instante now.
//
// El agotamiento por consumo y el vencimiento por calendario se llevan como
// dos números independientes; el clasificador elige el más urgente. Un lote
// con cantidades imposibles se clasifica UNKNOWN y queda fuera del stock
// disponible: el motor no recorta datos corruptos.
func (uc *SupplyUseCase) ComputeCategoryAt(
	ctx context.Context,
	childID, categoryKey string,
	now time.Time,
) (domforecast.CategorySupply, error) {
	lots, err := uc.lotRepo.ListByChild(ctx, childID, categoryKey, false)
	if err != nil {
		return domforecast.CategorySupply{}, fmt.Errorf("suministro: lotes de %s: %w", categoryKey, err)
	}

	est, err := uc.estimator.Estimate(ctx, childID, categoryKey, 0, now)
	if err != nil {
		return domforecast.CategorySupply{}, err
	}

	// Stock disponible: solo lotes no pendientes con cantidades válidas.
	// Los pendientes de entrega son suministro futuro, nunca disponible.
	onHand, pending := 0, 0
	costSum := decimal.Zero
	for _, lot := range lots {
		if !lot.QuantityValid() {
			continue
		}
		if lot.IsPendingDelivery {
			pending += lot.QuantityRemaining
		} else {
			onHand += lot.QuantityRemaining
			costSum = costSum.Add(lot.UnitCost.Mul(decimal.NewFromInt(int64(lot.QuantityRemaining))))
		}
	}
	avgCost := decimal.Zero
	if onHand > 0 {
		avgCost = costSum.Div(decimal.NewFromInt(int64(onHand)))
	}

	depletion := domforecast.DaysUntilDepletion(onHand, est.DailyRate, uc.th)

	statuses := make([]domforecast.StatusClassification, 0, len(lots))
	for _, lot := range lots {
		statuses = append(statuses, uc.classifyLot(lot, depletion, now))
	}

	return domforecast.CategorySupply{
		CategoryKey:        categoryKey,
		OnHandQuantity:     onHand,
		PendingQuantity:    pending,
		DailyRate:          est.DailyRate,
		DaysUntilDepletion: depletion,
		AvgUnitCost:        avgCost,
		Lots:               statuses,
	}, nil
}

// ClassifyLot clasifica un lote suelto contra una estimación ya calculada
// (interfaz de salida del motor para el adaptador de consultas).
func (uc *SupplyUseCase) ClassifyLot(
	lot *entity.InventoryLot,
	est domforecast.ConsumptionEstimate,
	now time.Time,
) domforecast.StatusClassification {
	qty := 0
	if !lot.IsPendingDelivery {
		qty = lot.QuantityRemaining
	}
	depletion := domforecast.DaysUntilDepletion(qty, est.DailyRate, uc.th)
	return uc.classifyLot(lot, depletion, now)
}

func (uc *SupplyUseCase) classifyLot(
	lot *entity.InventoryLot,
	categoryDepletion float64,
	now time.Time,
) domforecast.StatusClassification {
	sc := domforecast.StatusClassification{
		LotID:             lot.ID,
		CategoryKey:       lot.CategoryKey,
		IsPendingDelivery: lot.IsPendingDelivery,
	}

	if !lot.QuantityValid() {
		sc.Bucket = domforecast.BucketUnknown
		return sc
	}

	var expiry *float64
	if lot.ExpiresAt != nil {
		d := domforecast.DaysUntilExpiry(*lot.ExpiresAt, now)
		expiry = &d
		sc.DaysUntilExpiry = expiry
		sc.IsExpired = d <= 0
	}

	// El bucket se calcula igual con o sin entrega pendiente (ejes ortogonales).
	sc.Bucket = domforecast.Classify(lot.QuantityRemaining, expiry, sc.IsExpired, uc.th)

	// El agotamiento es un hecho de la categoría (el consumo no distingue
	// lotes); los pendientes no se agotan porque aún no se consumen.
	if !lot.IsPendingDelivery {
		d := categoryDepletion
		sc.DaysUntilDepletion = &d
	}
	return sc
}
