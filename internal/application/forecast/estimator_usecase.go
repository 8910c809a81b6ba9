// Package forecast implementa los casos de uso del motor de pronóstico:
// estimación de tasa de consumo, cálculo de suministro restante y agregación
// para el tablero. Todo es puro por invocación: sin estado compartido, sin
// bloqueos, seguro bajo evaluación concurrente.
package forecast

import (
	"context"
	"fmt"
	"time"

	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// EstimatorUseCase calcula la tasa diaria de consumo por (niño, categoría)
// sobre una ventana deslizante de eventos.
//
// La ventana se recalcula completa en cada llamada; no se retiene estado
// incremental. Se cambia costo de recomputación por corrección y simplicidad
// bajo escritores concurrentes.
type EstimatorUseCase struct {
	eventRepo repository.UsageEventRepository
	cache     EstimateCache // opcional; nil = sin cache
	th        domforecast.Thresholds
}

// NewEstimatorUseCase construye el estimador. cache puede ser nil.
func NewEstimatorUseCase(
	eventRepo repository.UsageEventRepository,
	cache EstimateCache,
	th domforecast.Thresholds,
) *EstimatorUseCase {
	return &EstimatorUseCase{eventRepo: eventRepo, cache: cache, th: th}
}

// Estimate devuelve la estimación de consumo de la categoría en la ventana
// [now - windowDays, now]. windowDays <= 0 usa la ventana configurada.
//
// Con cero eventos en la ventana se usa la tasa por defecto configurada (no
// cero): evita división por cero aguas abajo y evita reportar días infinitos
// en un perfil recién creado. Los eventos anteriores a la ventana se ignoran
// aunque sean los únicos que existan: un periodo largo de inactividad no debe
// enmascarar un cambio de comportamiento reciente.
func (uc *EstimatorUseCase) Estimate(
	ctx context.Context,
	childID, categoryKey string,
	windowDays int,
	now time.Time,
) (domforecast.ConsumptionEstimate, error) {
	if windowDays <= 0 {
		windowDays = uc.th.WindowDays
	}

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, childID, categoryKey, windowDays); err == nil && cached != nil {
			return *cached, nil
		}
	}

	since := now.AddDate(0, 0, -windowDays)
	count, err := uc.eventRepo.CountSince(ctx, childID, categoryKey, since)
	if err != nil {
		return domforecast.ConsumptionEstimate{}, fmt.Errorf("estimador: contar eventos: %w", err)
	}

	rate := float64(count) / float64(windowDays)
	if count == 0 {
		rate = uc.th.DefaultDailyRate
	}

	est := domforecast.ConsumptionEstimate{
		ChildID:     childID,
		CategoryKey: categoryKey,
		DailyRate:   rate,
		WindowDays:  windowDays,
		SampleCount: count,
	}

	if uc.cache != nil {
		// Best effort: un cache caído no debe tumbar el pronóstico.
		_ = uc.cache.Set(ctx, est)
	}
	return est, nil
}
