package forecast

import (
	"context"

	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
)

// EstimateCache cache opcional de estimaciones con TTL corto, clave
// (niño, categoría, ventana). Un fallo del cache nunca interrumpe el cálculo:
// el estimador trata cualquier error como miss y recalcula.
type EstimateCache interface {
	Get(ctx context.Context, childID, categoryKey string, windowDays int) (*domforecast.ConsumptionEstimate, error)
	Set(ctx context.Context, est domforecast.ConsumptionEstimate) error
	// Invalidate borra todas las ventanas de (niño, categoría); se llama en
	// cada escritura de eventos o lotes.
	Invalidate(ctx context.Context, childID, categoryKey string) error
}
