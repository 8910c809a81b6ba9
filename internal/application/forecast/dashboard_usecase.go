package forecast

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

// DashboardUseCase agrega las clasificaciones por categoría de un niño en un
// único resumen de preparación para el tablero principal.
//
// Cada niño se agrega de forma independiente; no hay pooling de suministro
// entre niños y los resúmenes nunca se mezclan.
type DashboardUseCase struct {
	childRepo repository.ChildRepository
	lotRepo   repository.InventoryLotRepository
	supply    *SupplyUseCase
	clk       clock.Clock
	th        domforecast.Thresholds
}

// NewDashboardUseCase construye el agregador del tablero.
func NewDashboardUseCase(
	childRepo repository.ChildRepository,
	lotRepo repository.InventoryLotRepository,
	supply *SupplyUseCase,
	clk clock.Clock,
	th domforecast.Thresholds,
) *DashboardUseCase {
	return &DashboardUseCase{childRepo: childRepo, lotRepo: lotRepo, supply: supply, clk: clk, th: th}
}

// ComputeSummary construye el DashboardSummary del niño indicado.
//
// Toma un único "ahora" al inicio y lo comparte con toda la pasada; las
// categorías se calculan en paralelo (no comparten estado mutable).
// DaysOfCoverage es el mínimo de días hasta agotamiento entre las categorías
// con stock disponible: el hogar está tan cubierto como su consumible más
// escaso.
func (uc *DashboardUseCase) ComputeSummary(ctx context.Context, childID string) (*domforecast.DashboardSummary, error) {
	child, err := uc.childRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.clk.Now()

	categories, err := uc.lotRepo.ListActiveCategories(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("tablero: categorías activas: %w", err)
	}
	sort.Strings(categories)

	// ── Goroutines para paralelizar el cálculo por categoría ──────────────────
	type categoryResult struct {
		idx int
		cs  domforecast.CategorySupply
		err error
	}
	resultCh := make(chan categoryResult, len(categories))
	for i, cat := range categories {
		go func(idx int, categoryKey string) {
			cs, err := uc.supply.ComputeCategoryAt(ctx, childID, categoryKey, now)
			resultCh <- categoryResult{idx: idx, cs: cs, err: err}
		}(i, cat)
	}

	supplies := make([]domforecast.CategorySupply, len(categories))
	for range categories {
		res := <-resultCh
		if res.err != nil {
			return nil, fmt.Errorf("tablero: categoría: %w", res.err)
		}
		supplies[res.idx] = res.cs
	}

	// ── Conteo por bucket y cobertura mínima ──────────────────────────────────
	counts := map[domforecast.Bucket]int{
		domforecast.BucketCritical: 0,
		domforecast.BucketLow:      0,
		domforecast.BucketStocked:  0,
	}
	coverage := math.Inf(1)
	hasStock := false

	for _, cs := range supplies {
		for _, lot := range cs.Lots {
			counts[lot.Bucket]++
		}
		if cs.OnHandQuantity > 0 {
			hasStock = true
			coverage = math.Min(coverage, cs.DaysUntilDepletion)
		}
	}
	if !hasStock {
		coverage = 0
	}

	return &domforecast.DashboardSummary{
		ChildID:        childID,
		AsOf:           now,
		CountsByBucket: counts,
		ReadinessScore: domforecast.ReadinessScore(coverage, uc.th),
		DaysOfCoverage: coverage,
		Categories:     supplies,
	}, nil
}

// EstimatedMonthlySpend gasto mensual proyectado de un resumen ya calculado:
// tasa diaria × 30 × costo unitario promedio, sumado sobre las categorías.
func EstimatedMonthlySpend(summary *domforecast.DashboardSummary) decimal.Decimal {
	total := decimal.Zero
	thirty := decimal.NewFromInt(30)
	for _, cs := range summary.Categories {
		total = total.Add(decimal.NewFromFloat(cs.DailyRate).Mul(thirty).Mul(cs.AvgUnitCost))
	}
	return total.Round(2)
}
