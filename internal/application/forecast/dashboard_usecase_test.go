package forecast_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appforecast "github.com/jhoicas/Nido-api/internal/application/forecast"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	domforecast "github.com/jhoicas/Nido-api/internal/domain/forecast"
)

func newDashboardUC(eventRepo *fakeEventRepo, lotRepo *fakeLotRepo) *appforecast.DashboardUseCase {
	th := domforecast.DefaultThresholds()
	clk := clock.NewFakeClock(testNow)
	est := appforecast.NewEstimatorUseCase(eventRepo, nil, th)
	supply := appforecast.NewSupplyUseCase(lotRepo, est, clk, th)
	children := &fakeChildRepo{children: map[string]*entity.Child{
		testChildID: {ID: testChildID, HouseholdID: "h1", Name: "Emma"},
	}}
	return appforecast.NewDashboardUseCase(children, lotRepo, supply, clk, th)
}

func catLot(id, category string, remaining int, rateEvents *fakeEventRepo, perDay int) *entity.InventoryLot {
	// Genera eventos para fijar la tasa de la categoría en perDay eventos/día.
	for d := 0; d < 7; d++ {
		for i := 0; i < perDay; i++ {
			e := eventAt(testNow.AddDate(0, 0, -d))
			e.CategoryKey = category
			rateEvents.events = append(rateEvents.events, e)
		}
	}
	l := lot(id, remaining, remaining, false, nil)
	l.CategoryKey = category
	return l
}

func TestComputeSummary_CoberturaEsElMinimo(t *testing.T) {
	events := &fakeEventRepo{}
	// Categoría A: 6 unidades a 2/día = 3 días. Categoría B: 24 a 2/día = 12 días.
	lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{
		catLot("a", "diaper_t3", 6, events, 2),
		catLot("b", "wipes", 24, events, 2),
	}}
	uc := newDashboardUC(events, lotRepo)

	summary, err := uc.ComputeSummary(context.Background(), testChildID)
	require.NoError(t, err)

	// El hogar está tan cubierto como su consumible más escaso.
	assert.InDelta(t, 3, summary.DaysOfCoverage, 1e-9)
	assert.Len(t, summary.Categories, 2)
}

func TestComputeSummary_ConteoPorBucket(t *testing.T) {
	events := &fakeEventRepo{}
	empty := lot("agotado", 0, 20, false, nil)
	in6 := testNow.Add(6 * 24 * time.Hour)
	low := lot("bajo", 5, 20, false, &in6)
	full := lot("lleno", 40, 40, false, nil)
	lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{empty, low, full}}
	uc := newDashboardUC(events, lotRepo)

	summary, err := uc.ComputeSummary(context.Background(), testChildID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CountsByBucket[domforecast.BucketCritical])
	assert.Equal(t, 1, summary.CountsByBucket[domforecast.BucketLow])
	assert.Equal(t, 1, summary.CountsByBucket[domforecast.BucketStocked])
}

func TestComputeSummary_SinStockCoberturaCero(t *testing.T) {
	events := &fakeEventRepo{}
	lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{lot("vacio", 0, 20, false, nil)}}
	uc := newDashboardUC(events, lotRepo)

	summary, err := uc.ComputeSummary(context.Background(), testChildID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.DaysOfCoverage)
	assert.Equal(t, 0, summary.ReadinessScore)
}

func TestComputeSummary_PuntajeMonotonoEnCobertura(t *testing.T) {
	events := &fakeEventRepo{}
	// Más stock en la categoría limitante => puntaje igual o mayor.
	prevScore := -1
	for _, qty := range []int{0, 5, 15, 35, 70, 200} {
		lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{lot("l", qty, 200, false, nil)}}
		uc := newDashboardUC(events, lotRepo)
		summary, err := uc.ComputeSummary(context.Background(), testChildID)
		require.NoError(t, err)
		require.GreaterOrEqual(t, summary.ReadinessScore, prevScore)
		prevScore = summary.ReadinessScore
	}
}

func TestComputeSummary_NinoInexistente(t *testing.T) {
	uc := newDashboardUC(&fakeEventRepo{}, &fakeLotRepo{})

	_, err := uc.ComputeSummary(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEstimatedMonthlySpend(t *testing.T) {
	summary := &domforecast.DashboardSummary{
		Categories: []domforecast.CategorySupply{
			{DailyRate: 2, AvgUnitCost: decimal.NewFromFloat(0.50)}, // 2*30*0.50 = 30
			{DailyRate: 1, AvgUnitCost: decimal.NewFromFloat(0.10)}, // 1*30*0.10 = 3
		},
	}
	spend := appforecast.EstimatedMonthlySpend(summary)
	assert.True(t, spend.Equal(decimal.NewFromInt(33)), "gasto mensual proyectado, obtuvo %s", spend)
}
