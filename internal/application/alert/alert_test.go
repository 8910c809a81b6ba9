package alert_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Nido-api/internal/application/alert"
	"github.com/jhoicas/Nido-api/internal/application/dto"
	"github.com/jhoicas/Nido-api/internal/clock"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

const (
	testCaregiverID = "caregiver-1"
	testChildID     = "child-1"
)

var testNow = time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

var testDefaults = entity.AlertConfig{
	LowStockThreshold:      12,
	CriticalStockThreshold: 4,
	WindowDays:             7,
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCfgRepo struct {
	stored map[string]*entity.AlertConfig // caregiverID|childID
}

func cfgKey(caregiverID, childID string) string { return caregiverID + "|" + childID }

func (f *fakeCfgRepo) Get(_ context.Context, caregiverID, childID string) (*entity.AlertConfig, error) {
	if c, ok := f.stored[cfgKey(caregiverID, childID)]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCfgRepo) Upsert(_ context.Context, cfg *entity.AlertConfig) error {
	if f.stored == nil {
		f.stored = map[string]*entity.AlertConfig{}
	}
	f.stored[cfgKey(cfg.CaregiverID, cfg.ChildID)] = cfg
	return nil
}

type fakeLotRepo struct {
	lots []*entity.InventoryLot
}

func (f *fakeLotRepo) Create(_ context.Context, l *entity.InventoryLot) error { return nil }
func (f *fakeLotRepo) GetByID(_ context.Context, _ string) (*entity.InventoryLot, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeLotRepo) ListByChild(_ context.Context, childID, _ string, _ bool) ([]*entity.InventoryLot, error) {
	var out []*entity.InventoryLot
	for _, l := range f.lots {
		if l.ChildID == childID && l.DeletedAt == nil {
			out = append(out, l)
		}
	}
	return out, nil
}
func (f *fakeLotRepo) ListActiveCategories(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}
func (f *fakeLotRepo) GetOldestConsumableForUpdate(_ context.Context, _, _ string) (*entity.InventoryLot, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeLotRepo) GetForUpdate(_ context.Context, _ string) (*entity.InventoryLot, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeLotRepo) UpdateQuantity(_ context.Context, _ string, _ int, _ time.Time) error {
	return nil
}
func (f *fakeLotRepo) MarkDelivered(_ context.Context, _ string, _ time.Time) error  { return nil }
func (f *fakeLotRepo) SoftDelete(_ context.Context, _ string, _ time.Time) error     { return nil }
func (f *fakeLotRepo) GetLastConsumedForUpdate(_ context.Context, _, _ string) (*entity.InventoryLot, error) {
	return nil, domain.ErrNotFound
}

func testLot(id string, remaining int, pending bool) *entity.InventoryLot {
	return &entity.InventoryLot{
		ID:                id,
		ChildID:           testChildID,
		CategoryKey:       "diaper_t3",
		QuantityPurchased: 40,
		QuantityRemaining: remaining,
		IsPendingDelivery: pending,
		CreatedAt:         testNow,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveConfig_RechazaCriticoMayorOIgualQueBajo(t *testing.T) {
	uc := alert.NewConfigUseCase(&fakeCfgRepo{}, clock.NewFakeClock(testNow), testDefaults)

	for _, tc := range []struct{ low, critical int }{
		{10, 10}, // iguales
		{10, 15}, // crítico mayor
		{0, 0},
	} {
		_, err := uc.Save(context.Background(), testCaregiverID, dto.AlertConfigRequest{
			ChildID:                testChildID,
			LowStockThreshold:      tc.low,
			CriticalStockThreshold: tc.critical,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidThresholds,
			"low=%d critical=%d debe rechazarse, nunca intercambiarse", tc.low, tc.critical)
	}
}

func TestSaveConfig_GuardaConfiguracionValida(t *testing.T) {
	repo := &fakeCfgRepo{}
	uc := alert.NewConfigUseCase(repo, clock.NewFakeClock(testNow), testDefaults)

	cfg, err := uc.Save(context.Background(), testCaregiverID, dto.AlertConfigRequest{
		ChildID:                testChildID,
		LowStockThreshold:      10,
		CriticalStockThreshold: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 3, cfg.CriticalStockThreshold)
	assert.Equal(t, testDefaults.WindowDays, cfg.WindowDays, "ventana vacía toma el valor por defecto")
	assert.Equal(t, testNow, cfg.UpdatedAt)

	stored, err := repo.Get(context.Background(), testCaregiverID, testChildID)
	require.NoError(t, err)
	assert.Equal(t, cfg, stored)
}

func TestGetConfig_SinGuardarDevuelveDefaults(t *testing.T) {
	uc := alert.NewConfigUseCase(&fakeCfgRepo{}, clock.NewFakeClock(testNow), testDefaults)

	cfg, err := uc.Get(context.Background(), testCaregiverID, testChildID)
	require.NoError(t, err)

	assert.Equal(t, testDefaults.LowStockThreshold, cfg.LowStockThreshold)
	assert.Equal(t, testCaregiverID, cfg.CaregiverID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Evaluación por lote
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_NivelesPorCantidad(t *testing.T) {
	lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{
		testLot("critico", 2, false),  // <= 4
		testLot("bajo", 8, false),     // <= 12
		testLot("surtido", 30, false), // sobre ambos umbrales
	}}
	uc := alert.NewEvaluatorUseCase(lotRepo, &fakeCfgRepo{}, testDefaults)

	decisions, err := uc.Evaluate(context.Background(), testCaregiverID, testChildID)
	require.NoError(t, err)
	require.Len(t, decisions, 3)

	byID := map[string]dto.AlertDecisionDTO{}
	for _, d := range decisions {
		byID[d.LotID] = d
	}

	assert.True(t, byID["critico"].ShouldAlert)
	assert.Equal(t, alert.LevelCritical, byID["critico"].Level)
	assert.True(t, byID["bajo"].ShouldAlert)
	assert.Equal(t, alert.LevelLow, byID["bajo"].Level)
	assert.False(t, byID["surtido"].ShouldAlert)
}

func TestEvaluate_PendienteDeEntregaNoAlerta(t *testing.T) {
	lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{testLot("en-camino", 0, true)}}
	uc := alert.NewEvaluatorUseCase(lotRepo, &fakeCfgRepo{}, testDefaults)

	decisions, err := uc.Evaluate(context.Background(), testCaregiverID, testChildID)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	assert.False(t, decisions[0].ShouldAlert, "stock en camino no dispara alerta de cantidad")
	assert.True(t, decisions[0].IsPendingDelivery)
}

func TestEvaluate_UsaConfiguracionDelCuidador(t *testing.T) {
	cfgRepo := &fakeCfgRepo{stored: map[string]*entity.AlertConfig{
		cfgKey(testCaregiverID, testChildID): {
			CaregiverID:            testCaregiverID,
			ChildID:                testChildID,
			LowStockThreshold:      30,
			CriticalStockThreshold: 20,
			WindowDays:             7,
		},
	}}
	lotRepo := &fakeLotRepo{lots: []*entity.InventoryLot{testLot("l", 25, false)}}
	uc := alert.NewEvaluatorUseCase(lotRepo, cfgRepo, testDefaults)

	decisions, err := uc.Evaluate(context.Background(), testCaregiverID, testChildID)
	require.NoError(t, err)
	require.Len(t, decisions, 1)

	assert.True(t, decisions[0].ShouldAlert, "con umbral bajo personalizado de 30, 25 unidades alerta")
	assert.Equal(t, alert.LevelLow, decisions[0].Level)
}
