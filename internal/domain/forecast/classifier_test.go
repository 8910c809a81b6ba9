package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Nido-api/internal/domain/forecast"
)

func days(v float64) *float64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de lotes: escenarios de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_Escenarios(t *testing.T) {
	th := forecast.DefaultThresholds()

	tests := []struct {
		name      string
		remaining int
		expiry    *float64
		isExpired bool
		want      forecast.Bucket
	}{
		{"agotado sin vencimiento", 0, nil, false, forecast.BucketCritical},
		{"vencido con stock", 20, days(-1), true, forecast.BucketCritical},
		{"critico por vencimiento en 2 dias", 20, days(2), false, forecast.BucketCritical},
		{"critico justo en el limite de 3 dias", 10, days(3), false, forecast.BucketCritical},
		{"bajo: vence en 6 dias", 5, days(6), false, forecast.BucketLow},
		{"bajo por vencimiento fraccional en 3.5 dias", 20, days(3.5), false, forecast.BucketLow},
		{"bajo justo en el limite de 7 dias", 5, days(7), false, forecast.BucketLow},
		{"bien surtido: vence en 30 dias", 40, days(30), false, forecast.BucketStocked},
		{"bien surtido sin vencimiento", 12, nil, false, forecast.BucketStocked},
		{"apenas sobre el limite bajo", 5, days(7.01), false, forecast.BucketStocked},
		{"cantidad negativa: integridad rota", -1, days(30), false, forecast.BucketUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forecast.Classify(tt.remaining, tt.expiry, tt.isExpired, th)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestClassify_Completitud verifica que toda tupla válida cae en exactamente
// un bucket: nunca UNKNOWN, nunca ambigüedad.
func TestClassify_Completitud(t *testing.T) {
	th := forecast.DefaultThresholds()

	quantities := []int{0, 1, 5, 40, 1000}
	expiries := []*float64{nil, days(-5), days(0), days(1), days(3), days(3.5), days(4), days(7), days(8), days(365)}

	for _, q := range quantities {
		for _, e := range expiries {
			for _, expired := range []bool{false, true} {
				// isExpired solo es coherente con expiry <= 0, pero la función
				// debe clasificar cualquier combinación de entrada válida.
				got := forecast.Classify(q, e, expired, th)
				require.NotEqual(t, forecast.BucketUnknown, got,
					"cantidad válida %d no debe quedar sin clasificar", q)
				require.Contains(t,
					[]forecast.Bucket{forecast.BucketCritical, forecast.BucketLow, forecast.BucketStocked},
					got)
			}
		}
	}
}

// TestClassify_UmbralesConfigurables verifica que los límites 3/7 no están
// cableados: con otros umbrales cambia la clasificación.
func TestClassify_UmbralesConfigurables(t *testing.T) {
	th := forecast.Thresholds{CriticalExpiryDays: 1, LowExpiryDays: 2, FullCoverageDays: 14, DefaultDailyRate: 5}

	assert.Equal(t, forecast.BucketStocked, forecast.Classify(5, days(6), false, th),
		"con umbral bajo de 2 días, vencer en 6 ya no es LOW")
	assert.Equal(t, forecast.BucketCritical, forecast.Classify(5, days(1), false, th))
}

// ──────────────────────────────────────────────────────────────────────────────
// Días hasta agotamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysUntilDepletion_Monotonia(t *testing.T) {
	th := forecast.DefaultThresholds()

	// A tasa fija, más stock disponible => más días de cobertura (estricto).
	prev := -1.0
	for _, qty := range []int{0, 1, 5, 10, 50, 200} {
		d := forecast.DaysUntilDepletion(qty, 4, th)
		assert.Greater(t, d, prev, "la cobertura debe crecer estrictamente con el stock")
		prev = d
	}

	// A stock fijo, mayor tasa de consumo => menos días.
	assert.Greater(t,
		forecast.DaysUntilDepletion(20, 2, th),
		forecast.DaysUntilDepletion(20, 8, th))
}

func TestDaysUntilDepletion_TasaNoPositiva(t *testing.T) {
	th := forecast.DefaultThresholds()

	// Tasa cero o negativa usa la tasa por defecto: nunca Inf, nunca NaN.
	d := forecast.DaysUntilDepletion(10, 0, th)
	require.False(t, d != d, "no debe ser NaN")
	assert.InDelta(t, 10/th.DefaultDailyRate, d, 1e-9)

	d = forecast.DaysUntilDepletion(10, -3, th)
	assert.InDelta(t, 10/th.DefaultDailyRate, d, 1e-9)
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.InDelta(t, 2, forecast.DaysUntilExpiry(now.Add(48*time.Hour), now), 1e-9)
	assert.InDelta(t, -1, forecast.DaysUntilExpiry(now.Add(-24*time.Hour), now), 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Puntaje de preparación
// ──────────────────────────────────────────────────────────────────────────────

func TestReadinessScore_Saturacion(t *testing.T) {
	th := forecast.DefaultThresholds()

	assert.Equal(t, 0, forecast.ReadinessScore(0, th))
	assert.Equal(t, 0, forecast.ReadinessScore(-2, th))
	assert.Equal(t, 50, forecast.ReadinessScore(7, th))
	assert.Equal(t, 100, forecast.ReadinessScore(14, th))
	assert.Equal(t, 100, forecast.ReadinessScore(60, th), "satura en 100 por encima de la cobertura plena")
}

func TestReadinessScore_Monotonia(t *testing.T) {
	th := forecast.DefaultThresholds()

	prev := -1
	for c := 0.0; c <= 20; c += 0.25 {
		s := forecast.ReadinessScore(c, th)
		require.GreaterOrEqual(t, s, prev, "el puntaje debe ser monótono no decreciente en la cobertura")
		require.GreaterOrEqual(t, s, 0)
		require.LessOrEqual(t, s, 100)
		prev = s
	}
}
