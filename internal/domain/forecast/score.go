package forecast

import "math"

// ReadinessScore convierte días de cobertura en un puntaje 0–100 para el
// tablero: 0 con cero días, 100 con FullCoverageDays o más, lineal entre ambos.
// La curva exacta es un detalle de presentación, pero debe ser monótona no
// decreciente y determinista.
func ReadinessScore(daysOfCoverage float64, th Thresholds) int {
	if daysOfCoverage <= 0 {
		return 0
	}
	full := th.FullCoverageDays
	if full <= 0 {
		full = DefaultThresholds().FullCoverageDays
	}
	if daysOfCoverage >= full {
		return 100
	}
	return int(math.Round(daysOfCoverage / full * 100))
}
