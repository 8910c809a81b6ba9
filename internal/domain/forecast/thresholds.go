package forecast

// Thresholds parámetros del motor de pronóstico. Son configuración por
// despliegue (pkg/config los carga desde el entorno), no constantes mágicas.
//
// Los límites de 3/7 días dan margen de varios días para reponer bienes
// físicos con entrega no inmediata.
type Thresholds struct {
	CriticalExpiryDays float64 // vence en <= N días -> CRITICAL
	LowExpiryDays      float64 // vence en (CriticalExpiryDays, N] días -> LOW
	FullCoverageDays   float64 // cobertura >= N días -> puntaje 100
	DefaultDailyRate   float64 // tasa de respaldo cuando no hay eventos en la ventana
	WindowDays         int     // ventana deslizante del estimador
}

// DefaultThresholds valores por defecto declarados en la configuración.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalExpiryDays: 3,
		LowExpiryDays:      7,
		FullCoverageDays:   14,
		DefaultDailyRate:   5, // conservador: recién nacido consume ~5-8 pañales/día
		WindowDays:         7,
	}
}
