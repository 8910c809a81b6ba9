package forecast

import "time"

// Classify asigna un bucket de preparación a un lote (servicio de dominio puro).
//
// Reglas en orden de prioridad (gana la primera que aplique):
//  1. CRITICAL: restante == 0, o vencido, o vence en <= CriticalExpiryDays.
//  2. LOW:      restante > 0 y vence en (CriticalExpiryDays, LowExpiryDays].
//  3. STOCKED:  restante > 0 y (sin vencimiento o vence después de LowExpiryDays).
//
// Una cantidad negativa es un fallo de integridad de datos y devuelve
// BucketUnknown: el motor no recorta valores imposibles.
// La bandera de entrega pendiente NO participa aquí; es un eje ortogonal.
func Classify(quantityRemaining int, daysUntilExpiry *float64, isExpired bool, th Thresholds) Bucket {
	if quantityRemaining < 0 {
		return BucketUnknown
	}
	if quantityRemaining == 0 || isExpired {
		return BucketCritical
	}
	if daysUntilExpiry != nil {
		if *daysUntilExpiry <= th.CriticalExpiryDays {
			return BucketCritical
		}
		if *daysUntilExpiry <= th.LowExpiryDays {
			return BucketLow
		}
	}
	// Sin vencimiento o vence lejos: con cantidad positiva siempre STOCKED.
	return BucketStocked
}

// DaysUntilExpiry días calendario hasta el vencimiento respecto de now.
// Negativo o cero significa vencido.
func DaysUntilExpiry(expiresAt, now time.Time) float64 {
	return expiresAt.Sub(now).Hours() / 24
}

// DaysUntilDepletion días de suministro restantes dado el stock disponible y la
// tasa diaria. Una tasa no positiva se reemplaza por la tasa por defecto para
// no dividir por cero ni reportar días infinitos en un perfil nuevo.
func DaysUntilDepletion(onHandQuantity int, dailyRate float64, th Thresholds) float64 {
	if dailyRate <= 0 {
		dailyRate = th.DefaultDailyRate
	}
	return float64(onHandQuantity) / dailyRate
}
