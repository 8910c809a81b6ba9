package entity

import "time"

// AlertConfig umbrales de alerta por cuidador y niño. Los umbrales son por
// cantidad (unidades restantes), independientes de la clasificación por días.
//
// Invariante: CriticalStockThreshold < LowStockThreshold. Se valida antes de
// persistir; una configuración inválida nunca se "arregla" intercambiando
// los valores.
type AlertConfig struct {
	CaregiverID            string
	ChildID                string
	LowStockThreshold      int
	CriticalStockThreshold int
	WindowDays             int // ventana del estimador de consumo
	UpdatedAt              time.Time
}

// Valid verifica el invariante de umbrales.
func (c *AlertConfig) Valid() bool {
	return c.CriticalStockThreshold >= 0 &&
		c.CriticalStockThreshold < c.LowStockThreshold &&
		c.WindowDays > 0
}
