package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO resumen de preparación de un niño para el tablero
// principal de la app.
type DashboardSummaryDTO struct {
	ChildID        string         `json:"child_id"`
	AsOf           time.Time      `json:"as_of"`
	CountsByBucket map[string]int `json:"counts_by_bucket"` // CRITICAL/LOW/STOCKED/UNKNOWN -> n lotes
	ReadinessScore int            `json:"readiness_score"`  // 0-100
	DaysOfCoverage float64        `json:"days_of_coverage"` // mínimo entre categorías con stock
	// EstimatedMonthlySpend gasto mensual proyectado: tasa diaria × 30 × costo
	// unitario promedio, sumado sobre las categorías activas.
	EstimatedMonthlySpend decimal.Decimal       `json:"estimated_monthly_spend"`
	Categories            []CategoryForecastDTO `json:"categories"`
}
