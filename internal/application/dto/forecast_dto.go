package dto

import "time"

// ConsumptionEstimateDTO tasa de consumo estimada de una categoría.
type ConsumptionEstimateDTO struct {
	ChildID     string  `json:"child_id"`
	CategoryKey string  `json:"category_key"`
	DailyRate   float64 `json:"daily_rate"`   // eventos por día
	WindowDays  int     `json:"window_days"`  // ventana usada
	SampleCount int     `json:"sample_count"` // eventos observados; 0 = tasa por defecto
}

// LotStatusDTO clasificación de un lote. El bucket y la bandera de entrega
// pendiente son ejes independientes y se renderizan por separado.
type LotStatusDTO struct {
	LotID              string   `json:"lot_id"`
	CategoryKey        string   `json:"category_key"`
	Bucket             string   `json:"bucket"` // CRITICAL | LOW | STOCKED | UNKNOWN
	IsPendingDelivery  bool     `json:"is_pending_delivery"`
	DaysUntilDepletion *float64 `json:"days_until_depletion,omitempty"`
	DaysUntilExpiry    *float64 `json:"days_until_expiry,omitempty"`
	IsExpired          bool     `json:"is_expired"`
}

// CategoryForecastDTO pronóstico de una categoría: estimación + lotes.
type CategoryForecastDTO struct {
	CategoryKey        string                 `json:"category_key"`
	OnHandQuantity     int                    `json:"on_hand_quantity"`
	PendingQuantity    int                    `json:"pending_quantity"`
	Estimate           ConsumptionEstimateDTO `json:"estimate"`
	DaysUntilDepletion float64                `json:"days_until_depletion"`
	DepletionDate      time.Time              `json:"depletion_date"`
	Lots               []LotStatusDTO         `json:"lots"`
}

// ForecastResponse respuesta de GET /api/children/:id/forecast.
type ForecastResponse struct {
	ChildID    string                `json:"child_id"`
	AsOf       time.Time             `json:"as_of"`
	Categories []CategoryForecastDTO `json:"categories"`
}
