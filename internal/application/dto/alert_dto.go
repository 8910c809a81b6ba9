package dto

import "time"

// AlertConfigRequest body para PUT /api/alert-settings/:caregiverId.
type AlertConfigRequest struct {
	ChildID                string `json:"child_id"`
	LowStockThreshold      int    `json:"low_stock_threshold"`
	CriticalStockThreshold int    `json:"critical_stock_threshold"`
	WindowDays             int    `json:"window_days,omitempty"` // vacío = default
}

// AlertConfigDTO configuración vigente de umbrales.
type AlertConfigDTO struct {
	CaregiverID            string    `json:"caregiver_id"`
	ChildID                string    `json:"child_id"`
	LowStockThreshold      int       `json:"low_stock_threshold"`
	CriticalStockThreshold int       `json:"critical_stock_threshold"`
	WindowDays             int       `json:"window_days"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// AlertDecisionDTO decisión de alerta por lote. La entrega de la notificación
// es responsabilidad del colaborador externo; aquí solo se decide.
type AlertDecisionDTO struct {
	LotID             string `json:"lot_id"`
	CategoryKey       string `json:"category_key"`
	QuantityRemaining int    `json:"quantity_remaining"`
	ShouldAlert       bool   `json:"should_alert"`
	Level             string `json:"level,omitempty"` // critical | low
	IsPendingDelivery bool   `json:"is_pending_delivery"`
}
