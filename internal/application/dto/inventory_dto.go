package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogUsageRequest body para POST /api/usage-events.
type LogUsageRequest struct {
	ChildID     string     `json:"child_id"`
	CategoryKey string     `json:"category_key"`
	LoggedAt    *time.Time `json:"logged_at,omitempty"` // vacío = ahora
	Wet         bool       `json:"wet,omitempty"`
	Soiled      bool       `json:"soiled,omitempty"`
	Leaked      bool       `json:"leaked,omitempty"`
	Overnight   bool       `json:"overnight,omitempty"`
}

// RegisterLotRequest body para POST /api/lots.
type RegisterLotRequest struct {
	ChildID           string          `json:"child_id"`
	CategoryKey       string          `json:"category_key"`
	QuantityPurchased int             `json:"quantity_purchased"`
	IsPendingDelivery bool            `json:"is_pending_delivery,omitempty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
}

// AdjustStockRequest body para POST /api/lots/:id/adjust.
// NewQuantity es la cantidad restante resultante (no un delta).
type AdjustStockRequest struct {
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason,omitempty"`
}

// LotDTO representación de un lote en respuestas.
type LotDTO struct {
	ID                string          `json:"id"`
	ChildID           string          `json:"child_id"`
	CategoryKey       string          `json:"category_key"`
	QuantityPurchased int             `json:"quantity_purchased"`
	QuantityRemaining int             `json:"quantity_remaining"`
	IsPendingDelivery bool            `json:"is_pending_delivery"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
