package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLot representa un lote comprado de un consumible (paquete de pañales,
// caja de toallitas, lata de fórmula) asociado a un niño y una categoría.
//
// Invariante: 0 <= QuantityRemaining <= QuantityPurchased. La cantidad restante
// solo la mutan los eventos de consumo y los ajustes manuales de stock.
// Un lote con IsPendingDelivery=true es stock pedido pero no recibido: cuenta
// como suministro futuro, nunca como disponible para la clasificación.
type InventoryLot struct {
	ID                string
	ChildID           string
	CategoryKey       string // bucket de talla/tipo, ej. "diaper_t3", "wipes"
	QuantityPurchased int
	QuantityRemaining int
	IsPendingDelivery bool
	UnitCost          decimal.Decimal // costo unitario de compra
	ExpiresAt         *time.Time      // opcional; nil = sin vencimiento
	CreatedAt         time.Time
	DeletedAt         *time.Time // soft delete; nil = activo
}

// Active indica si el lote sigue vivo (no eliminado lógicamente).
func (l *InventoryLot) Active() bool {
	return l.DeletedAt == nil
}

// QuantityValid verifica el invariante de cantidades del lote.
func (l *InventoryLot) QuantityValid() bool {
	return l.QuantityRemaining >= 0 && l.QuantityRemaining <= l.QuantityPurchased
}
