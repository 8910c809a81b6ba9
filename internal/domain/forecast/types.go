// Package forecast contiene la matemática pura del motor de pronóstico de
// suministros: tasa de consumo, días de cobertura, clasificación de lotes y
// puntaje de preparación. Todas las funciones son deterministas y reciben el
// "ahora" como parámetro; nada aquí lee el reloj ni muta estado compartido.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bucket es la categoría de preparación de un lote o categoría.
type Bucket string

const (
	BucketCritical Bucket = "CRITICAL"
	BucketLow      Bucket = "LOW"
	BucketStocked  Bucket = "STOCKED"
	// BucketUnknown se devuelve cuando las cantidades persistidas son
	// imposibles (fallo de integridad): el motor se niega a clasificar en
	// lugar de recortar el valor.
	BucketUnknown Bucket = "UNKNOWN"
)

// ConsumptionEstimate tasa de consumo diario suavizada por (niño, categoría).
// Objeto de valor derivado: se recalcula bajo demanda y nunca se cachea más
// allá de una pasada de agregación.
type ConsumptionEstimate struct {
	ChildID     string
	CategoryKey string
	DailyRate   float64 // eventos por día; cada evento = una unidad
	WindowDays  int
	SampleCount int
}

// StatusClassification resultado de clasificar un lote.
// IsPendingDelivery es una bandera ortogonal, no un valor del bucket: un lote
// puede ser CRITICAL y a la vez tener un pedido en camino, y el mensaje al
// usuario es distinto en cada eje.
type StatusClassification struct {
	LotID              string
	CategoryKey        string
	Bucket             Bucket
	IsPendingDelivery  bool
	DaysUntilDepletion *float64 // nil cuando el bucket es UNKNOWN
	DaysUntilExpiry    *float64 // nil cuando el lote no vence
	IsExpired          bool
}

// CategorySupply resumen de suministro por categoría.
type CategorySupply struct {
	CategoryKey        string
	OnHandQuantity     int // suma de restantes en lotes no pendientes
	PendingQuantity    int // suma de restantes en lotes pendientes de entrega
	DailyRate          float64
	DaysUntilDepletion float64
	// AvgUnitCost costo unitario promedio ponderado del stock disponible
	// (misma ponderación que el costo promedio de un inventario clásico).
	AvgUnitCost decimal.Decimal
	Lots        []StatusClassification
}

// DashboardSummary resumen de preparación de un niño para el tablero principal.
type DashboardSummary struct {
	ChildID        string
	AsOf           time.Time
	CountsByBucket map[Bucket]int
	ReadinessScore int     // 0–100, derivado de DaysOfCoverage
	DaysOfCoverage float64 // mínimo de días hasta agotamiento entre categorías con stock
	Categories     []CategorySupply
}
