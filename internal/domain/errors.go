package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrCorruptQuantity indica cantidades imposibles persistidas (restante
	// negativo o mayor que lo comprado). Se rechaza la clasificación en lugar
	// de recortar el valor: recortar ocultaría un bug en la ruta de escritura.
	ErrCorruptQuantity = errors.New("cantidad de lote corrupta")

	// ErrInvalidThresholds indica una configuración de alertas donde el umbral
	// crítico no es menor que el umbral bajo.
	ErrInvalidThresholds = errors.New("umbral crítico debe ser menor que el umbral bajo")
)
