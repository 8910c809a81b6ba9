package entity

import "time"

// UsageAttributes describe el evento de consumo con campos opcionales fijos.
// Son opacos para la matemática de pronóstico; solo los usa la presentación.
// Se modelan como registro cerrado (y no como mapa abierto) para que el
// esquema quede explícito en el tipo.
type UsageAttributes struct {
	Wet       bool
	Soiled    bool
	Leaked    bool
	Overnight bool
}

// UsageEvent representa una acción de consumo: un evento equivale siempre a
// exactamente una unidad de la categoría indicada.
//
// Inmutable una vez creado. Las correcciones se modelan como soft delete más
// un evento nuevo, nunca como edición, para preservar la pista de auditoría.
type UsageEvent struct {
	ID          string
	ChildID     string
	CategoryKey string
	LoggedAt    time.Time
	Attributes  UsageAttributes
	CaregiverID string
	DeletedAt   *time.Time // soft delete; nil = activo
}
