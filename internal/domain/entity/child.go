package entity

import "time"

// Child representa un dependiente del hogar (bebé o niño pequeño).
// Entidad de solo lectura para el motor de pronóstico: la crea y destruye
// el colaborador externo de gestión de perfiles.
type Child struct {
	ID          string
	HouseholdID string
	Name        string
	BirthDate   time.Time
	CreatedAt   time.Time
}
