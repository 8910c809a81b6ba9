package repository

import (
	"context"

	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// ChildRepository puerto de solo lectura sobre perfiles de niños.
// La creación y eliminación pertenecen al colaborador externo de perfiles.
type ChildRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Child, error)
	ListByHousehold(ctx context.Context, householdID string) ([]*entity.Child, error)
}
