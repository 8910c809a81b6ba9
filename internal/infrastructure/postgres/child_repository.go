package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

var _ repository.ChildRepository = (*ChildRepo)(nil)

// ChildRepo implementación de solo lectura de ChildRepository sobre PostgreSQL.
type ChildRepo struct {
	q Querier
}

// NewChildRepository construye el adaptador de niños. Pasar pool o tx (Querier).
func NewChildRepository(q Querier) *ChildRepo {
	return &ChildRepo{q: q}
}

// GetByID obtiene un niño por id.
func (r *ChildRepo) GetByID(ctx context.Context, id string) (*entity.Child, error) {
	query := `
		SELECT id, household_id, name, birth_date, created_at
		FROM children WHERE id = $1`
	var c entity.Child
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.HouseholdID, &c.Name, &c.BirthDate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get niño: %w", err)
	}
	return &c, nil
}

// ListByHousehold lista los niños de un hogar.
func (r *ChildRepo) ListByHousehold(ctx context.Context, householdID string) ([]*entity.Child, error) {
	query := `
		SELECT id, household_id, name, birth_date, created_at
		FROM children WHERE household_id = $1
		ORDER BY birth_date DESC`
	rows, err := r.q.Query(ctx, query, householdID)
	if err != nil {
		return nil, fmt.Errorf("list niños: %w", err)
	}
	defer rows.Close()

	var children []*entity.Child
	for rows.Next() {
		var c entity.Child
		if err := rows.Scan(&c.ID, &c.HouseholdID, &c.Name, &c.BirthDate, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan niño: %w", err)
		}
		children = append(children, &c)
	}
	return children, rows.Err()
}
