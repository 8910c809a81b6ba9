package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
	"github.com/jhoicas/Nido-api/internal/domain/repository"
)

var _ repository.UsageEventRepository = (*UsageEventRepo)(nil)

// UsageEventRepo implementación de UsageEventRepository sobre PostgreSQL (usable con pool o tx).
type UsageEventRepo struct {
	q Querier
}

// NewUsageEventRepository construye el adaptador de eventos de consumo. Pasar pool o tx (Querier).
func NewUsageEventRepository(q Querier) *UsageEventRepo {
	return &UsageEventRepo{q: q}
}

// Create persiste un evento de consumo nuevo.
func (r *UsageEventRepo) Create(ctx context.Context, event *entity.UsageEvent) error {
	query := `
		INSERT INTO usage_events (id, child_id, category_key, logged_at,
			attr_wet, attr_soiled, attr_leaked, attr_overnight, caregiver_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.ChildID, event.CategoryKey, event.LoggedAt,
		event.Attributes.Wet, event.Attributes.Soiled, event.Attributes.Leaked,
		event.Attributes.Overnight, event.CaregiverID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert evento de consumo: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por id (incluye eliminados).
func (r *UsageEventRepo) GetByID(ctx context.Context, id string) (*entity.UsageEvent, error) {
	query := `
		SELECT id, child_id, category_key, logged_at,
			attr_wet, attr_soiled, attr_leaked, attr_overnight, caregiver_id, deleted_at
		FROM usage_events WHERE id = $1`
	var e entity.UsageEvent
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.ChildID, &e.CategoryKey, &e.LoggedAt,
		&e.Attributes.Wet, &e.Attributes.Soiled, &e.Attributes.Leaked,
		&e.Attributes.Overnight, &e.CaregiverID, &e.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get evento de consumo: %w", err)
	}
	return &e, nil
}

// ListSince lista los eventos activos del niño y categoría desde una fecha (ascendente).
func (r *UsageEventRepo) ListSince(ctx context.Context, childID, categoryKey string, since time.Time) ([]*entity.UsageEvent, error) {
	query := `
		SELECT id, child_id, category_key, logged_at,
			attr_wet, attr_soiled, attr_leaked, attr_overnight, caregiver_id, deleted_at
		FROM usage_events
		WHERE child_id = $1 AND category_key = $2 AND logged_at >= $3 AND deleted_at IS NULL
		ORDER BY logged_at ASC`
	rows, err := r.q.Query(ctx, query, childID, categoryKey, since)
	if err != nil {
		return nil, fmt.Errorf("list eventos de consumo: %w", err)
	}
	defer rows.Close()

	var events []*entity.UsageEvent
	for rows.Next() {
		var e entity.UsageEvent
		if err := rows.Scan(
			&e.ID, &e.ChildID, &e.CategoryKey, &e.LoggedAt,
			&e.Attributes.Wet, &e.Attributes.Soiled, &e.Attributes.Leaked,
			&e.Attributes.Overnight, &e.CaregiverID, &e.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan evento: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}

// CountSince cuenta los eventos activos de la ventana sin materializarlos.
func (r *UsageEventRepo) CountSince(ctx context.Context, childID, categoryKey string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM usage_events
		WHERE child_id = $1 AND category_key = $2 AND logged_at >= $3 AND deleted_at IS NULL`
	var count int
	if err := r.q.QueryRow(ctx, query, childID, categoryKey, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count eventos de consumo: %w", err)
	}
	return count, nil
}

// SoftDelete marca un evento como eliminado.
func (r *UsageEventRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE usage_events SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete evento: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
