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

var _ repository.AlertConfigRepository = (*AlertConfigRepo)(nil)

// AlertConfigRepo implementación de AlertConfigRepository sobre PostgreSQL.
type AlertConfigRepo struct {
	q Querier
}

// NewAlertConfigRepository construye el adaptador de configuración de alertas.
func NewAlertConfigRepository(q Querier) *AlertConfigRepo {
	return &AlertConfigRepo{q: q}
}

// Get obtiene la configuración de un cuidador para un niño.
// Devuelve ErrNotFound si nunca se guardó (el caso de uso aplica los defaults).
func (r *AlertConfigRepo) Get(ctx context.Context, caregiverID, childID string) (*entity.AlertConfig, error) {
	query := `
		SELECT caregiver_id, child_id, low_stock_threshold, critical_stock_threshold, window_days, updated_at
		FROM alert_configs WHERE caregiver_id = $1 AND child_id = $2`
	var cfg entity.AlertConfig
	err := r.q.QueryRow(ctx, query, caregiverID, childID).Scan(
		&cfg.CaregiverID, &cfg.ChildID, &cfg.LowStockThreshold,
		&cfg.CriticalStockThreshold, &cfg.WindowDays, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get config de alertas: %w", err)
	}
	return &cfg, nil
}

// Upsert inserta o actualiza la configuración (por cuidador y niño).
func (r *AlertConfigRepo) Upsert(ctx context.Context, cfg *entity.AlertConfig) error {
	query := `
		INSERT INTO alert_configs (caregiver_id, child_id, low_stock_threshold, critical_stock_threshold, window_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (caregiver_id, child_id)
		DO UPDATE SET low_stock_threshold = EXCLUDED.low_stock_threshold,
			critical_stock_threshold = EXCLUDED.critical_stock_threshold,
			window_days = EXCLUDED.window_days,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		cfg.CaregiverID, cfg.ChildID, cfg.LowStockThreshold,
		cfg.CriticalStockThreshold, cfg.WindowDays, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert config de alertas: %w", err)
	}
	return nil
}
