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

var _ repository.InventoryLotRepository = (*InventoryLotRepo)(nil)

const lotColumns = `id, child_id, category_key, quantity_purchased, quantity_remaining,
		is_pending_delivery, unit_cost, expires_at, created_at, deleted_at`

// InventoryLotRepo implementación de InventoryLotRepository sobre PostgreSQL (usable con pool o tx).
type InventoryLotRepo struct {
	q Querier
}

// NewInventoryLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewInventoryLotRepository(q Querier) *InventoryLotRepo {
	return &InventoryLotRepo{q: q}
}

func scanLot(row pgx.Row) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	err := row.Scan(
		&l.ID, &l.ChildID, &l.CategoryKey, &l.QuantityPurchased, &l.QuantityRemaining,
		&l.IsPendingDelivery, &l.UnitCost, &l.ExpiresAt, &l.CreatedAt, &l.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste un lote nuevo.
func (r *InventoryLotRepo) Create(ctx context.Context, lot *entity.InventoryLot) error {
	query := `
		INSERT INTO supply_lots (id, child_id, category_key, quantity_purchased, quantity_remaining,
			is_pending_delivery, unit_cost, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.ChildID, lot.CategoryKey, lot.QuantityPurchased, lot.QuantityRemaining,
		lot.IsPendingDelivery, lot.UnitCost, lot.ExpiresAt, lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por id (incluye eliminados).
func (r *InventoryLotRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM supply_lots WHERE id = $1`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return lot, nil
}

// ListByChild lista los lotes de un niño, filtrando por categoría si se indica.
func (r *InventoryLotRepo) ListByChild(ctx context.Context, childID, categoryKey string, includeDeleted bool) ([]*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM supply_lots WHERE child_id = $1`
	args := []any{childID}
	if categoryKey != "" {
		query += ` AND category_key = $2`
		args = append(args, categoryKey)
	}
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var lots []*entity.InventoryLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// ListActiveCategories devuelve las categorías con al menos un lote activo del niño.
func (r *InventoryLotRepo) ListActiveCategories(ctx context.Context, childID string) ([]string, error) {
	query := `
		SELECT DISTINCT category_key FROM supply_lots
		WHERE child_id = $1 AND deleted_at IS NULL
		ORDER BY category_key`
	rows, err := r.q.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("list categorías: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan categoría: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// GetOldestConsumableForUpdate bloquea el lote disponible más antiguo de la categoría
// (vencimiento más próximo primero, luego fecha de compra). FIFO de consumo.
func (r *InventoryLotRepo) GetOldestConsumableForUpdate(ctx context.Context, childID, categoryKey string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM supply_lots
		WHERE child_id = $1 AND category_key = $2
			AND deleted_at IS NULL AND is_pending_delivery = false AND quantity_remaining > 0
		ORDER BY expires_at ASC NULLS LAST, created_at ASC
		LIMIT 1
		FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(ctx, query, childID, categoryKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lote consumible for update: %w", err)
	}
	return lot, nil
}

// GetForUpdate bloquea un lote puntual por id (SELECT FOR UPDATE).
func (r *InventoryLotRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM supply_lots WHERE id = $1 FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lote for update: %w", err)
	}
	return lot, nil
}

// UpdateQuantity fija la cantidad restante de un lote.
func (r *InventoryLotRepo) UpdateQuantity(ctx context.Context, id string, quantityRemaining int, at time.Time) error {
	query := `UPDATE supply_lots SET quantity_remaining = $2, updated_at = $3 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, quantityRemaining, at)
	if err != nil {
		return fmt.Errorf("update cantidad lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkDelivered cambia un lote pendiente de entrega a disponible.
func (r *InventoryLotRepo) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE supply_lots SET is_pending_delivery = false, updated_at = $2
		WHERE id = $1 AND is_pending_delivery = true AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("marcar lote entregado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el lote como eliminado.
func (r *InventoryLotRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE supply_lots SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetLastConsumedForUpdate bloquea el lote del que se descontó más recientemente
// en la categoría (restante < comprado, ordenado por updated_at descendente).
func (r *InventoryLotRepo) GetLastConsumedForUpdate(ctx context.Context, childID, categoryKey string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + `
		FROM supply_lots
		WHERE child_id = $1 AND category_key = $2
			AND deleted_at IS NULL AND is_pending_delivery = false
			AND quantity_remaining < quantity_purchased
		ORDER BY updated_at DESC
		LIMIT 1
		FOR UPDATE`
	lot, err := scanLot(r.q.QueryRow(ctx, query, childID, categoryKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get último lote consumido for update: %w", err)
	}
	return lot, nil
}
