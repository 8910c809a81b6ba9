package forecast_test

import (
	"context"
	"time"

	"github.com/jhoicas/Nido-api/internal/domain"
	"github.com/jhoicas/Nido-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type fakeEventRepo struct {
	events []*entity.UsageEvent
	err    error
}

func (f *fakeEventRepo) Create(_ context.Context, e *entity.UsageEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.UsageEvent, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListSince(_ context.Context, childID, categoryKey string, since time.Time) ([]*entity.UsageEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.UsageEvent
	for _, e := range f.events {
		if e.ChildID == childID && e.CategoryKey == categoryKey && e.DeletedAt == nil && !e.LoggedAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) CountSince(ctx context.Context, childID, categoryKey string, since time.Time) (int, error) {
	evs, err := f.ListSince(ctx, childID, categoryKey, since)
	return len(evs), err
}

func (f *fakeEventRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	for _, e := range f.events {
		if e.ID == id {
			e.DeletedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeLotRepo struct {
	lots []*entity.InventoryLot
}

func (f *fakeLotRepo) Create(_ context.Context, l *entity.InventoryLot) error {
	f.lots = append(f.lots, l)
	return nil
}

func (f *fakeLotRepo) GetByID(_ context.Context, id string) (*entity.InventoryLot, error) {
	for _, l := range f.lots {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLotRepo) ListByChild(_ context.Context, childID, categoryKey string, includeDeleted bool) ([]*entity.InventoryLot, error) {
	var out []*entity.InventoryLot
	for _, l := range f.lots {
		if l.ChildID != childID {
			continue
		}
		if categoryKey != "" && l.CategoryKey != categoryKey {
			continue
		}
		if !includeDeleted && !l.Active() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLotRepo) ListActiveCategories(_ context.Context, childID string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, l := range f.lots {
		if l.ChildID == childID && l.Active() && !seen[l.CategoryKey] {
			seen[l.CategoryKey] = true
			out = append(out, l.CategoryKey)
		}
	}
	return out, nil
}

func (f *fakeLotRepo) GetOldestConsumableForUpdate(_ context.Context, childID, categoryKey string) (*entity.InventoryLot, error) {
	var best *entity.InventoryLot
	for _, l := range f.lots {
		if l.ChildID != childID || l.CategoryKey != categoryKey || !l.Active() ||
			l.IsPendingDelivery || l.QuantityRemaining <= 0 {
			continue
		}
		if best == nil || l.CreatedAt.Before(best.CreatedAt) {
			best = l
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

func (f *fakeLotRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLot, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLotRepo) UpdateQuantity(_ context.Context, id string, quantityRemaining int, _ time.Time) error {
	for _, l := range f.lots {
		if l.ID == id {
			l.QuantityRemaining = quantityRemaining
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeLotRepo) MarkDelivered(_ context.Context, id string, _ time.Time) error {
	for _, l := range f.lots {
		if l.ID == id {
			l.IsPendingDelivery = false
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeLotRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	for _, l := range f.lots {
		if l.ID == id {
			l.DeletedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeLotRepo) GetLastConsumedForUpdate(_ context.Context, childID, categoryKey string) (*entity.InventoryLot, error) {
	var best *entity.InventoryLot
	for _, l := range f.lots {
		if l.ChildID != childID || l.CategoryKey != categoryKey || !l.Active() ||
			l.IsPendingDelivery || l.QuantityRemaining >= l.QuantityPurchased {
			continue
		}
		if best == nil || l.CreatedAt.After(best.CreatedAt) {
			best = l
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}

type fakeChildRepo struct {
	children map[string]*entity.Child
}

func (f *fakeChildRepo) GetByID(_ context.Context, id string) (*entity.Child, error) {
	c, ok := f.children[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeChildRepo) ListByHousehold(_ context.Context, householdID string) ([]*entity.Child, error) {
	var out []*entity.Child
	for _, c := range f.children {
		if c.HouseholdID == householdID {
			out = append(out, c)
		}
	}
	return out, nil
}
