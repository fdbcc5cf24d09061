package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shelter-dashboard/internal/domain/inventory"
)

type inventoryRepo struct {
	mu    sync.RWMutex
	bySKU map[string]inventory.Item
}

func NewInventoryRepo() inventory.Repository {
	return &inventoryRepo{
		bySKU: make(map[string]inventory.Item),
	}
}

func (r *inventoryRepo) Create(ctx context.Context, it inventory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ex := range r.bySKU {
		if ex.SKU == it.SKU || ex.UPC == it.UPC {
			return inventory.ErrDuplicate
		}
	}
	r.bySKU[it.SKU] = it
	return nil
}

func (r *inventoryRepo) GetBySKU(ctx context.Context, sku string) (inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.bySKU[sku]
	if !ok {
		return inventory.Item{}, inventory.ErrNotFound
	}
	return it, nil
}

func (r *inventoryRepo) List(ctx context.Context) ([]inventory.Item, error) {
	return r.filter(func(inventory.Item) bool { return true }), nil
}

func (r *inventoryRepo) SearchByName(ctx context.Context, term string) ([]inventory.Item, error) {
	term = strings.ToLower(term)
	return r.filter(func(it inventory.Item) bool {
		return strings.Contains(strings.ToLower(it.Name), term)
	}), nil
}

func (r *inventoryRepo) ListZeroStock(ctx context.Context) ([]inventory.Item, error) {
	return r.filter(func(it inventory.Item) bool { return it.Quantity == 0 }), nil
}

func (r *inventoryRepo) UpdateQuantity(ctx context.Context, sku string, fn inventory.QuantityFunc, at time.Time) (inventory.Item, inventory.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before, ok := r.bySKU[sku]
	if !ok {
		return inventory.Item{}, inventory.Item{}, inventory.ErrNotFound
	}
	after := before
	after.Quantity = fn(before.Quantity)
	if after.Quantity < 0 {
		after.Quantity = 0
	}
	after.UpdatedAt = at
	r.bySKU[sku] = after
	return before, after, nil
}

func (r *inventoryRepo) DeleteBySKU(ctx context.Context, sku string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySKU[sku]; !ok {
		return inventory.ErrNotFound
	}
	delete(r.bySKU, sku)
	return nil
}

// filter devuelve los items que cumplen keep, ordenados por nombre (case-insensitive).
func (r *inventoryRepo) filter(keep func(inventory.Item) bool) []inventory.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]inventory.Item, 0)
	for _, it := range r.bySKU {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}
