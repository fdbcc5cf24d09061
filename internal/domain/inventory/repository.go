package inventory

import (
	"context"
	"time"
)

// QuantityFunc calcula la nueva cantidad a partir de la actual.
type QuantityFunc func(current int) int

type Repository interface {
	// Create devuelve ErrDuplicate si el SKU o el UPC ya existen.
	Create(ctx context.Context, it Item) error
	GetBySKU(ctx context.Context, sku string) (Item, error)
	// List ordena por nombre sin distinguir mayúsculas.
	List(ctx context.Context) ([]Item, error)
	// SearchByName busca substring case-insensitive (el término es literal, no un patrón).
	SearchByName(ctx context.Context, term string) ([]Item, error)
	ListZeroStock(ctx context.Context) ([]Item, error)

	// UpdateQuantity aplica fn de forma atómica y devuelve el item antes y después.
	UpdateQuantity(ctx context.Context, sku string, fn QuantityFunc, at time.Time) (before Item, after Item, err error)

	DeleteBySKU(ctx context.Context, sku string) error
}
