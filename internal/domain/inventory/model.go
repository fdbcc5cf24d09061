package inventory

import (
	"fmt"
	"time"
)

// Item es un artículo del inventario del shelter. SKU y UPC son únicos.
type Item struct {
	ID               string
	Name             string
	UPC              string
	SKU              string
	ShortDescription string

	// Nunca negativo: las mutaciones se clampean a 0.
	Quantity int

	CreatedAt time.Time
	UpdatedAt time.Time
}

const ZeroStockTitle = "Out of stock"

// ZeroStockEvent se emite cuando la cantidad pasa de > 0 a 0.
type ZeroStockEvent struct {
	ItemID string
	SKU    string
	Name   string
	At     time.Time
}

func (e ZeroStockEvent) Message() string {
	return fmt.Sprintf("%s (SKU: %s) has reached 0.", e.Name, e.SKU)
}
