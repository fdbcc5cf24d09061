package inventory

import (
	"context"

	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
)

// Notifier recibe los eventos de stock agotado. No debe bloquear la mutación que lo originó.
type Notifier interface {
	NotifyZeroStock(ctx context.Context, ev ZeroStockEvent)
}

// MultiNotifier hace fan-out a varios notifiers, en orden.
type MultiNotifier []Notifier

func (m MultiNotifier) NotifyZeroStock(ctx context.Context, ev ZeroStockEvent) {
	for _, n := range m {
		if n != nil {
			n.NotifyZeroStock(ctx, ev)
		}
	}
}

type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogNotifier{log: log.With(map[string]any{"component": "inventory"})}
}

func (n *LogNotifier) NotifyZeroStock(ctx context.Context, ev ZeroStockEvent) {
	n.log.Warn(ZeroStockTitle, map[string]any{
		"item_id": ev.ItemID,
		"sku":     ev.SKU,
		"detail":  ev.Message(),
	})
}

type MetricsNotifier struct{}

func (MetricsNotifier) NotifyZeroStock(ctx context.Context, ev ZeroStockEvent) {
	metrics.RecordZeroStock()
}
