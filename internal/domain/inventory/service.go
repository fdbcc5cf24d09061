package inventory

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("item not found")
	ErrDuplicate    = errors.New("item with same sku or upc already exists")
)

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name             string
	UPC              string
	SKU              string
	ShortDescription string
	Quantity         int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Item, error) {
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	upc := strings.TrimSpace(in.UPC)
	if name == "" || sku == "" || upc == "" {
		return Item{}, ErrInvalidInput
	}

	now := s.now()
	it := Item{
		ID:               uuid.NewString(),
		Name:             name,
		UPC:              upc,
		SKU:              sku,
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		Quantity:         clamp(in.Quantity),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) GetBySKU(ctx context.Context, sku string) (Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Item{}, ErrInvalidInput
	}
	return s.repo.GetBySKU(ctx, sku)
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Search sin término equivale a List.
func (s *Service) Search(ctx context.Context, term string) ([]Item, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx)
	}
	return s.repo.SearchByName(ctx, term)
}

func (s *Service) ListZeroStock(ctx context.Context) ([]Item, error) {
	return s.repo.ListZeroStock(ctx)
}

// SetQuantity fija la cantidad (negativos => 0).
func (s *Service) SetQuantity(ctx context.Context, sku string, qty int) (Item, error) {
	return s.mutate(ctx, sku, func(int) int { return clamp(qty) })
}

// AdjustQuantity suma delta a la cantidad actual, sin bajar de 0 ni desbordar.
func (s *Service) AdjustQuantity(ctx context.Context, sku string, delta int) (Item, error) {
	return s.mutate(ctx, sku, func(cur int) int { return addClamped(cur, delta) })
}

func (s *Service) DeleteBySKU(ctx context.Context, sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteBySKU(ctx, sku)
}

func (s *Service) mutate(ctx context.Context, sku string, fn QuantityFunc) (Item, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return Item{}, ErrInvalidInput
	}

	now := s.now()
	before, after, err := s.repo.UpdateQuantity(ctx, sku, fn, now)
	if err != nil {
		return Item{}, err
	}

	if before.Quantity > 0 && after.Quantity == 0 && s.notifier != nil {
		s.notifier.NotifyZeroStock(ctx, ZeroStockEvent{
			ItemID: after.ID,
			SKU:    after.SKU,
			Name:   after.Name,
			At:     now,
		})
	}
	return after, nil
}

// addClamped satura en math.MaxInt en vez de dar la vuelta.
func addClamped(cur, delta int) int {
	cur = clamp(cur)
	if delta > 0 && cur > math.MaxInt-delta {
		return math.MaxInt
	}
	return clamp(cur + delta)
}

func clamp(q int) int {
	if q < 0 {
		return 0
	}
	return q
}
