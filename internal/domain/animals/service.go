package animals

import (
	"context"
	"errors"
	"fmt"

	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "animals"}),
	}
}

// FetchRecords aplica el preset y devuelve todos los registros que lo cumplen.
// Cualquier falla del store se reporta como ErrStoreUnavailable; el caller conserva lo que ya mostraba.
func (s *Service) FetchRecords(ctx context.Context, preset RescuePreset) ([]Record, error) {
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	recs, err := s.repo.Find(ctx, preset.Filter())
	metrics.RecordStoreQuery("find", err)
	if err != nil {
		s.log.Error("fetch records failed", map[string]any{"preset": string(preset), "err": err})
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if recs == nil {
		recs = []Record{}
	}
	return CloneAll(recs), nil
}

// BreedPie devuelve el ranking de razas. En ModeTopN, n debe ser > 0.
func (s *Service) BreedPie(ctx context.Context, mode AggregationMode, n int) ([]BreedCount, error) {
	if mode == ModeTopN && n <= 0 {
		return nil, ErrInvalidInput
	}
	if s.repo == nil {
		return nil, ErrStoreUnavailable
	}

	groups, err := s.repo.BreedGroups(ctx)
	metrics.RecordStoreQuery("breed_groups", err)
	if err != nil {
		s.log.Error("breed aggregation failed", map[string]any{"mode": string(mode), "err": err})
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return RankBreeds(groups, mode, n), nil
}

// Ping valida conectividad con el store (health check).
func (s *Service) Ping(ctx context.Context) error {
	if s.repo == nil {
		return ErrStoreUnavailable
	}
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
