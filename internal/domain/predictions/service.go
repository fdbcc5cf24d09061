package predictions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
)

// Scorer es el puerto hacia el endpoint externo de scoring.
// Recibe el payload JSON ya serializado y devuelve el body de respuesta sin transformar.
type Scorer interface {
	Score(ctx context.Context, payload []byte) ([]byte, error)
}

type Options struct {
	// RateLimit en requests/segundo hacia el upstream; 0 = sin límite.
	RateLimit float64
	Logger    logger.Logger
}

type Service struct {
	scorer  Scorer
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
}

func NewService(scorer Scorer, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	var lim *rate.Limiter
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Service{
		scorer:  scorer,
		limiter: lim,
		log:     log.With(map[string]any{"component": "predictions"}),
		now:     time.Now,
	}
}

// Submit valida y reenvía la solicitud serializada.
func (s *Service) Submit(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordPrediction("invalid", 0)
		return Result{}, err
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, fmt.Errorf("marshal prediction request: %w", err)
	}
	return s.forward(ctx, payload)
}

// Forward valida un body JSON crudo y, si es válido, lo reenvía sin modificar.
func (s *Service) Forward(ctx context.Context, body []byte) (Result, error) {
	if _, err := DecodeRequest(body); err != nil {
		metrics.RecordPrediction("invalid", 0)
		return Result{}, err
	}
	return s.forward(ctx, body)
}

func (s *Service) forward(ctx context.Context, payload []byte) (Result, error) {
	if s.scorer == nil {
		metrics.RecordPrediction("unavailable", 0)
		return Result{}, &UnavailableError{Detail: "scoring endpoint not configured"}
	}

	if s.limiter != nil && !s.limiter.Allow() {
		metrics.RecordPrediction("rate_limited", 0)
		return Result{}, ErrRateLimited
	}

	// Sin reintentos: si falla, el reintento es decisión del caller.
	start := s.now()
	raw, err := s.scorer.Score(ctx, payload)
	elapsed := s.now().Sub(start)
	if err != nil {
		metrics.RecordPrediction("unavailable", elapsed)
		s.log.Warn("scoring upstream failed", map[string]any{"err": err, "elapsed_ms": elapsed.Milliseconds()})

		var ue *UnavailableError
		if errors.As(err, &ue) {
			return Result{}, ue
		}
		return Result{}, &UnavailableError{Detail: err.Error(), Err: err}
	}
	metrics.RecordPrediction("ok", elapsed)

	return Result{
		AdoptionProbability: probabilityOf(raw),
		Raw:                 json.RawMessage(raw),
	}, nil
}

// probabilityOf lee adoption_probability si está; la forma de la respuesta es del upstream.
func probabilityOf(raw []byte) *float64 {
	var out struct {
		AdoptionProbability *float64 `json:"adoption_probability"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out.AdoptionProbability
}
