package mlservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shelter-dashboard/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("ml service not configured")
	ErrUpstream      = errors.New("ml service upstream error")
)

const (
	predictPath = "/predict/adoption"
	healthPath  = "/health"
)

// Config del cliente del servicio ML.
// BaseURL normalmente viene de ML_BASE_URL.
type Config struct {
	BaseURL string

	// Timeout HTTP; si es <= 0 se usa httpclient.DefaultTimeout (5s).
	Timeout time.Duration

	// Opcional, para tests.
	Transport http.RoundTripper
}

type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("ml service: %w", err)
	}
	if cfg.Transport != nil {
		hc.HTTP.Transport = cfg.Transport
	}
	return &Client{http: hc}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// Score implementa predictions.Scorer: POST {base}/predict/adoption con el payload tal cual.
// Cualquier status no-2xx, timeout o error de conexión es ErrUpstream.
func (c *Client) Score(ctx context.Context, payload []byte) ([]byte, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	raw, err := c.http.DoRaw(ctx, http.MethodPost, predictPath, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return raw, nil
}

// Health es la respuesta de GET /health del servicio ML.
type Health struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	if !c.IsConfigured() {
		return Health{}, ErrNotConfigured
	}

	var out Health
	if err := c.http.DoJSON(ctx, http.MethodGet, healthPath, nil, &out); err != nil {
		return Health{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return out, nil
}
