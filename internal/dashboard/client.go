package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/predictions"
	"shelter-dashboard/internal/platform/httpclient"
)

// Client habla con la API REST del dashboard.
type Client struct {
	http *httpclient.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, errors.New("dashboard client: base url required")
	}
	return &Client{http: hc}, nil
}

func (c *Client) Animals(ctx context.Context, preset animals.RescuePreset) ([]animals.Record, error) {
	q := url.Values{}
	q.Set("rescueType", string(preset))

	var out []animals.Record
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/animals?"+q.Encode(), nil, &out); err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && he.StatusCode == http.StatusServiceUnavailable {
			return nil, fmt.Errorf("%w: %s", animals.ErrStoreUnavailable, errorMessage(he.Body))
		}
		return nil, fmt.Errorf("%w: %v", animals.ErrStoreUnavailable, err)
	}
	if out == nil {
		out = []animals.Record{}
	}
	return out, nil
}

func (c *Client) BreedPie(ctx context.Context, mode animals.AggregationMode, topN int) ([]animals.BreedCount, error) {
	q := url.Values{}
	q.Set("mode", string(mode))
	if mode == animals.ModeTopN && topN > 0 {
		q.Set("topN", strconv.Itoa(topN))
	}

	var out []animals.BreedCount
	if err := c.http.DoJSON(ctx, http.MethodGet, "/api/breeds/pie?"+q.Encode(), nil, &out); err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && he.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", animals.ErrInvalidInput, errorMessage(he.Body))
		}
		return nil, fmt.Errorf("%w: %v", animals.ErrStoreUnavailable, err)
	}
	if out == nil {
		out = []animals.BreedCount{}
	}
	return out, nil
}

// Predict valida antes de salir a la red; un request inválido nunca se envía.
func (c *Client) Predict(ctx context.Context, req predictions.Request) (predictions.Result, error) {
	if err := req.Validate(); err != nil {
		return predictions.Result{}, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return predictions.Result{}, err
	}

	raw, err := c.http.DoRaw(ctx, http.MethodPost, "/api/predict/adoption", body)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			var payload struct {
				Error  string `json:"error"`
				Field  string `json:"field"`
				Detail string `json:"detail"`
			}
			_ = json.Unmarshal([]byte(he.Body), &payload)

			if he.StatusCode == http.StatusBadRequest && payload.Field != "" {
				return predictions.Result{}, &predictions.ValidationError{Field: payload.Field, Reason: "rejected by server"}
			}
			if he.StatusCode == http.StatusTooManyRequests {
				return predictions.Result{}, predictions.ErrRateLimited
			}
			detail := payload.Detail
			if detail == "" {
				detail = he.Error()
			}
			return predictions.Result{}, &predictions.UnavailableError{Detail: detail, Err: err}
		}
		return predictions.Result{}, &predictions.UnavailableError{Detail: err.Error(), Err: err}
	}

	var out struct {
		AdoptionProbability *float64 `json:"adoption_probability"`
	}
	_ = json.Unmarshal(raw, &out)
	return predictions.Result{AdoptionProbability: out.AdoptionProbability, Raw: raw}, nil
}

func errorMessage(body string) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &e); err == nil && e.Error != "" {
		return e.Error
	}
	return body
}
