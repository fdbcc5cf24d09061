package predictions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"animal_type":"Dog","sex_upon_outcome":"Neutered Male","primary_breed":"Labrador Retriever","age_weeks":52,"outcome_month":6}`

func newTestServer(t *testing.T, sc Scorer) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(sc, Options{}))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/predict/adoption", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestHandler_Predict_OK(t *testing.T) {
	srv := newTestServer(t, &testScorer{resp: []byte(`{"adoption_probability":0.73}`)})

	status, body := post(t, srv, validBody)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"adoption_probability":0.73}`, string(body))
}

func TestHandler_Predict_BadRequest(t *testing.T) {
	sc := &testScorer{resp: []byte(`{}`)}
	srv := newTestServer(t, sc)

	status, body := post(t, srv, strings.Replace(validBody, `"outcome_month":6`, `"outcome_month":0`, 1))
	assert.Equal(t, http.StatusBadRequest, status)

	var got validationErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, FieldOutcomeMonth, got.Field)
	assert.Equal(t, 0, sc.calls)
}

func TestHandler_Predict_Upstream502(t *testing.T) {
	srv := newTestServer(t, &testScorer{err: errors.New("dial tcp: connection refused")})

	status, body := post(t, srv, validBody)
	assert.Equal(t, http.StatusBadGateway, status)

	var got upstreamErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Predictive analytics service unavailable", got.Error)
	assert.Contains(t, got.Detail, "connection refused")
}

type slowScorer struct{}

func (slowScorer) Score(ctx context.Context, payload []byte) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestHandler_Predict_ClientCancelIsUnavailable(t *testing.T) {
	svc := NewService(slowScorer{}, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Forward(ctx, []byte(validBody))
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
