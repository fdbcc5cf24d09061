package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/predictions"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func newAPI(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)
	return c
}

func TestClient_Animals(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/animals", r.URL.Path)
		assert.Equal(t, "water_rescue", r.URL.Query().Get("rescueType"))
		_, _ = w.Write([]byte(`[{"animal_id":"A1","breed":"Newfoundland"}]`))
	})

	recs, err := c.Animals(context.Background(), animals.PresetWaterRescue)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Newfoundland", recs[0]["breed"])
}

func TestClient_Animals_StoreUnavailable(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"record store unavailable"}`))
	})

	_, err := c.Animals(context.Background(), animals.PresetAll)
	assert.ErrorIs(t, err, animals.ErrStoreUnavailable)
}

func TestClient_BreedPie(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "top", r.URL.Query().Get("mode"))
		assert.Equal(t, "3", r.URL.Query().Get("topN"))
		_ = json.NewEncoder(w).Encode([]animals.BreedCount{{Breed: "Beagle", Count: 2}})
	})

	got, err := c.BreedPie(context.Background(), animals.ModeTopN, 3)
	require.NoError(t, err)
	assert.Equal(t, []animals.BreedCount{{Breed: "Beagle", Count: 2}}, got)
}

func TestClient_Predict(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var req predictions.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Labrador Retriever", req.PrimaryBreed)
		_, _ = w.Write([]byte(`{"adoption_probability":0.61}`))
	})

	res, err := c.Predict(context.Background(), DefaultForm())
	require.NoError(t, err)
	require.NotNil(t, res.AdoptionProbability)
	assert.Equal(t, 0.61, *res.AdoptionProbability)
}

func TestClient_Predict_502(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"Predictive analytics service unavailable","detail":"timeout"}`))
	})

	_, err := c.Predict(context.Background(), DefaultForm())
	var ue *predictions.UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "timeout", ue.Detail)
}

func TestClient_Predict_InvalidSkipsNetwork(t *testing.T) {
	called := false
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	form := DefaultForm()
	form.OutcomeMonth = 0
	_, err := c.Predict(context.Background(), form)
	assert.ErrorIs(t, err, predictions.ErrInvalidInput)
	assert.False(t, called)
}
