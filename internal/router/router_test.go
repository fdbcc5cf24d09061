package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shelter-dashboard/internal/adapters/scoring/mlservice"
	mem "shelter-dashboard/internal/adapters/storage/memory"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/router"
)

type creds struct {
	username string
	password string
}

func seedAnimals() *mem.AnimalsRepo {
	return mem.NewAnimalsRepo(
		animals.Record{"animal_id": "A1", "animal_type": "Dog", "breed": "Labrador Retriever", "age_upon_outcome_in_weeks": 52.0, "sex_upon_outcome": "Intact Female"},
		animals.Record{"animal_id": "A2", "animal_type": "Dog", "breed": "Labrador Retriever", "age_upon_outcome_in_weeks": 10.0, "sex_upon_outcome": "Intact Female"},
		animals.Record{"animal_id": "A3", "animal_type": "Dog", "breed": "Newfoundland", "age_upon_outcome_in_weeks": 100.0, "sex_upon_outcome": "Intact Female"},
		animals.Record{"animal_id": "A4", "animal_type": "Cat", "breed": "Siamese", "age_upon_outcome_in_weeks": 30.0, "sex_upon_outcome": "Spayed Female"},
		animals.Record{"animal_id": "A5", "animal_type": "Dog", "breed": "German Shepherd", "age_upon_outcome_in_weeks": 60.0, "sex_upon_outcome": "Intact Male"},
	)
}

func newMLServer(t *testing.T, status int, body string) *mlservice.Client {
	t.Helper()
	ml := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/health":
			_, _ = io.WriteString(w, `{"status":"ok","model_loaded":true}`)
		case "/predict/adoption":
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ml.Close)

	c, err := mlservice.NewClient(mlservice.Config{BaseURL: ml.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("ml client: %v", err)
	}
	return c
}

func TestHTTP_EndToEnd_AnimalsAndBreeds(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Animals: seedAnimals()}))
	defer ts.Close()

	// 1) Sin preset => todos
	{
		st, body := doReq(t, ts.URL, "GET", "/api/animals", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list animals, got %d body=%s", st, string(body))
		}
		var got []map[string]any
		mustJSON(t, body, &got)
		if len(got) != 5 {
			t.Fatalf("expected 5 animals, got %d", len(got))
		}
	}

	// 2) water_rescue => solo Lab/Newfoundland hembras intactas de 26..156 semanas
	{
		st, body := doReq(t, ts.URL, "GET", "/api/animals?rescueType=water_rescue", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 water_rescue, got %d body=%s", st, string(body))
		}
		var got []map[string]any
		mustJSON(t, body, &got)
		if len(got) != 2 {
			t.Fatalf("expected 2 water rescue animals, got %d body=%s", len(got), string(body))
		}
		for _, r := range got {
			if r["animal_id"] == "A2" {
				t.Fatalf("A2 is too young for water_rescue")
			}
		}
	}

	// 3) Preset desconocido => All
	{
		st, body := doReq(t, ts.URL, "GET", "/api/animals?rescueType=nope", nil, nil)
		var got []map[string]any
		mustJSON(t, body, &got)
		if st != http.StatusOK || len(got) != 5 {
			t.Fatalf("expected unknown preset to behave as All, got %d len=%d", st, len(got))
		}
	}

	// 4) Top 1 + Other
	{
		st, body := doReq(t, ts.URL, "GET", "/api/breeds/pie?mode=top&topN=1", nil, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 breed pie, got %d body=%s", st, string(body))
		}
		var got []animals.BreedCount
		mustJSON(t, body, &got)
		want := []animals.BreedCount{
			{Breed: "Labrador Retriever", Count: 2},
			{Breed: animals.OtherBreed, Count: 3},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("row %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	}

	// 5) mode=all => todas las razas, sin Other
	{
		st, body := doReq(t, ts.URL, "GET", "/api/breeds/pie?mode=all", nil, nil)
		var got []animals.BreedCount
		mustJSON(t, body, &got)
		if st != http.StatusOK || len(got) != 4 {
			t.Fatalf("expected 4 breeds, got %d %v", st, got)
		}
	}

	// 6) topN inválido => 400
	for _, q := range []string{"topN=0", "topN=-3", "topN=abc"} {
		st, body := doReq(t, ts.URL, "GET", "/api/breeds/pie?"+q, nil, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d body=%s", q, st, string(body))
		}
	}
}

func TestHTTP_EndToEnd_Predict(t *testing.T) {
	payload := map[string]any{
		"animal_type":      "Dog",
		"sex_upon_outcome": "Neutered Male",
		"primary_breed":    "Labrador Retriever",
		"age_weeks":        52,
		"outcome_month":    6,
	}

	// 1) Upstream OK => body tal cual
	{
		ts := httptest.NewServer(router.NewRouter(router.Options{
			ML: newMLServer(t, http.StatusOK, `{"adoption_probability":0.73}`),
		}))
		defer ts.Close()

		st, body := doReq(t, ts.URL, "POST", "/api/predict/adoption", nil, payload)
		if st != http.StatusOK {
			t.Fatalf("expected 200 predict, got %d body=%s", st, string(body))
		}
		if strings.TrimSpace(string(body)) != `{"adoption_probability":0.73}` {
			t.Fatalf("expected upstream body verbatim, got %s", string(body))
		}

		// 2) Mes inválido => 400 con el campo
		bad := map[string]any{}
		for k, v := range payload {
			bad[k] = v
		}
		bad["outcome_month"] = 13
		st, body = doReq(t, ts.URL, "POST", "/api/predict/adoption", nil, bad)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid month, got %d body=%s", st, string(body))
		}
		var ve struct {
			Field string `json:"field"`
		}
		mustJSON(t, body, &ve)
		if ve.Field != "outcome_month" {
			t.Fatalf("expected field outcome_month, got %q", ve.Field)
		}
	}

	// 3) Upstream 500 => 502
	{
		ts := httptest.NewServer(router.NewRouter(router.Options{
			ML: newMLServer(t, http.StatusInternalServerError, `{"detail":"model crashed"}`),
		}))
		defer ts.Close()

		st, body := doReq(t, ts.URL, "POST", "/api/predict/adoption", nil, payload)
		if st != http.StatusBadGateway {
			t.Fatalf("expected 502 upstream failure, got %d body=%s", st, string(body))
		}
		var ue struct {
			Error string `json:"error"`
		}
		mustJSON(t, body, &ue)
		if ue.Error != "Predictive analytics service unavailable" {
			t.Fatalf("unexpected error message %q", ue.Error)
		}
	}

	// 4) Sin ML configurado => 502
	{
		ts := httptest.NewServer(router.NewRouter(router.Options{}))
		defer ts.Close()

		st, _ := doReq(t, ts.URL, "POST", "/api/predict/adoption", nil, payload)
		if st != http.StatusBadGateway {
			t.Fatalf("expected 502 without ML, got %d", st)
		}
	}
}

func TestHTTP_EndToEnd_AccountsAndInventory(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	alice := &creds{username: "alice", password: "s3cret"}

	// 1) Sin credenciales => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/inventory", nil, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without account, got %d", st)
		}
	}

	// 2) Registro + login
	{
		st, body := doReq(t, ts.URL, "POST", "/api/accounts", nil, map[string]any{
			"username":      alice.username,
			"password":      alice.password,
			"employee_name": "Alice",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
		}

		st, _ = doReq(t, ts.URL, "POST", "/api/accounts", nil, map[string]any{
			"username": alice.username,
			"password": "other",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate username, got %d", st)
		}

		st, _ = doReq(t, ts.URL, "POST", "/api/accounts/login", nil, map[string]any{
			"username": alice.username,
			"password": "wrong",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad password, got %d", st)
		}
	}

	// 3) Password incorrecta en Basic auth => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/inventory", &creds{username: "alice", password: "nope"}, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 wrong basic auth, got %d", st)
		}
	}

	// 4) Crear item, bajar a 0 y verlo en zero-stock
	{
		st, body := doReq(t, ts.URL, "POST", "/api/inventory", alice, map[string]any{
			"name":     "Kibble 10kg",
			"upc":      "0001",
			"sku":      "KB-10",
			"quantity": 2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create item, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "POST", "/api/inventory/KB-10/adjust", alice, map[string]any{"delta": -5})
		if st != http.StatusOK {
			t.Fatalf("expected 200 adjust, got %d body=%s", st, string(body))
		}
		var it struct {
			Quantity int `json:"quantity"`
		}
		mustJSON(t, body, &it)
		if it.Quantity != 0 {
			t.Fatalf("expected quantity clamped to 0, got %d", it.Quantity)
		}

		st, body = doReq(t, ts.URL, "GET", "/api/inventory/zero-stock", alice, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 zero-stock, got %d body=%s", st, string(body))
		}
		var zero []map[string]any
		mustJSON(t, body, &zero)
		if len(zero) != 1 || zero[0]["sku"] != "KB-10" {
			t.Fatalf("expected KB-10 in zero-stock, got %s", string(body))
		}
	}

	// 5) SKU inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/inventory/NOPE", alice, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown sku, got %d", st)
		}
	}

	// 6) Listado de cuentas requiere cuenta
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/accounts", nil, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 list accounts anonymously, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", "/api/accounts", alice, nil)
		if st != http.StatusOK || !strings.Contains(string(body), "alice") {
			t.Fatalf("expected 200 listing accounts, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Animals: seedAnimals(),
		ML:      newMLServer(t, http.StatusOK, `{}`),
	}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d body=%s", st, string(body))
	}
	var h map[string]string
	mustJSON(t, body, &h)
	if h["store"] != "ok" || h["ml"] != "ok" {
		t.Fatalf("unexpected health %v", h)
	}

	// Generar al menos un request instrumentado antes de leer /metrics.
	_, _ = doReq(t, ts.URL, "GET", "/api/animals", nil, nil)

	st, body = doReq(t, ts.URL, "GET", "/metrics", nil, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), "shelter_http_requests_total") {
		t.Fatalf("expected http request counter in metrics output")
	}
}

func mustJSON(t *testing.T, b []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(b))
	}
}

func doReq(t *testing.T, baseURL, method, path string, c *creds, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c != nil {
		req.SetBasicAuth(c.username, c.password)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
