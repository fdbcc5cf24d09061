package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/animals", listAnimalsHandler(svc))
	r.Get("/api/breeds/pie", breedPieHandler(svc))
}

type errorResponse struct {
	Error string `json:"error"`
}

// listAnimalsHandler godoc
// @Summary Listar animales por preset de rescate
// @Description Devuelve todos los registros que cumplen el preset. Presets desconocidos equivalen a All. Sin paginación (se pagina en el cliente).
// @Tags animals
// @Produce json
// @Param rescueType query string false "Preset de rescate; desconocido o vacío = All" Enums(All, water_rescue, mountain_wilderness_rescue, disaster_individual_tracking)
// @Success 200 {array} object
// @Failure 503 {object} errorResponse "record store unavailable"
// @Router /api/animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		preset := ParsePreset(r.URL.Query().Get("rescueType"))

		recs, err := svc.FetchRecords(r.Context(), preset)
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "record store unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, recs)
	}
}

// breedPieHandler godoc
// @Summary Conteo de animales por raza
// @Description mode=top (default) devuelve top N + "Other"; mode=all devuelve todas las razas rankeadas.
// @Tags animals
// @Produce json
// @Param mode query string false "top (default) o all" Enums(top, all)
// @Param topN query int false "Cantidad de razas en modo top (default 10)"
// @Success 200 {array} BreedCount
// @Failure 400 {object} errorResponse "topN inválido"
// @Failure 503 {object} errorResponse "record store unavailable"
// @Router /api/breeds/pie [get]
func breedPieHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := ParseMode(r.URL.Query().Get("mode"))

		n := DefaultTopN
		if v := strings.TrimSpace(r.URL.Query().Get("topN")); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed <= 0 {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "topN must be a positive integer"})
				return
			}
			n = parsed
		}

		rows, err := svc.BreedPie(r.Context(), mode, n)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "record store unavailable"})
			return
		}

		writeJSON(w, http.StatusOK, rows)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
