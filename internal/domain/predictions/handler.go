package predictions

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 64 << 10

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/predict/adoption", predictAdoptionHandler(svc))
}

type validationErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

type upstreamErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// predictAdoptionHandler godoc
// @Summary Predecir probabilidad de adopción
// @Description Valida el payload y lo reenvía sin transformar al servicio ML (POST {ML_BASE_URL}/predict/adoption, timeout 5s, sin reintentos). La respuesta del upstream se devuelve tal cual.
// @Tags predictions
// @Accept json
// @Produce json
// @Param payload body Request true "Features del animal"
// @Success 200 {object} object "respuesta del servicio ML, p.ej. {\"adoption_probability\":0.73}"
// @Failure 400 {object} validationErrorResponse "primer campo inválido"
// @Failure 429 {object} upstreamErrorResponse "rate limit"
// @Failure 502 {object} upstreamErrorResponse "servicio ML no disponible"
// @Router /api/predict/adoption [post]
func predictAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, validationErrorResponse{Error: "invalid body", Field: "body"})
			return
		}

		res, err := svc.Forward(r.Context(), body)
		if err != nil {
			var ve *ValidationError
			switch {
			case errors.As(err, &ve):
				writeJSON(w, http.StatusBadRequest, validationErrorResponse{Error: ve.Error(), Field: ve.Field})
			case errors.Is(err, ErrRateLimited):
				writeJSON(w, http.StatusTooManyRequests, upstreamErrorResponse{Error: err.Error()})
			default:
				detail := err.Error()
				var ue *UnavailableError
				if errors.As(err, &ue) {
					detail = ue.Detail
				}
				writeJSON(w, http.StatusBadGateway, upstreamErrorResponse{
					Error:  "Predictive analytics service unavailable",
					Detail: detail,
				})
			}
			return
		}

		// Pass-through: el body del upstream va tal cual.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Raw)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
