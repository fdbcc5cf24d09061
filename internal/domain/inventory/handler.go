package inventory

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/inventory", func(ir chi.Router) {
		ir.Get("/", listItemsHandler(svc))
		ir.Post("/", createItemHandler(svc))
		ir.Get("/zero-stock", listZeroStockHandler(svc))

		ir.Get("/{sku}", getItemHandler(svc))
		ir.Delete("/{sku}", deleteItemHandler(svc))
		ir.Put("/{sku}/quantity", setQuantityHandler(svc))
		ir.Post("/{sku}/adjust", adjustQuantityHandler(svc))
	})
}

type createItemRequest struct {
	Name             string `json:"name"`
	UPC              string `json:"upc"`
	SKU              string `json:"sku"`
	ShortDescription string `json:"short_description"`
	Quantity         int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type adjustQuantityRequest struct {
	Delta int `json:"delta"`
}

type itemResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	UPC              string    `json:"upc"`
	SKU              string    `json:"sku"`
	ShortDescription string    `json:"short_description"`
	Quantity         int       `json:"quantity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listItemsHandler godoc
// @Summary Listar items
// @Description Lista items ordenados por nombre. Con ?q= filtra por substring del nombre.
// @Tags inventory
// @Produce json
// @Security BasicAuth
// @Param q query string false "Término de búsqueda"
// @Success 200 {array} itemResponse
// @Failure 401 {object} errorResponse
// @Router /api/inventory [get]
func listItemsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponses(items))
	}
}

// createItemHandler godoc
// @Summary Crear item
// @Tags inventory
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param payload body createItemRequest true "Item"
// @Success 201 {object} itemResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "SKU o UPC duplicado"
// @Router /api/inventory [post]
func createItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}

		it, err := svc.Create(r.Context(), CreateInput{
			Name:             req.Name,
			UPC:              req.UPC,
			SKU:              req.SKU,
			ShortDescription: req.ShortDescription,
			Quantity:         req.Quantity,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toItemResponse(it))
	}
}

// listZeroStockHandler godoc
// @Summary Items agotados
// @Tags inventory
// @Produce json
// @Security BasicAuth
// @Success 200 {array} itemResponse
// @Router /api/inventory/zero-stock [get]
func listZeroStockHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListZeroStock(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponses(items))
	}
}

// getItemHandler godoc
// @Summary Obtener item por SKU
// @Tags inventory
// @Produce json
// @Security BasicAuth
// @Param sku path string true "SKU"
// @Success 200 {object} itemResponse
// @Failure 404 {object} errorResponse
// @Router /api/inventory/{sku} [get]
func getItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		it, err := svc.GetBySKU(r.Context(), chi.URLParam(r, "sku"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

// deleteItemHandler godoc
// @Summary Eliminar item por SKU
// @Tags inventory
// @Security BasicAuth
// @Param sku path string true "SKU"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /api/inventory/{sku} [delete]
func deleteItemHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteBySKU(r.Context(), chi.URLParam(r, "sku")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// setQuantityHandler godoc
// @Summary Fijar cantidad
// @Description Cantidades negativas se guardan como 0.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param sku path string true "SKU"
// @Param payload body setQuantityRequest true "Cantidad"
// @Success 200 {object} itemResponse
// @Failure 404 {object} errorResponse
// @Router /api/inventory/{sku}/quantity [put]
func setQuantityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		it, err := svc.SetQuantity(r.Context(), chi.URLParam(r, "sku"), req.Quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

// adjustQuantityHandler godoc
// @Summary Ajustar cantidad
// @Description Suma delta (puede ser negativo); el resultado nunca baja de 0.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param sku path string true "SKU"
// @Param payload body adjustQuantityRequest true "Delta"
// @Success 200 {object} itemResponse
// @Failure 404 {object} errorResponse
// @Router /api/inventory/{sku}/adjust [post]
func adjustQuantityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		it, err := svc.AdjustQuantity(r.Context(), chi.URLParam(r, "sku"), req.Delta)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toItemResponse(it))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toItemResponse(it Item) itemResponse {
	return itemResponse{
		ID:               it.ID,
		Name:             it.Name,
		UPC:              it.UPC,
		SKU:              it.SKU,
		ShortDescription: it.ShortDescription,
		Quantity:         it.Quantity,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

func toItemResponses(items []Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
