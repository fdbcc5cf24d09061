package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra /api/accounts. guard (opcional) protege el listado.
func RegisterRoutes(r chi.Router, svc *Service, guard func(http.Handler) http.Handler) {
	r.Route("/api/accounts", func(ar chi.Router) {
		ar.Post("/", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))
		ar.Put("/{username}/password", changePasswordHandler(svc))

		if guard != nil {
			ar.With(guard).Get("/", listAccountsHandler(svc))
		} else {
			ar.Get("/", listAccountsHandler(svc))
		}
	})
}

type registerRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	EmployeeName string `json:"employee_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type accountResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	EmployeeName string `json:"employee_name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Cuenta"
// @Success 201 {object} accountResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /api/accounts [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		a, err := svc.Register(r.Context(), RegisterInput{
			Username:     req.Username,
			Password:     req.Password,
			EmployeeName: req.EmployeeName,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAccountResponse(a))
	}
}

// loginHandler godoc
// @Summary Validar credenciales
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} accountResponse
// @Failure 401 {object} errorResponse
// @Router /api/accounts/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		a, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAccountResponse(a))
	}
}

// changePasswordHandler godoc
// @Summary Cambiar password
// @Tags accounts
// @Accept json
// @Param username path string true "Username"
// @Param payload body changePasswordRequest true "Passwords"
// @Success 204
// @Failure 401 {object} errorResponse
// @Router /api/accounts/{username}/password [put]
func changePasswordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		if err := svc.ChangePassword(r.Context(), chi.URLParam(r, "username"), req.OldPassword, req.NewPassword); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// listAccountsHandler godoc
// @Summary Listar usernames
// @Tags accounts
// @Produce json
// @Security BasicAuth
// @Success 200 {array} string
// @Router /api/accounts [get]
func listAccountsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrDuplicate):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{ID: a.ID, Username: a.Username, EmployeeName: a.EmployeeName}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
