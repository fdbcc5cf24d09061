package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "shelter-dashboard/docs"
	"shelter-dashboard/internal/adapters/scoring/mlservice"
	mem "shelter-dashboard/internal/adapters/storage/memory"
	"shelter-dashboard/internal/domain/accounts"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/inventory"
	"shelter-dashboard/internal/domain/predictions"
	"shelter-dashboard/internal/middleware"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/platform/metrics"
)

type Options struct {
	// Repos opcionales: si vienen nil se usan los in-memory.
	Animals   animals.Repository
	Inventory inventory.Repository
	Accounts  accounts.Repository

	// ML puede ser nil: /api/predict/adoption responde 502.
	ML               *mlservice.Client
	PredictRateLimit float64

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	var (
		animalsRepo   = opts.Animals
		inventoryRepo = opts.Inventory
		accountsRepo  = opts.Accounts
	)
	if animalsRepo == nil {
		animalsRepo = mem.NewAnimalsRepo()
	}
	if inventoryRepo == nil {
		inventoryRepo = mem.NewInventoryRepo()
	}
	if accountsRepo == nil {
		accountsRepo = mem.NewAccountsRepo()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalsRepo, log)
	accountsSvc := accounts.NewService(accountsRepo)
	inventorySvc := inventory.NewService(inventoryRepo, inventory.MultiNotifier{
		inventory.NewLogNotifier(log),
		inventory.MetricsNotifier{},
	})

	var scorer predictions.Scorer
	if opts.ML != nil {
		scorer = opts.ML
	}
	predictionsSvc := predictions.NewService(scorer, predictions.Options{
		RateLimit: opts.PredictRateLimit,
		Logger:    log,
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(middleware.AccessLog(log))

	r.Use(middleware.AuthContext(accountsSvc))

	r.Get("/health", healthHandler(animalsSvc, opts.ML))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	predictions.RegisterRoutes(r, predictionsSvc)
	accounts.RegisterRoutes(r, accountsSvc, middleware.RequireAccount)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAccount)
		inventory.RegisterRoutes(pr, inventorySvc)
	})

	return r
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	ML     string `json:"ml,omitempty"`
}

// healthHandler godoc
// @Summary Health check
// @Description 200 si el record store responde; el estado del servicio ML es informativo.
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} healthResponse
// @Router /health [get]
func healthHandler(svc *animals.Service, ml *mlservice.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{Status: "ok", Store: "ok"}
		status := http.StatusOK
		if err := svc.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Store = "unavailable"
			status = http.StatusServiceUnavailable
		}

		if ml != nil {
			switch h, err := ml.Health(ctx); {
			case err != nil:
				resp.ML = "unavailable"
			case !h.ModelLoaded:
				resp.ML = "model_not_loaded"
			default:
				resp.ML = "ok"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
