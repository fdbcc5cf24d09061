package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shelter-dashboard/internal/adapters/scoring/mlservice"
	mem "shelter-dashboard/internal/adapters/storage/memory"
	"shelter-dashboard/internal/adapters/storage/mongo"
	pg "shelter-dashboard/internal/adapters/storage/postgres"
	"shelter-dashboard/internal/adapters/storage/sqlite"
	"shelter-dashboard/internal/config"
	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/router"
)

// @title Shelter Dashboard API
// @version 1.0
// @description Consulta de outcomes del shelter, agregación por raza, proxy de predicción de adopción e inventario.
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	configFile := flag.String("config", "", "ruta a config.yaml (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	animalsRepo, closeAnimals, err := openAnimals(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAnimals()

	opts := router.Options{
		Animals:          animalsRepo,
		PredictRateLimit: cfg.PredictRateLimit,
		Logger:           log,
	}

	if cfg.InventoryDBPath != "" {
		db, err := sqlite.Open(cfg.InventoryDBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		opts.Inventory = sqlite.NewInventoryRepo(db)
		opts.Accounts = sqlite.NewAccountsRepo(db)
		log.Info("inventory store ready", map[string]any{"path": cfg.InventoryDBPath})
	}

	ml, err := mlservice.NewClient(mlservice.Config{BaseURL: cfg.MLBaseURL, Timeout: cfg.PredictTimeout})
	if err != nil {
		log.Warn("scoring endpoint disabled", map[string]any{"err": err})
	} else {
		opts.ML = ml
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Debe cubrir el timeout del upstream de predicción.
		WriteTimeout: cfg.PredictTimeout + 10*time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":  srv.Addr,
			"store": string(cfg.StoreDriver),
			"ml":    cfg.MLBaseURL,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openAnimals arma el record store según store_driver. El close devuelto nunca es nil.
// Un store caído al arrancar no es error: se loguea y cada request responde 503 hasta que vuelva.
// Solo una configuración inválida (URI, seed file) corta el arranque.
func openAnimals(ctx context.Context, cfg config.Config, log logger.Logger) (animals.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		repo, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
		if err != nil {
			return nil, nil, err
		}
		checkStore(ctx, repo, log, map[string]any{"driver": "mongo", "db": cfg.MongoDatabase, "collection": cfg.MongoCollection})
		return repo, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = repo.Close(closeCtx)
		}, nil

	case config.StorePostgres:
		db, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		repo := pg.NewAnimalsRepo(db)

		schemaCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
		err = repo.EnsureSchema(schemaCtx)
		cancel()
		if err != nil {
			log.Warn("record store schema not ensured", map[string]any{"driver": "postgres", "err": err})
		}
		checkStore(ctx, repo, log, map[string]any{"driver": "postgres"})
		return repo, closeDB(db), nil

	default:
		repo := mem.NewAnimalsRepo()
		if cfg.AnimalsSeedFile != "" {
			recs, err := mem.LoadAnimalsFile(cfg.AnimalsSeedFile)
			if err != nil {
				return nil, nil, err
			}
			repo.Add(recs...)
		}
		log.Info("record store ready", map[string]any{"driver": "memory", "seed": cfg.AnimalsSeedFile})
		return repo, func() {}, nil
	}
}

const startupCheckTimeout = 3 * time.Second

// checkStore hace un ping de cortesía al arrancar; el resultado solo se loguea.
func checkStore(ctx context.Context, repo animals.Repository, log logger.Logger, fields map[string]any) {
	pingCtx, cancel := context.WithTimeout(ctx, startupCheckTimeout)
	defer cancel()

	if err := repo.Ping(pingCtx); err != nil {
		fields["err"] = err
		log.Warn("record store unavailable at startup, serving anyway", fields)
		return
	}
	log.Info("record store ready", fields)
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
