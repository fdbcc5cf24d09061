// Package config carga la configuración del servicio: defaults, config.yaml opcional y env.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StoreDriver selecciona el backend del record store.
type StoreDriver string

const (
	StoreMemory   StoreDriver = "memory"
	StoreMongo    StoreDriver = "mongo"
	StorePostgres StoreDriver = "postgres"
)

type Config struct {
	Port string

	MLBaseURL        string
	PredictTimeout   time.Duration
	PredictRateLimit float64 // req/s; 0 = sin límite

	StoreDriver     StoreDriver
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	PostgresDSN     string

	// Solo para store memory: JSON array de registros con que arranca la colección.
	AnimalsSeedFile string

	// Vacío => inventario/cuentas en memoria.
	InventoryDBPath string

	LogLevel  string
	LogFormat string
	AppName   string
}

// Addr devuelve ":<port>" para http.Server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("ml_base_url", "http://127.0.0.1:8000")
	v.SetDefault("predict_timeout", "5s")
	v.SetDefault("predict_rate_limit", 0)
	v.SetDefault("store_driver", "")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", "aac_shelter_outcomes")
	v.SetDefault("mongo_collection", "ACC")
	v.SetDefault("db_dsn", "")
	v.SetDefault("animals_seed_file", "")
	v.SetDefault("inventory_db_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("app_name", "shelter-dashboard")
}

// Load lee configuración con precedencia: env > archivo > defaults.
// Si file está vacío se busca config.yaml en el directorio actual; si no existe no es error.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if strings.TrimSpace(file) != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || strings.TrimSpace(file) != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:             strings.TrimSpace(v.GetString("port")),
		MLBaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString("ml_base_url")), "/"),
		PredictTimeout:   v.GetDuration("predict_timeout"),
		PredictRateLimit: v.GetFloat64("predict_rate_limit"),
		StoreDriver:      StoreDriver(strings.ToLower(strings.TrimSpace(v.GetString("store_driver")))),
		MongoURI:         strings.TrimSpace(v.GetString("mongo_uri")),
		MongoDatabase:    strings.TrimSpace(v.GetString("mongo_database")),
		MongoCollection:  strings.TrimSpace(v.GetString("mongo_collection")),
		PostgresDSN:      strings.TrimSpace(v.GetString("db_dsn")),
		AnimalsSeedFile:  strings.TrimSpace(v.GetString("animals_seed_file")),
		InventoryDBPath:  strings.TrimSpace(v.GetString("inventory_db_path")),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		AppName:          v.GetString("app_name"),
	}

	// Sin driver explícito: se infiere de MONGO_URI / DB_DSN, si no memoria.
	if cfg.StoreDriver == "" {
		switch {
		case cfg.MongoURI != "":
			cfg.StoreDriver = StoreMongo
		case cfg.PostgresDSN != "":
			cfg.StoreDriver = StorePostgres
		default:
			cfg.StoreDriver = StoreMemory
		}
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port required")
	}
	if c.MLBaseURL == "" {
		return errors.New("config: ml_base_url required")
	}
	if c.PredictTimeout <= 0 {
		return errors.New("config: predict_timeout must be positive")
	}
	if c.PredictRateLimit < 0 {
		return errors.New("config: predict_rate_limit must be >= 0")
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("config: mongo_uri required for mongo store")
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return errors.New("config: db_dsn required for postgres store")
		}
	default:
		return fmt.Errorf("config: unknown store_driver %q", c.StoreDriver)
	}
	return nil
}
